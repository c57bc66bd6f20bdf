package booking

import (
	"context"
	"time"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	ListOverlapping(ctx context.Context, roomID string, from, to time.Time) ([]domain.BookingSlot, error)
	CreateIfAvailable(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	TransitionStatus(ctx context.Context, id string, c repository.StatusChange) (*domain.Booking, error)
}

// RoomRepository defines the interface for room operations
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	GetTimeSlot(ctx context.Context, id string) (*domain.TimeSlot, error)
}
