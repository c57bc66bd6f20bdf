package admin

import (
	"context"
	"time"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/modules/booking"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
)

type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

type BookingLister interface {
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
}

// BookingDecider applies lifecycle changes; implemented by booking.Service.
type BookingDecider interface {
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ChangeStatus(ctx context.Context, id string, req booking.StatusRequest) (*booking.StatusResponse, error)
}

type TokenIssuer interface {
	GenerateToken(adminID, role string) (string, error)
	TTL() time.Duration
}
