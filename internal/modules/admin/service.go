package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/modules/booking"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidStatus      = errors.New("invalid status filter")
)

type Service struct {
	admins   AdminUserRepository
	bookings BookingLister
	decider  BookingDecider
	tokens   TokenIssuer
}

func NewService(admins AdminUserRepository, bookings BookingLister, decider BookingDecider, tokens TokenIssuer) *Service {
	return &Service{
		admins:   admins,
		bookings: bookings,
		decider:  decider,
		tokens:   tokens,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	admin, err := s.admins.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(admin.ID, domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		Admin:       *admin,
	}, nil
}

// ListBookings returns bookings newest first, optionally filtered by status.
func (s *Service) ListBookings(ctx context.Context, status string, page, limit int) (*BookingListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	f := repository.BookingFilter{Limit: limit, Offset: (page - 1) * limit}
	if status != "" {
		st, err := domain.ParseBookingStatus(strings.ToUpper(status))
		if err != nil {
			return nil, ErrInvalidStatus
		}
		f.Status = st
	}

	bookings, total, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return &BookingListResponse{Bookings: bookings, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.decider.GetBooking(ctx, id)
}

func (s *Service) UpdateBooking(ctx context.Context, id string, req booking.StatusRequest) (*booking.StatusResponse, error) {
	return s.decider.ChangeStatus(ctx, id, req)
}

// HashPassword hashes an admin password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
