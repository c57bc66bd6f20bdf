package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Cancel is the guest-facing cancellation: only a booking nobody has acted on
// yet can be withdrawn. Cancelling twice is a no-op.
func (s *Service) Cancel(ctx context.Context, id string) (*StatusResponse, error) {
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BookingCancelled {
		return statusResponse(b), nil
	}
	if b.Status != domain.BookingPending {
		return nil, &StateTransitionError{From: b.Status, To: domain.BookingCancelled}
	}
	return s.move(ctx, b, domain.BookingCancelled, nil)
}

// ChangeStatus applies an admin decision to a booking.
func (s *Service) ChangeStatus(ctx context.Context, id string, req StatusRequest) (*StatusResponse, error) {
	target, err := targetStatus(req)
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if target == domain.BookingRejected && reason == "" {
		return nil, invalid("reason", "Vui lòng nhập lý do từ chối")
	}

	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == domain.BookingCancelled && b.Status == domain.BookingCancelled {
		return statusResponse(b), nil
	}
	decision := target == domain.BookingApproved || target == domain.BookingRejected
	if (decision && !b.Status.Decidable()) || !b.Status.CanTransitionTo(target) {
		return nil, &StateTransitionError{From: b.Status, To: target}
	}

	var notes *string
	if reason != "" {
		notes = &reason
	}
	return s.move(ctx, b, target, notes)
}

func (s *Service) move(ctx context.Context, b *domain.Booking, to domain.BookingStatus, notes *string) (*StatusResponse, error) {
	updated, err := s.bookings.TransitionStatus(ctx, b.ID, repository.StatusChange{
		From:       b.Status,
		To:         to,
		At:         s.now(),
		AdminNotes: notes,
	})
	switch {
	case errors.Is(err, repository.ErrStaleStatus):
		return nil, &StateTransitionError{From: b.Status, To: to}
	case errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("booking: %w", ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("transition booking: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"from":       b.Status,
		"to":         to,
	}).Info("booking status changed")

	var notifyErr error
	switch to {
	case domain.BookingApproved:
		notifyErr = s.notifier.BookingApproved(ctx, updated)
	case domain.BookingRejected:
		notifyErr = s.notifier.BookingRejected(ctx, updated)
	}
	if notifyErr != nil {
		s.log.WithError(notifyErr).WithField("booking_id", b.ID).Error("notify status change")
	}
	return statusResponse(updated), nil
}

func targetStatus(req StatusRequest) (domain.BookingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case ActionApprove:
		return domain.BookingApproved, nil
	case ActionReject:
		return domain.BookingRejected, nil
	case "":
	default:
		return "", invalid("action", "Hành động không hợp lệ")
	}
	if req.Status == "" {
		return "", invalid("status", "Vui lòng chọn hành động hoặc trạng thái")
	}
	st, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		return "", invalid("status", "Trạng thái không hợp lệ")
	}
	return st, nil
}

func statusResponse(b *domain.Booking) *StatusResponse {
	return &StatusResponse{BookingID: b.ID, Status: b.Status, UpdatedAt: b.UpdatedAt}
}
