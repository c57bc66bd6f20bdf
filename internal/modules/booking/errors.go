package booking

import (
	"errors"
	"fmt"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/schedule"
)

var (
	ErrValidation              = errors.New("validation error")
	ErrConflict                = errors.New("booking conflict")
	ErrNotFound                = errors.New("not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// ValidationError names the offending field with a message for the guest.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError lists stays that cannot be booked: either already held by
// another booking or overlapping another slot of the same request.
type ConflictError struct {
	Message    string                   `json:"-"`
	Booked     []UnavailableSlot        `json:"booked,omitempty"`
	Selections []schedule.DateConflicts `json:"selections,omitempty"`
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// StateTransitionError reports a lifecycle move that is not allowed.
type StateTransitionError struct {
	From domain.BookingStatus
	To   domain.BookingStatus
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}

func (e *StateTransitionError) Unwrap() error { return ErrInvalidStatusTransition }
