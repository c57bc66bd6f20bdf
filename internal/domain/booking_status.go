package domain

import "fmt"

type BookingStatus string

const (
	BookingPending          BookingStatus = "PENDING"
	BookingPaymentConfirmed BookingStatus = "PAYMENT_CONFIRMED"
	BookingApproved         BookingStatus = "APPROVED"
	BookingRejected         BookingStatus = "REJECTED"
	BookingCancelled        BookingStatus = "CANCELLED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:          {BookingPaymentConfirmed, BookingApproved, BookingRejected, BookingCancelled},
	BookingPaymentConfirmed: {BookingApproved, BookingRejected, BookingCancelled},
	BookingApproved:         {BookingCancelled},
	BookingRejected:         {},
	BookingCancelled:        {},
}

// BlockingStatuses are the statuses whose slots keep a room occupied.
var BlockingStatuses = []BookingStatus{BookingPending, BookingPaymentConfirmed, BookingApproved}

// ParseBookingStatus accepts a lifecycle value as sent by clients.
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return st, nil
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// Blocking reports whether a booking in this status occupies its slots.
func (s BookingStatus) Blocking() bool {
	for _, b := range BlockingStatuses {
		if b == s {
			return true
		}
	}
	return false
}

// Decidable reports whether an admin may still approve or reject.
func (s BookingStatus) Decidable() bool {
	return s == BookingPending || s == BookingPaymentConfirmed
}
