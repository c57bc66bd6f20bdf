package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_Transitions(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		BookingPending:          {BookingPaymentConfirmed, BookingApproved, BookingRejected, BookingCancelled},
		BookingPaymentConfirmed: {BookingApproved, BookingRejected, BookingCancelled},
		BookingApproved:         {BookingCancelled},
	}
	all := []BookingStatus{BookingPending, BookingPaymentConfirmed, BookingApproved, BookingRejected, BookingCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.True(t, BookingRejected.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
	assert.False(t, BookingPending.IsTerminal())
	assert.False(t, BookingApproved.IsTerminal())
}

func TestBookingStatus_BlockingAndDecidable(t *testing.T) {
	assert.True(t, BookingPending.Blocking())
	assert.True(t, BookingPaymentConfirmed.Blocking())
	assert.True(t, BookingApproved.Blocking())
	assert.False(t, BookingRejected.Blocking())
	assert.False(t, BookingCancelled.Blocking())

	assert.True(t, BookingPending.Decidable())
	assert.True(t, BookingPaymentConfirmed.Decidable())
	assert.False(t, BookingApproved.Decidable())
}

func TestParseBookingStatus(t *testing.T) {
	st, err := ParseBookingStatus("APPROVED")
	require.NoError(t, err)
	assert.Equal(t, BookingApproved, st)

	_, err = ParseBookingStatus("approved")
	assert.Error(t, err)
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentTransfer.Valid())
	assert.False(t, PaymentMethod("BITCOIN").Valid())
}
