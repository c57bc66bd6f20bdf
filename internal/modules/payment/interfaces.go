package payment

import (
	"context"
	"time"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
)

type webhookStore interface {
	RecordAndReconcile(ctx context.Context, w *domain.PaymentWebhook, bookingID string, now time.Time) (repository.Reconciliation, error)
	List(ctx context.Context, processed *bool, limit, offset int) ([]domain.PaymentWebhook, int64, error)
}

type approvalNotifier interface {
	BookingApproved(ctx context.Context, b *domain.Booking) error
}
