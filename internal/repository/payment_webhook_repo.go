package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
)

type PaymentWebhookRepository struct {
	db *gorm.DB
}

func NewPaymentWebhookRepository(db *gorm.DB) *PaymentWebhookRepository {
	return &PaymentWebhookRepository{db: db}
}

// Reconciliation is the outcome of matching one stored webhook to a booking.
type Reconciliation struct {
	BookingMatched bool
	AutoApproved   bool
	Booking        *domain.Booking
}

// RecordAndReconcile stores w and, when bookingID names a PENDING booking whose
// total equals the transfer amount, approves it. Everything happens in one
// transaction; a webhook whose external id was already stored yields
// ErrDuplicate and changes nothing.
func (r *PaymentWebhookRepository) RecordAndReconcile(ctx context.Context, w *domain.PaymentWebhook, bookingID string, now time.Time) (Reconciliation, error) {
	var out Reconciliation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.PaymentWebhook{}).Where("external_id = ?", w.ExternalID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}
		if err := tx.Create(w).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}

		if bookingID == "" {
			return nil
		}
		var b domain.Booking
		err := tx.Where("id = ?", bookingID).First(&b).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if b.TotalPrice != w.TransferAmount {
			return nil
		}
		out.BookingMatched = true
		out.Booking = &b

		if b.Status != domain.BookingPending {
			return nil
		}
		err = transition(tx, b.ID, StatusChange{
			From:             domain.BookingPending,
			To:               domain.BookingApproved,
			At:               now,
			PaymentConfirmed: true,
		})
		if errors.Is(err, ErrStaleStatus) {
			return nil
		}
		if err != nil {
			return err
		}
		out.AutoApproved = true

		processedAt := now.UTC()
		if err := tx.Model(w).Updates(map[string]interface{}{
			"is_processed": true,
			"processed_at": processedAt,
			"booking_id":   b.ID,
		}).Error; err != nil {
			return err
		}
		w.IsProcessed = true
		w.ProcessedAt = &processedAt
		w.BookingID = &b.ID

		fresh, err := getBooking(tx, b.ID)
		if err != nil {
			return err
		}
		out.Booking = fresh
		return nil
	})
	if err != nil {
		return Reconciliation{}, err
	}
	return out, nil
}

// List returns stored webhooks newest first, optionally filtered by processed state.
func (r *PaymentWebhookRepository) List(ctx context.Context, processed *bool, limit, offset int) ([]domain.PaymentWebhook, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.PaymentWebhook{})
	if processed != nil {
		q = q.Where("is_processed = ?", *processed)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	var hooks []domain.PaymentWebhook
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&hooks).Error
	return hooks, total, err
}
