package payment

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/repository"
)

var ErrUnauthorized = errors.New("invalid webhook api key")

const transferIn = "in"

type Service struct {
	webhooks webhookStore
	notifier approvalNotifier
	log      logrus.FieldLogger
	apiKey   string
	now      func() time.Time
}

func NewService(webhooks webhookStore, notifier approvalNotifier, log logrus.FieldLogger, apiKey string) *Service {
	return &Service{
		webhooks: webhooks,
		notifier: notifier,
		log:      log,
		apiKey:   apiKey,
		now:      time.Now,
	}
}

// Authorize checks an "Apikey <key>" header. Without a configured key every
// caller is accepted.
func (s *Service) Authorize(header string) error {
	if s.apiKey == "" {
		return nil
	}
	scheme, key, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Apikey") {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(key)), []byte(s.apiKey)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// HandleWebhook records an incoming transfer and approves the booking named
// in its content when the amount matches. Outgoing transfers are acknowledged
// without being stored; a replayed transaction id is acknowledged as a
// duplicate and changes nothing.
func (s *Service) HandleWebhook(ctx context.Context, p WebhookPayload, rawBody string) (*WebhookResult, error) {
	entry := s.log.WithFields(logrus.Fields{
		"external_id": p.ID,
		"amount":      p.TransferAmount,
	})
	if !strings.EqualFold(p.TransferType, transferIn) {
		entry.WithField("transfer_type", p.TransferType).Info("ignoring outgoing transfer")
		return &WebhookResult{Success: true}, nil
	}

	bookingID := BookingReference(p)
	w := &domain.PaymentWebhook{
		ExternalID:      p.ID,
		Gateway:         p.Gateway,
		TransactionDate: p.TransactionDate,
		AccountNumber:   p.AccountNumber,
		TransferType:    strings.ToLower(p.TransferType),
		TransferAmount:  p.TransferAmount,
		Content:         p.Content,
		ReferenceCode:   p.ReferenceCode,
		RawBody:         rawBody,
	}

	rec, err := s.webhooks.RecordAndReconcile(ctx, w, bookingID, s.now())
	if errors.Is(err, repository.ErrDuplicate) {
		entry.Info("duplicate webhook acknowledged")
		return &WebhookResult{Success: true, Duplicate: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("record webhook: %w", err)
	}

	res := &WebhookResult{
		Success:        true,
		BookingMatched: rec.BookingMatched,
		AutoApproved:   rec.AutoApproved,
	}
	if rec.BookingMatched {
		res.BookingID = bookingID
	}
	entry.WithFields(logrus.Fields{
		"booking_id":    bookingID,
		"matched":       rec.BookingMatched,
		"auto_approved": rec.AutoApproved,
	}).Info("payment webhook processed")

	if rec.AutoApproved && rec.Booking != nil && s.notifier != nil {
		if err := s.notifier.BookingApproved(ctx, rec.Booking); err != nil {
			entry.WithError(err).Error("notify booking approved")
		}
	}
	return res, nil
}

// ListWebhooks pages through stored webhooks for reconciliation.
func (s *Service) ListWebhooks(ctx context.Context, processed *bool, page, limit int) ([]domain.PaymentWebhook, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	return s.webhooks.List(ctx, processed, limit, (page-1)*limit)
}

// BookingReference is the booking id a guest typed as the transfer content.
func BookingReference(p WebhookPayload) string {
	if ref := strings.TrimSpace(p.Content); ref != "" {
		return ref
	}
	if p.Code != nil {
		return strings.TrimSpace(*p.Code)
	}
	return ""
}
