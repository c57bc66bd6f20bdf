package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentWebhook is an inbound bank-transfer notification as received.
// ExternalID is the gateway's transaction id and is unique.
type PaymentWebhook struct {
	ID              string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ExternalID      int64      `gorm:"uniqueIndex;not null" json:"externalId"`
	Gateway         string     `json:"gateway"`
	TransactionDate string     `json:"transactionDate"`
	AccountNumber   string     `json:"accountNumber"`
	TransferType    string     `gorm:"size:8" json:"transferType"`
	TransferAmount  int64      `json:"transferAmount"`
	Content         string     `gorm:"type:text" json:"content"`
	ReferenceCode   string     `json:"referenceCode"`
	RawBody         string     `gorm:"type:text" json:"-"`
	BookingID       *string    `gorm:"type:varchar(36);index" json:"bookingId,omitempty"`
	IsProcessed     bool       `gorm:"index" json:"isProcessed"`
	ProcessedAt     *time.Time `json:"processedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func (w *PaymentWebhook) BeforeCreate(*gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
