package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCard     PaymentMethod = "CARD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentCard:
		return true
	}
	return false
}

// Booking prices are frozen at creation and never recomputed.
type Booking struct {
	ID                 string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	FullName           string        `gorm:"not null" json:"fullName"`
	Phone              string        `gorm:"not null;index" json:"phone"`
	Email              string        `json:"email,omitempty"`
	CCCD               string        `gorm:"column:cccd" json:"cccd"`
	Guests             int           `json:"guests"`
	Notes              string        `gorm:"type:text" json:"notes,omitempty"`
	PaymentMethod      PaymentMethod `gorm:"size:16" json:"paymentMethod"`
	BasePrice          int64         `json:"basePrice"`
	WeekendSurcharge   int64         `json:"weekendSurcharge"`
	DiscountAmount     int64         `json:"discountAmount"`
	DiscountPercentage int           `json:"discountPercentage"`
	TotalPrice         int64         `json:"totalPrice"`
	Status             BookingStatus `gorm:"size:32;index;not null" json:"status"`
	AdminNotes         string        `gorm:"type:text" json:"adminNotes,omitempty"`
	FrontIDImageURL    string        `json:"frontIdImageUrl,omitempty"`
	BackIDImageURL     string        `json:"backIdImageUrl,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
	ApprovedAt         *time.Time    `json:"approvedAt,omitempty"`
	RejectedAt         *time.Time    `json:"rejectedAt,omitempty"`
	PaymentConfirmedAt *time.Time    `json:"paymentConfirmedAt,omitempty"`
	CancelledAt        *time.Time    `json:"cancelledAt,omitempty"`

	Slots []BookingSlot `gorm:"foreignKey:BookingID" json:"slots,omitempty"`
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BookingSlot is one occupied interval of one room. Price is the time slot's
// weekday base at booking time; WeekendSurcharge is what was actually added
// (zero on weekdays).
type BookingSlot struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	BookingID        string    `gorm:"type:varchar(36);index;not null" json:"bookingId"`
	RoomID           string    `gorm:"type:varchar(36);not null;index:idx_booking_slots_room_stay,priority:1" json:"roomId"`
	TimeSlotID       string    `gorm:"type:varchar(36);not null" json:"timeSlotId"`
	BookingDate      string    `gorm:"size:10;not null" json:"bookingDate"`
	CheckInTime      string    `gorm:"size:5" json:"checkInTime,omitempty"`
	CheckIn          time.Time `gorm:"not null;index:idx_booking_slots_room_stay,priority:2" json:"checkIn"`
	CheckOut         time.Time `gorm:"not null;index:idx_booking_slots_room_stay,priority:3" json:"checkOut"`
	Price            int64     `json:"price"`
	WeekendSurcharge int64     `json:"weekendSurcharge"`
	CreatedAt        time.Time `json:"createdAt"`

	Room     *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	TimeSlot *TimeSlot `gorm:"foreignKey:TimeSlotID" json:"timeSlot,omitempty"`
}

func (s *BookingSlot) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
