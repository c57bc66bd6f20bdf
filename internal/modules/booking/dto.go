package booking

import (
	"strings"
	"time"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
	"github.com/thanhlp18/homestay-booking-sub000/internal/pricing"
	"github.com/thanhlp18/homestay-booking-sub000/internal/schedule"
)

type SelectedSlot struct {
	BranchID    string `json:"branchId"`
	RoomID      string `json:"roomId" binding:"required"`
	TimeSlotID  string `json:"timeSlotId" binding:"required"`
	BookingDate string `json:"bookingDate" binding:"required,datetime=2006-01-02"`
	CheckInTime string `json:"checkInTime"`
	// Price is what the client displayed; it is never trusted.
	Price *int64 `json:"price,omitempty"`
}

type CreateBookingRequest struct {
	FullName        string         `json:"fullName" binding:"required,max=100"`
	Phone           string         `json:"phone" binding:"required,vnphone"`
	Email           string         `json:"email" binding:"omitempty,email"`
	CCCD            string         `json:"cccd" binding:"required,cccd"`
	Guests          int            `json:"guests" binding:"gte=1"`
	Notes           string         `json:"notes" binding:"max=1000"`
	PaymentMethod   string         `json:"paymentMethod" binding:"required,oneof=CASH TRANSFER CARD"`
	BranchID        string         `json:"branchId"`
	SelectedSlots   []SelectedSlot `json:"selectedSlots" binding:"required,min=1,dive"`
	FrontIDImageURL string         `json:"frontIdImageUrl"`
	BackIDImageURL  string         `json:"backIdImageUrl"`
	TotalPrice      *int64         `json:"totalPrice,omitempty"`
}

type QuoteRequest struct {
	BranchID      string         `json:"branchId"`
	SelectedSlots []SelectedSlot `json:"selectedSlots" binding:"required,min=1,dive"`
}

type PricedSlot struct {
	RoomID           string    `json:"roomId"`
	TimeSlotID       string    `json:"timeSlotId"`
	BookingDate      string    `json:"bookingDate"`
	CheckInTime      string    `json:"checkInTime,omitempty"`
	CheckIn          time.Time `json:"checkIn"`
	CheckOut         time.Time `json:"checkOut"`
	Price            int64     `json:"price"`
	WeekendSurcharge int64     `json:"weekendSurcharge"`
}

type QuoteResponse struct {
	pricing.Quote
	Slots        []PricedSlot             `json:"slots"`
	HasConflicts bool                     `json:"hasConflicts"`
	Conflicts    []schedule.DateConflicts `json:"conflicts"`
}

type CreateBookingResponse struct {
	BookingID          string               `json:"bookingId"`
	BasePrice          int64                `json:"basePrice"`
	WeekendSurcharge   int64                `json:"weekendSurcharge"`
	DiscountAmount     int64                `json:"discountAmount"`
	DiscountPercentage int                  `json:"discountPercentage"`
	TotalPrice         int64                `json:"totalPrice"`
	Status             domain.BookingStatus `json:"status"`
}

type UnavailableSlot struct {
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
	BookingID string    `json:"bookingId"`
}

type AvailabilityResponse struct {
	Available bool              `json:"available"`
	Message   string            `json:"message"`
	CheckIn   time.Time         `json:"checkIn"`
	CheckOut  time.Time         `json:"checkOut"`
	Conflicts []UnavailableSlot `json:"conflicts"`
}

type UnavailableTimesResponse struct {
	UnavailableSlots []UnavailableSlot `json:"unavailableSlots"`
}

// StatusRequest is an admin decision: either an action shortcut or an
// explicit lifecycle status.
type StatusRequest struct {
	Action string `json:"action"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type StatusResponse struct {
	BookingID string               `json:"bookingId"`
	Status    domain.BookingStatus `json:"status"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// PublicBooking is what an unauthenticated caller holding the booking id may
// see: status and prices, but no identity documents or contact details.
type PublicBooking struct {
	ID                 string               `json:"id"`
	FullName           string               `json:"fullName"`
	Phone              string               `json:"phone"`
	Guests             int                  `json:"guests"`
	PaymentMethod      domain.PaymentMethod `json:"paymentMethod"`
	BasePrice          int64                `json:"basePrice"`
	WeekendSurcharge   int64                `json:"weekendSurcharge"`
	DiscountAmount     int64                `json:"discountAmount"`
	DiscountPercentage int                  `json:"discountPercentage"`
	TotalPrice         int64                `json:"totalPrice"`
	Status             domain.BookingStatus `json:"status"`
	Reason             string               `json:"reason,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	ApprovedAt         *time.Time           `json:"approvedAt,omitempty"`
	RejectedAt         *time.Time           `json:"rejectedAt,omitempty"`
	CancelledAt        *time.Time           `json:"cancelledAt,omitempty"`
	Slots              []PublicSlot         `json:"slots"`
}

type PublicSlot struct {
	RoomID      string    `json:"roomId"`
	TimeSlotID  string    `json:"timeSlotId"`
	BookingDate string    `json:"bookingDate"`
	CheckInTime string    `json:"checkInTime,omitempty"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	Price       int64     `json:"price"`
}

func publicView(b *domain.Booking) *PublicBooking {
	v := &PublicBooking{
		ID:                 b.ID,
		FullName:           b.FullName,
		Phone:              maskPhone(b.Phone),
		Guests:             b.Guests,
		PaymentMethod:      b.PaymentMethod,
		BasePrice:          b.BasePrice,
		WeekendSurcharge:   b.WeekendSurcharge,
		DiscountAmount:     b.DiscountAmount,
		DiscountPercentage: b.DiscountPercentage,
		TotalPrice:         b.TotalPrice,
		Status:             b.Status,
		CreatedAt:          b.CreatedAt,
		ApprovedAt:         b.ApprovedAt,
		RejectedAt:         b.RejectedAt,
		CancelledAt:        b.CancelledAt,
		Slots:              make([]PublicSlot, 0, len(b.Slots)),
	}
	if b.Status == domain.BookingRejected {
		v.Reason = b.AdminNotes
	}
	for _, s := range b.Slots {
		v.Slots = append(v.Slots, PublicSlot{
			RoomID:      s.RoomID,
			TimeSlotID:  s.TimeSlotID,
			BookingDate: s.BookingDate,
			CheckInTime: s.CheckInTime,
			CheckIn:     s.CheckIn,
			CheckOut:    s.CheckOut,
			Price:       s.Price,
		})
	}
	return v
}

// maskPhone keeps the last three digits: "0901234567" -> "*******567".
func maskPhone(p string) string {
	if len(p) <= 3 {
		return p
	}
	return strings.Repeat("*", len(p)-3) + p[len(p)-3:]
}
