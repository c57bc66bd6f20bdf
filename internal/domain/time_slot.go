package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thanhlp18/homestay-booking-sub000/internal/schedule"
)

// TimeSlot is a bookable option on a room. Time is a free-form label such as
// "2 giờ" or "Qua đêm (14h-12h)"; Duration is in hours, nil meaning a full
// overnight stay. IsOvernight is nil on rows created before the flag existed.
type TimeSlot struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RoomID           string    `gorm:"type:varchar(36);index;not null" json:"roomId"`
	Time             string    `gorm:"not null" json:"time"`
	Price            int64     `json:"price"`
	Duration         *int      `json:"duration"`
	IsOvernight      *bool     `json:"isOvernight"`
	WeekendSurcharge int64     `json:"weekendSurcharge"`
	IsActive         bool      `gorm:"default:true" json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (t *TimeSlot) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Schedule returns the parts of the slot the scheduling rules work on.
func (t TimeSlot) Schedule() schedule.Slot {
	return schedule.Slot{Label: t.Time, IsOvernight: t.IsOvernight, DurationHours: t.Duration}
}
