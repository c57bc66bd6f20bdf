package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Room struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	BranchID      string    `gorm:"type:varchar(36);index;not null" json:"branchId"`
	Name          string    `gorm:"not null" json:"name"`
	Slug          string    `gorm:"index" json:"slug"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	Amenities     []string  `gorm:"serializer:json" json:"amenities"`
	Features      []string  `gorm:"serializer:json" json:"features"`
	Policies      []string  `gorm:"serializer:json" json:"policies"`
	Images        []string  `gorm:"serializer:json" json:"images"`
	BasePrice     int64     `json:"basePrice"`
	DiscountPrice *int64    `json:"discountPrice,omitempty"`
	OriginalPrice *int64    `json:"originalPrice,omitempty"`
	Capacity      int       `json:"capacity"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	CheckInTime   string    `gorm:"size:5;default:'14:00'" json:"checkInTime"`
	CheckOutTime  string    `gorm:"size:5;default:'12:00'" json:"checkOutTime"`
	IsActive      bool      `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Branch    *Branch    `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	TimeSlots []TimeSlot `gorm:"foreignKey:RoomID" json:"timeSlots,omitempty"`
}

func (r *Room) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
