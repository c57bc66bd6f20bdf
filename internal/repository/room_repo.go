package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetByID returns an active room with its branch and active time slots.
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		Preload("Branch").
		Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("price ASC")
		}).
		First(&room).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

// GetTimeSlot returns an active time slot.
func (r *RoomRepository) GetTimeSlot(ctx context.Context, id string) (*domain.TimeSlot, error) {
	var ts domain.TimeSlot
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&ts).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &ts, nil
}
