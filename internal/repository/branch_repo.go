package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
)

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// ListActive returns active branches with their active rooms.
func (r *BranchRepository) ListActive(ctx context.Context) ([]domain.Branch, error) {
	var branches []domain.Branch
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Rooms", "is_active = ?", true).
		Order("name ASC").
		Find(&branches).Error
	return branches, err
}

func (r *BranchRepository) GetBySlug(ctx context.Context, slug string) (*domain.Branch, error) {
	var b domain.Branch
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		Preload("Rooms", "is_active = ?", true).
		Preload("Rooms.TimeSlots", "is_active = ?", true).
		First(&b).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}
