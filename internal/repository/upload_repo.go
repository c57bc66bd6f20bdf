package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/thanhlp18/homestay-booking-sub000/internal/domain"
)

type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) Create(ctx context.Context, u *domain.Upload) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// ListUnreferenced returns uploads created before cutoff that no booking
// points at, oldest first.
func (r *UploadRepository) ListUnreferenced(ctx context.Context, before time.Time, limit int) ([]domain.Upload, error) {
	db := r.db.WithContext(ctx)
	front := db.Model(&domain.Booking{}).Select("front_id_image_url").Where("front_id_image_url <> ''")
	back := db.Model(&domain.Booking{}).Select("back_id_image_url").Where("back_id_image_url <> ''")

	var out []domain.Upload
	err := db.
		Where("created_at < ?", before.UTC()).
		Where("url NOT IN (?)", front).
		Where("url NOT IN (?)", back).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *UploadRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Upload{}, "id = ?", id).Error
}
