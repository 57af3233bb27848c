package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/blog-platform/internal/models"
)

type LocationRepository struct{ db *gorm.DB }

func NewLocationRepository(db *gorm.DB) *LocationRepository { return &LocationRepository{db: db} }

func (r *LocationRepository) Published(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("name ASC").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *LocationRepository) Create(ctx context.Context, l *models.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}
