package rates

import (
	"context"

	"gorm.io/gorm"

	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
)

// Repository loads ops-staged delivery rate rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns all active overlay rows.
func (r *Repository) ListActive(ctx context.Context) ([]models.DeliveryRate, error) {
	var rows []models.DeliveryRate
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("category, tier").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
