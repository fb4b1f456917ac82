package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adebayo-ng/nairamart-backend/pkg/shipping"
)

// DeliveryRate is an ops-staged price row served by the shipping-fees
// endpoint. Route resolution always prices from the static table in
// pkg/shipping; these rows only overlay what the endpoint displays.
type DeliveryRate struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Category  shipping.Category `gorm:"column:category;type:text;not null;uniqueIndex:idx_delivery_rates_route"`
	Tier      shipping.Tier     `gorm:"column:tier;type:text;not null;uniqueIndex:idx_delivery_rates_route"`
	Price     int64             `gorm:"column:price;not null"`
	ETA       string            `gorm:"column:eta;not null"`
	Active    bool              `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
