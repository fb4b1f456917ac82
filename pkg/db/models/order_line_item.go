package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderLineItem is one cart line frozen onto an order.
type OrderLineItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name      string    `gorm:"column:name;not null"`
	Qty       int       `gorm:"column:qty;not null"`
	UnitPrice int64     `gorm:"column:unit_price;not null"`
	Total     int64     `gorm:"column:total;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
