package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
)

// Coupon is a server-managed discount code. Value is naira for fixed and
// final_amount coupons, a percentage (0-100) for percent coupons.
type Coupon struct {
	ID             uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code           string                   `gorm:"column:code;not null;uniqueIndex"`
	DiscountType   enums.CouponDiscountType `gorm:"column:discount_type;type:text;not null"`
	Value          int64                    `gorm:"column:value;not null"`
	MinOrderAmount int64                    `gorm:"column:min_order_amount;not null;default:0"`
	MaxUses        int                      `gorm:"column:max_uses;not null;default:0"`
	UsedCount      int                      `gorm:"column:used_count;not null;default:0"`
	VendorID       *uuid.UUID               `gorm:"column:vendor_id;type:uuid"`
	Active         bool                     `gorm:"column:active;not null;default:true"`
	ExpiresAt      *time.Time               `gorm:"column:expires_at"`
	CreatedAt      time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
