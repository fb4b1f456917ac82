package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
	"github.com/adebayo-ng/nairamart-backend/pkg/types"
)

// Order is a customer order placed against a single vendor. Monetary
// fields are whole naira, frozen at submission time.
type Order struct {
	ID              uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     int64                    `gorm:"column:order_number;autoIncrement;uniqueIndex"`
	CustomerID      uuid.UUID                `gorm:"column:customer_id;type:uuid;not null;index"`
	VendorID        uuid.UUID                `gorm:"column:vendor_id;type:uuid;not null;index"`
	AgentID         *uuid.UUID               `gorm:"column:agent_id;type:uuid;index"`
	Status          enums.OrderStatus        `gorm:"column:status;type:text;not null;default:'pending'"`
	OriginState     string                   `gorm:"column:origin_state;not null"`
	DeliveryAddress string                   `gorm:"column:delivery_address;not null"`
	State           string                   `gorm:"column:state;not null"`
	LGA             string                   `gorm:"column:lga"`
	Zipcode         string                   `gorm:"column:zipcode"`
	Phone           string                   `gorm:"column:phone"`
	Subtotal        int64                    `gorm:"column:subtotal;not null"`
	ShippingFee     int64                    `gorm:"column:shipping_fee;not null"`
	Tax             int64                    `gorm:"column:tax;not null"`
	CouponDiscount  int64                    `gorm:"column:coupon_discount;not null;default:0"`
	Total           int64                    `gorm:"column:total;not null"`
	Shipping        *types.ShippingSelection `gorm:"column:shipping;type:jsonb;serializer:json"`
	Coupon          *types.AppliedCoupon     `gorm:"column:coupon;type:jsonb;serializer:json"`
	Items           []OrderLineItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DeliveredAt     *time.Time               `gorm:"column:delivered_at"`
	CanceledAt      *time.Time               `gorm:"column:canceled_at"`
	CreatedAt       time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
