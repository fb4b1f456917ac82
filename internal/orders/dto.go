package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
	"github.com/adebayo-ng/nairamart-backend/pkg/types"
)

// LineItemInput is one cart line submitted with an order.
type LineItemInput struct {
	ProductID uuid.UUID
	Name      string
	Qty       int
	UnitPrice int64
}

// CreateOrderInput holds the validated payload to place an order. Monetary
// totals are never taken from the client; they are recomputed here.
type CreateOrderInput struct {
	VendorID        uuid.UUID
	Items           []LineItemInput
	OriginState     string
	DeliveryAddress string
	State           string
	LGA             string
	Zipcode         string
	Phone           string
	PIN             string
	DeliveryTier    string
	CouponCode      string
}

// ListOrdersInput holds cursor pagination parameters for order listings.
// Status narrows the page to one lifecycle state when set.
type ListOrdersInput struct {
	Limit  int
	Cursor string
	Status *enums.OrderStatus
}

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID              uuid.UUID                `json:"id"`
	OrderNumber     int64                    `json:"orderNumber"`
	CustomerID      uuid.UUID                `json:"customerId"`
	VendorID        uuid.UUID                `json:"vendorId"`
	AgentID         *uuid.UUID               `json:"agentId,omitempty"`
	Status          string                   `json:"status"`
	OriginState     string                   `json:"originState"`
	DeliveryAddress string                   `json:"deliveryAddress"`
	State           string                   `json:"state"`
	LGA             string                   `json:"lga,omitempty"`
	Zipcode         string                   `json:"zipcode,omitempty"`
	Phone           string                   `json:"phone,omitempty"`
	Subtotal        int64                    `json:"subtotal"`
	ShippingFee     int64                    `json:"shippingFee"`
	Tax             int64                    `json:"tax"`
	CouponDiscount  int64                    `json:"couponDiscount"`
	Total           int64                    `json:"total"`
	Shipping        *types.ShippingSelection `json:"shipping,omitempty"`
	Coupon          *types.AppliedCoupon     `json:"coupon,omitempty"`
	Items           []LineItemDTO            `json:"items"`
	DeliveredAt     *time.Time               `json:"deliveredAt,omitempty"`
	CanceledAt      *time.Time               `json:"canceledAt,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// LineItemDTO is one frozen cart line on an order.
type LineItemDTO struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Qty       int       `json:"qty"`
	UnitPrice int64     `json:"unitPrice"`
	Total     int64     `json:"total"`
}

// OrderListResult is one page of orders plus the cursor for the next page.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor *string    `json:"nextCursor,omitempty"`
}

func toOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		VendorID:        order.VendorID,
		AgentID:         order.AgentID,
		Status:          order.Status.String(),
		OriginState:     order.OriginState,
		DeliveryAddress: order.DeliveryAddress,
		State:           order.State,
		LGA:             order.LGA,
		Zipcode:         order.Zipcode,
		Phone:           order.Phone,
		Subtotal:        order.Subtotal,
		ShippingFee:     order.ShippingFee,
		Tax:             order.Tax,
		CouponDiscount:  order.CouponDiscount,
		Total:           order.Total,
		Shipping:        order.Shipping,
		Coupon:          order.Coupon,
		DeliveredAt:     order.DeliveredAt,
		CanceledAt:      order.CanceledAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, LineItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	return dto
}
