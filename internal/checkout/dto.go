package checkout

import (
	"github.com/google/uuid"

	coupon "github.com/adebayo-ng/nairamart-backend/internal/coupons"
	"github.com/adebayo-ng/nairamart-backend/pkg/pricing"
	"github.com/adebayo-ng/nairamart-backend/pkg/shipping"
)

// QuoteItemInput is one cart line to price.
type QuoteItemInput struct {
	ProductID uuid.UUID
	Name      string
	Qty       int
	UnitPrice int64
}

// QuoteInput holds the cart state to price. AppliedCouponCode and
// AppliedDiscount describe a coupon the caller already holds; CouponCode is
// the one being applied now.
type QuoteInput struct {
	Items             []QuoteItemInput
	OriginState       string
	State             string
	DeliveryTier      string
	CouponCode        string
	AppliedCouponCode string
	AppliedDiscount   int64
}

// SubmissionInput holds the fields gated before order placement.
type SubmissionInput struct {
	Items           []QuoteItemInput
	OriginState     string
	State           string
	DeliveryTier    string
	DeliveryAddress string
	PIN             string
}

// QuoteDTO is the priced cart returned to clients.
type QuoteDTO struct {
	Shipping shipping.Quote           `json:"shipping"`
	Selected shipping.ShippingOption  `json:"selected"`
	Coupon   *coupon.ValidationResult `json:"coupon,omitempty"`
	Totals   pricing.Totals           `json:"totals"`
}
