package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/adebayo-ng/nairamart-backend/pkg/shipping"
)

// ShippingSelection stores the tier the buyer settled on at submission,
// frozen onto the order as JSONB.
type ShippingSelection struct {
	Category shipping.Category `json:"category"`
	Tier     shipping.Tier     `json:"tier"`
	Price    int64             `json:"price"`
	ETA      string            `json:"eta"`
}

// Value serializes the selection to JSON.
func (s *ShippingSelection) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan decodes JSONB into the selection struct.
func (s *ShippingSelection) Scan(value interface{}) error {
	if value == nil {
		*s = ShippingSelection{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, s)
}

// AppliedCoupon captures the validated coupon frozen onto an order.
// FinalAmount is the server-authoritative override when present.
type AppliedCoupon struct {
	Code           string `json:"code"`
	DiscountAmount int64  `json:"discount_amount"`
	FinalAmount    *int64 `json:"final_amount,omitempty"`
}

// Value serializes the coupon snapshot to JSON.
func (a *AppliedCoupon) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan decodes JSONB into the coupon snapshot.
func (a *AppliedCoupon) Scan(value interface{}) error {
	if value == nil {
		*a = AppliedCoupon{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, a)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
