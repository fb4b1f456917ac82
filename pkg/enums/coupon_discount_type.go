package enums

import "fmt"

// CouponDiscountType describes how a coupon's value is interpreted.
type CouponDiscountType string

const (
	// CouponDiscountFixed subtracts the coupon value from the order amount.
	CouponDiscountFixed CouponDiscountType = "fixed"
	// CouponDiscountPercent subtracts value% of the order amount.
	CouponDiscountPercent CouponDiscountType = "percent"
	// CouponDiscountFinalAmount replaces the order total outright.
	CouponDiscountFinalAmount CouponDiscountType = "final_amount"
)

var validCouponDiscountTypes = []CouponDiscountType{
	CouponDiscountFixed,
	CouponDiscountPercent,
	CouponDiscountFinalAmount,
}

// String implements fmt.Stringer.
func (c CouponDiscountType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CouponDiscountType.
func (c CouponDiscountType) IsValid() bool {
	for _, candidate := range validCouponDiscountTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCouponDiscountType converts raw input into a CouponDiscountType.
func ParseCouponDiscountType(value string) (CouponDiscountType, error) {
	for _, candidate := range validCouponDiscountTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid coupon discount type %q", value)
}
