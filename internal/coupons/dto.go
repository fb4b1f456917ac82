package coupon

import "github.com/google/uuid"

// ValidationResult is the payload returned to clients after validating a
// coupon against an order amount. FinalAmount is authoritative when non-nil:
// callers must replace their computed total with it verbatim.
type ValidationResult struct {
	CouponID       uuid.UUID  `json:"-"`
	VendorID       *uuid.UUID `json:"-"`
	Code           string     `json:"code"`
	DiscountAmount int64      `json:"discountAmount"`
	FinalAmount    *int64     `json:"finalAmount"`
}
