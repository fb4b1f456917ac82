package pricing

// TaxRatePercent is the flat order tax applied to the item subtotal.
const TaxRatePercent = 2

// Totals breaks down a checkout amount. All values are whole naira.
type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	ShippingFee    int64 `json:"shipping_fee"`
	Tax            int64 `json:"tax"`
	CouponDiscount int64 `json:"coupon_discount"`
	Total          int64 `json:"total"`
}

// Tax returns floor(subtotal * 2%).
func Tax(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	return subtotal * TaxRatePercent / 100
}

// ComposeTotal combines the pricing components into the payable amount.
// A non-nil override is authoritative and returned verbatim; the coupon
// validator supplies it when a coupon carries a fixed final amount.
// Otherwise the locally computed total is clamped at zero so an oversized
// discount can never produce a negative charge.
func ComposeTotal(subtotal, shippingFee, couponDiscount int64, override *int64) int64 {
	if override != nil {
		return *override
	}
	total := subtotal + shippingFee + Tax(subtotal) - couponDiscount
	if total < 0 {
		return 0
	}
	return total
}

// Compose returns the full breakdown for the provided components.
func Compose(subtotal, shippingFee, couponDiscount int64, override *int64) Totals {
	return Totals{
		Subtotal:       subtotal,
		ShippingFee:    shippingFee,
		Tax:            Tax(subtotal),
		CouponDiscount: couponDiscount,
		Total:          ComposeTotal(subtotal, shippingFee, couponDiscount, override),
	}
}

// PreDiscountAmount is the order amount a coupon is validated against:
// subtotal plus the resolved shipping fee plus tax.
func PreDiscountAmount(subtotal, shippingFee int64) int64 {
	return subtotal + shippingFee + Tax(subtotal)
}
