package controllers

import (
	"net/http"

	"github.com/adebayo-ng/nairamart-backend/api/responses"
	"github.com/adebayo-ng/nairamart-backend/api/validators"
	coupon "github.com/adebayo-ng/nairamart-backend/internal/coupons"
	"github.com/adebayo-ng/nairamart-backend/pkg/logger"
)

type validateCouponRequest struct {
	Code        string `json:"code" validate:"required"`
	OrderAmount int64  `json:"orderAmount" validate:"required,gt=0"`
}

// ValidateCoupon checks a coupon against the caller's pre-discount order
// amount and returns the adjustment it would apply.
func ValidateCoupon(svc coupon.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload validateCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Validate(r.Context(), payload.Code, payload.OrderAmount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"coupon": result})
	}
}
