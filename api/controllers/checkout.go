package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/adebayo-ng/nairamart-backend/api/responses"
	"github.com/adebayo-ng/nairamart-backend/api/validators"
	"github.com/adebayo-ng/nairamart-backend/internal/checkout"
	"github.com/adebayo-ng/nairamart-backend/pkg/logger"
)

type quoteItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Qty       int       `json:"qty" validate:"required,gt=0"`
	UnitPrice int64     `json:"unitPrice" validate:"gte=0"`
}

type quoteCheckoutRequest struct {
	Items             []quoteItemRequest `json:"items" validate:"required,min=1,dive"`
	OriginState       string             `json:"originState" validate:"required"`
	State             string             `json:"state" validate:"required"`
	DeliveryTier      string             `json:"deliveryTier,omitempty"`
	CouponCode        string             `json:"couponCode,omitempty"`
	AppliedCouponCode string             `json:"appliedCouponCode,omitempty"`
	AppliedDiscount   int64              `json:"appliedDiscount,omitempty"`
}

func (req quoteCheckoutRequest) toInput() checkout.QuoteInput {
	input := checkout.QuoteInput{
		OriginState:       req.OriginState,
		State:             req.State,
		DeliveryTier:      req.DeliveryTier,
		CouponCode:        req.CouponCode,
		AppliedCouponCode: req.AppliedCouponCode,
		AppliedDiscount:   req.AppliedDiscount,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, checkout.QuoteItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
		})
	}
	return input
}

// QuoteCheckout prices the cart: route classification, tier options,
// recomputed totals and the coupon adjustment.
func QuoteCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quoteCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
