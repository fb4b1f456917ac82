package controllers

import (
	"net/http"

	"github.com/adebayo-ng/nairamart-backend/api/responses"
	"github.com/adebayo-ng/nairamart-backend/api/validators"
	"github.com/adebayo-ng/nairamart-backend/internal/rates"
	"github.com/adebayo-ng/nairamart-backend/pkg/geo"
	"github.com/adebayo-ng/nairamart-backend/pkg/logger"
	"github.com/adebayo-ng/nairamart-backend/pkg/shipping"
)

// ListShippingFees serves the delivery rate table for every category and
// tier, plus the zone/state map storefronts use for their state selector.
func ListShippingFees(svc rates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListRates(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		zones := map[geo.Zone][]string{}
		for _, zone := range geo.Zones() {
			zones[zone] = geo.StatesIn(zone)
		}
		responses.WriteSuccess(w, map[string]any{"deliveryFees": rows, "zones": zones})
	}
}

type resolveShippingRequest struct {
	OriginState string `json:"originState" validate:"required"`
	State       string `json:"state" validate:"required"`
}

// ResolveShipping classifies a route and returns its priced options.
func ResolveShipping(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload resolveShippingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := shipping.Resolve(payload.OriginState, payload.State)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
