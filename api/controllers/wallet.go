package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/adebayo-ng/nairamart-backend/api/responses"
	"github.com/adebayo-ng/nairamart-backend/api/validators"
	"github.com/adebayo-ng/nairamart-backend/internal/wallet"
	"github.com/adebayo-ng/nairamart-backend/pkg/logger"
)

// GetWallet returns the caller's balance and recent ledger entries.
func GetWallet(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetWallet(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type setPINRequest struct {
	PIN string `json:"pin" validate:"required,len=4,numeric"`
}

// SetWalletPIN stores the caller's 4-digit transaction PIN.
func SetWalletPIN(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setPINRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetPIN(r.Context(), userID, payload.PIN); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"pinSet": true})
	}
}

type topUpRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// TopUpWallet credits the caller's wallet. The ledger reference comes from
// the Idempotency-Key header so a retried request credits once.
func TopUpWallet(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload topUpRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reference := r.Header.Get("Idempotency-Key")
		if reference == "" {
			reference = uuid.NewString()
		}

		dto, err := svc.TopUp(r.Context(), userID, payload.Amount, "topup:"+userID.String()+":"+reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
