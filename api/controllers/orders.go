package controllers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/adebayo-ng/nairamart-backend/api/responses"
	"github.com/adebayo-ng/nairamart-backend/api/validators"
	"github.com/adebayo-ng/nairamart-backend/internal/checkout"
	"github.com/adebayo-ng/nairamart-backend/internal/orders"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
	"github.com/adebayo-ng/nairamart-backend/pkg/logger"
)

type orderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Qty       int       `json:"qty" validate:"required,gt=0"`
	UnitPrice int64     `json:"unitPrice" validate:"gte=0"`
}

type createOrderRequest struct {
	VendorID        uuid.UUID          `json:"vendorId" validate:"required"`
	Products        []orderItemRequest `json:"products" validate:"required,min=1,dive"`
	OriginState     string             `json:"originState" validate:"required"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"required"`
	State           string             `json:"state" validate:"required"`
	LGA             string             `json:"lga,omitempty"`
	Zipcode         string             `json:"zipcode,omitempty"`
	Phone           string             `json:"phone,omitempty"`
	PIN             string             `json:"pin" validate:"required,len=4,numeric"`
	DeliveryType    string             `json:"deliveryType,omitempty"`
	CouponCode      string             `json:"couponCode,omitempty"`
}

func (req createOrderRequest) toInput() orders.CreateOrderInput {
	input := orders.CreateOrderInput{
		VendorID:        req.VendorID,
		OriginState:     req.OriginState,
		DeliveryAddress: req.DeliveryAddress,
		State:           req.State,
		LGA:             req.LGA,
		Zipcode:         req.Zipcode,
		Phone:           req.Phone,
		PIN:             req.PIN,
		DeliveryTier:    req.DeliveryType,
		CouponCode:      req.CouponCode,
	}
	for _, item := range req.Products {
		input.Items = append(input.Items, orders.LineItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
		})
	}
	return input
}

func (req createOrderRequest) toSubmission() checkout.SubmissionInput {
	submission := checkout.SubmissionInput{
		OriginState:     req.OriginState,
		State:           req.State,
		DeliveryTier:    req.DeliveryType,
		DeliveryAddress: req.DeliveryAddress,
		PIN:             req.PIN,
	}
	for _, item := range req.Products {
		submission.Items = append(submission.Items, checkout.QuoteItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
		})
	}
	return submission
}

// CreateOrder places an order. The submission gates run first; only a cart
// that passes them claims the per-user in-flight slot and reaches the
// database.
func CreateOrder(svc orders.Service, gates checkout.Service, guard *checkout.Guard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := gates.ValidateSubmission(payload.toSubmission()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if guard != nil {
			if err := guard.Begin(r.Context(), customerID); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			defer guard.End(r.Context(), customerID)
		}

		order, err := svc.Create(r.Context(), customerID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListMyOrders pages the caller's orders.
func ListMyOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := listInputFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListCustomerOrders(r.Context(), customerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetOrder returns one order visible to the caller.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// CancelOrder withdraws a pending order and refunds the wallet.
func CancelOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Cancel(r.Context(), customerID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func listInputFromQuery(r *http.Request) (orders.ListOrdersInput, error) {
	input := orders.ListOrdersInput{Cursor: r.URL.Query().Get("cursor")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			input.Limit = limit
		}
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		input.Status = &status
	}
	return input, nil
}
