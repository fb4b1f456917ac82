package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	coupon "github.com/adebayo-ng/nairamart-backend/internal/coupons"
	"github.com/adebayo-ng/nairamart-backend/pkg/db"
	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
	"github.com/adebayo-ng/nairamart-backend/pkg/pagination"
	"github.com/adebayo-ng/nairamart-backend/pkg/pricing"
	"github.com/adebayo-ng/nairamart-backend/pkg/shipping"
	"github.com/adebayo-ng/nairamart-backend/pkg/types"
)

// Service exposes the order lifecycle: placement, customer cancellation,
// vendor decisions and agent delivery.
type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, requesterID uuid.UUID, orderID uuid.UUID) (*OrderDTO, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID, input ListOrdersInput) (*OrderListResult, error)
	ListVendorOrders(ctx context.Context, vendorID uuid.UUID, input ListOrdersInput) (*OrderListResult, error)
	ListAgentOrders(ctx context.Context, agentID uuid.UUID, input ListOrdersInput) (*OrderListResult, error)
	Cancel(ctx context.Context, customerID uuid.UUID, orderID uuid.UUID) (*OrderDTO, error)
	VendorDecision(ctx context.Context, vendorID uuid.UUID, orderID uuid.UUID, accept bool) (*OrderDTO, error)
	Ship(ctx context.Context, vendorID uuid.UUID, orderID uuid.UUID, agentID uuid.UUID) (*OrderDTO, error)
	Deliver(ctx context.Context, agentID uuid.UUID, orderID uuid.UUID) (*OrderDTO, error)
}

type couponValidator interface {
	Validate(ctx context.Context, code string, orderAmount int64) (*coupon.ValidationResult, error)
	Redeem(ctx context.Context, tx *gorm.DB, couponID uuid.UUID) error
}

type walletMover interface {
	VerifyPIN(ctx context.Context, userID uuid.UUID, pin string) error
	Debit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int64, entryType enums.WalletEntryType, orderID *uuid.UUID, reference string) error
	Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int64, entryType enums.WalletEntryType, orderID *uuid.UUID, reference string) error
}

type commissionPayer interface {
	OnOrderDelivered(ctx context.Context, tx *gorm.DB, orderID, customerID uuid.UUID, subtotal int64) error
}

type service struct {
	repo      *Repository
	dbClient  *db.Client
	coupons   couponValidator
	wallets   walletMover
	referrals commissionPayer
	now       func() time.Time
}

// NewService constructs an order service instance.
func NewService(repo *Repository, dbClient *db.Client, coupons couponValidator, wallets walletMover, referrals commissionPayer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if coupons == nil {
		return nil, fmt.Errorf("coupon service required")
	}
	if wallets == nil {
		return nil, fmt.Errorf("wallet service required")
	}
	if referrals == nil {
		return nil, fmt.Errorf("referrals service required")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		coupons:   coupons,
		wallets:   wallets,
		referrals: referrals,
		now:       time.Now,
	}, nil
}

// Create validates the cart, recomputes every monetary figure server-side,
// verifies the transaction PIN and then, in one transaction, persists the
// order, redeems the coupon and debits the customer's wallet.
func (s *service) Create(ctx context.Context, customerID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	quote, err := shipping.Resolve(input.OriginState, input.State)
	if err != nil {
		return nil, err
	}
	tier := shipping.TierStandard
	if input.DeliveryTier != "" {
		if tier, err = shipping.ParseTier(input.DeliveryTier); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}
	option, err := shipping.Option(quote.Category, tier)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	subtotal := int64(0)
	items := make([]models.OrderLineItem, 0, len(input.Items))
	for _, line := range input.Items {
		lineTotal := int64(line.Qty) * line.UnitPrice
		subtotal += lineTotal
		items = append(items, models.OrderLineItem{
			ID:        uuid.New(),
			ProductID: line.ProductID,
			Name:      strings.TrimSpace(line.Name),
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			Total:     lineTotal,
		})
	}

	tax := pricing.Tax(subtotal)
	preDiscount := subtotal + option.Price + tax

	var applied *types.AppliedCoupon
	var couponID uuid.UUID
	discount := int64(0)
	var override *int64
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		result, err := s.coupons.Validate(ctx, code, preDiscount)
		if err != nil {
			return nil, err
		}
		if result.VendorID != nil && *result.VendorID != input.VendorID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not valid for this vendor")
		}
		couponID = result.CouponID
		discount = result.DiscountAmount
		override = result.FinalAmount
		applied = &types.AppliedCoupon{
			Code:           result.Code,
			DiscountAmount: result.DiscountAmount,
			FinalAmount:    result.FinalAmount,
		}
	}

	total := pricing.ComposeTotal(subtotal, option.Price, discount, override)

	if err := s.wallets.VerifyPIN(ctx, customerID, input.PIN); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		VendorID:        input.VendorID,
		Status:          enums.OrderStatusPending,
		OriginState:     input.OriginState,
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		State:           input.State,
		LGA:             strings.TrimSpace(input.LGA),
		Zipcode:         strings.TrimSpace(input.Zipcode),
		Phone:           strings.TrimSpace(input.Phone),
		Subtotal:        subtotal,
		ShippingFee:     option.Price,
		Tax:             tax,
		CouponDiscount:  discount,
		Total:           total,
		Shipping: &types.ShippingSelection{
			Category: quote.Category,
			Tier:     option.Tier,
			Price:    option.Price,
			ETA:      option.ETA,
		},
		Coupon: applied,
		Items:  items,
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if couponID != uuid.Nil {
			if err := s.coupons.Redeem(ctx, tx, couponID); err != nil {
				return err
			}
		}
		if total > 0 {
			if err := s.wallets.Debit(ctx, tx, customerID, total, enums.WalletEntryOrderPayment, &order.ID, paymentReference(order.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reload(ctx, order.ID)
}

// GetOrder returns an order visible to the requester: its customer, its
// vendor or its assigned agent.
func (s *service) GetOrder(ctx context.Context, requesterID uuid.UUID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != requesterID && order.VendorID != requesterID &&
		(order.AgentID == nil || *order.AgentID != requesterID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return toOrderDTO(order), nil
}

func (s *service) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, input ListOrdersInput) (*OrderListResult, error) {
	orders, next, err := s.repo.ListByCustomer(ctx, customerID, input.Status, pagination.Params{Limit: input.Limit, Cursor: input.Cursor})
	return buildListResult(orders, next, err)
}

func (s *service) ListVendorOrders(ctx context.Context, vendorID uuid.UUID, input ListOrdersInput) (*OrderListResult, error) {
	orders, next, err := s.repo.ListByVendor(ctx, vendorID, input.Status, pagination.Params{Limit: input.Limit, Cursor: input.Cursor})
	return buildListResult(orders, next, err)
}

func (s *service) ListAgentOrders(ctx context.Context, agentID uuid.UUID, input ListOrdersInput) (*OrderListResult, error) {
	orders, next, err := s.repo.ListByAgent(ctx, agentID, input.Status, pagination.Params{Limit: input.Limit, Cursor: input.Cursor})
	return buildListResult(orders, next, err)
}

// Cancel lets the customer withdraw a pending order. The wallet refund and
// the status change commit together.
func (s *service) Cancel(ctx context.Context, customerID uuid.UUID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer")
	}
	if err := s.cancelAndRefund(ctx, order); err != nil {
		return nil, err
	}
	return s.reload(ctx, orderID)
}

// VendorDecision accepts or rejects a pending order. Rejection refunds the
// customer in full.
func (s *service) VendorDecision(ctx context.Context, vendorID uuid.UUID, orderID uuid.UUID, accept bool) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another vendor")
	}

	if !accept {
		if err := s.cancelAndRefund(ctx, order); err != nil {
			return nil, err
		}
		return s.reload(ctx, orderID)
	}

	if !order.Status.CanTransitionTo(enums.OrderStatusAccepted) {
		return nil, transitionConflict(order.Status, enums.OrderStatusAccepted)
	}
	moved, err := s.repo.UpdateStatus(ctx, orderID, enums.OrderStatusPending, enums.OrderStatusAccepted, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "accept order")
	}
	if !moved {
		return nil, transitionConflict(order.Status, enums.OrderStatusAccepted)
	}
	return s.reload(ctx, orderID)
}

// Ship dispatches an accepted order with a delivery agent.
func (s *service) Ship(ctx context.Context, vendorID uuid.UUID, orderID uuid.UUID, agentID uuid.UUID) (*OrderDTO, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent id required")
	}
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != vendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another vendor")
	}

	if !order.Status.CanTransitionTo(enums.OrderStatusShipped) {
		return nil, transitionConflict(order.Status, enums.OrderStatusShipped)
	}
	moved, err := s.repo.UpdateStatus(ctx, orderID, enums.OrderStatusAccepted, enums.OrderStatusShipped, map[string]any{"agent_id": agentID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ship order")
	}
	if !moved {
		return nil, transitionConflict(order.Status, enums.OrderStatusShipped)
	}
	return s.reload(ctx, orderID)
}

// Deliver marks a shipped order delivered and pays referral commission in
// the same transaction.
func (s *service) Deliver(ctx context.Context, agentID uuid.UUID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.AgentID == nil || *order.AgentID != agentID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order is dispatched to another agent")
	}
	if !order.Status.CanTransitionTo(enums.OrderStatusDelivered) {
		return nil, transitionConflict(order.Status, enums.OrderStatusDelivered)
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		moved, err := repo.UpdateStatus(ctx, orderID, enums.OrderStatusShipped, enums.OrderStatusDelivered, map[string]any{"delivered_at": s.now()})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deliver order")
		}
		if !moved {
			return transitionConflict(order.Status, enums.OrderStatusDelivered)
		}
		return s.referrals.OnOrderDelivered(ctx, tx, orderID, order.CustomerID, order.Subtotal)
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, orderID)
}

func (s *service) cancelAndRefund(ctx context.Context, order *models.Order) error {
	if !order.Status.CanTransitionTo(enums.OrderStatusCanceled) {
		return transitionConflict(order.Status, enums.OrderStatusCanceled)
	}
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		moved, err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusCanceled, map[string]any{"canceled_at": s.now()})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
		}
		if !moved {
			return transitionConflict(order.Status, enums.OrderStatusCanceled)
		}
		if order.Total > 0 {
			return s.wallets.Credit(ctx, tx, order.CustomerID, order.Total, enums.WalletEntryOrderRefund, &order.ID, refundReference(order.ID))
		}
		return nil
	})
}

func (s *service) findOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) reload(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

func buildListResult(orders []models.Order, next *pagination.Cursor, err error) (*OrderListResult, error) {
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	result := &OrderListResult{Orders: make([]OrderDTO, 0, len(orders))}
	for i := range orders {
		result.Orders = append(result.Orders, *toOrderDTO(&orders[i]))
	}
	if next != nil {
		encoded := pagination.EncodeCursor(*next)
		result.NextCursor = &encoded
	}
	return result, nil
}

func validateCreateInput(input CreateOrderInput) error {
	if input.VendorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, line := range input.Items {
		if line.Qty <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity for %q must be positive", line.Name))
		}
		if line.UnitPrice < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unit price for %q must not be negative", line.Name))
		}
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address required")
	}
	return nil
}

func transitionConflict(from, to enums.OrderStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict,
		fmt.Sprintf("order cannot move from %s to %s", from, to))
}

func paymentReference(orderID uuid.UUID) string {
	return "order:" + orderID.String()
}

func refundReference(orderID uuid.UUID) string {
	return "refund:" + orderID.String()
}
