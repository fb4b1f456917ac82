package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	coupon "github.com/adebayo-ng/nairamart-backend/internal/coupons"
	"github.com/adebayo-ng/nairamart-backend/pkg/config"
	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
	"github.com/adebayo-ng/nairamart-backend/pkg/pricing"
	"github.com/adebayo-ng/nairamart-backend/pkg/security"
	"github.com/adebayo-ng/nairamart-backend/pkg/shipping"
)

// Service prices a cart before submission: shipping options for the route,
// recomputed totals and the coupon adjustment. Quote never has side effects;
// order placement lives in the orders service.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*QuoteDTO, error)
	ValidateSubmission(input SubmissionInput) error
}

type couponValidator interface {
	Validate(ctx context.Context, code string, orderAmount int64) (*coupon.ValidationResult, error)
}

type service struct {
	coupons couponValidator
}

// NewService constructs a checkout service instance.
func NewService(coupons couponValidator) (Service, error) {
	if coupons == nil {
		return nil, fmt.Errorf("coupon service required")
	}
	return &service{coupons: coupons}, nil
}

// Quote resolves the route, prices the selected tier and applies the coupon
// against the pre-discount amount. All gate checks run before the coupon
// lookup, so a bad cart never reaches the database.
func (s *service) Quote(ctx context.Context, input QuoteInput) (*QuoteDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	subtotal := int64(0)
	for _, line := range input.Items {
		if line.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity for %q must be positive", line.Name))
		}
		if line.UnitPrice < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unit price for %q must not be negative", line.Name))
		}
		subtotal += int64(line.Qty) * line.UnitPrice
	}

	newCode := strings.TrimSpace(input.CouponCode)
	appliedCode := strings.TrimSpace(input.AppliedCouponCode)
	if newCode != "" && appliedCode != "" && !strings.EqualFold(newCode, appliedCode) && input.AppliedDiscount > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "a coupon is already applied to this order")
	}

	quote, err := shipping.Resolve(input.OriginState, input.State)
	if err != nil {
		return nil, err
	}

	// A destination change never carries the old tier along; selection
	// resets to Standard unless the request names a tier for this route.
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

	tax := pricing.Tax(subtotal)
	preDiscount := subtotal + option.Price + tax

	dto := &QuoteDTO{
		Shipping: quote,
		Selected: option,
	}

	discount := int64(0)
	var override *int64
	if newCode != "" {
		result, err := s.coupons.Validate(ctx, newCode, preDiscount)
		if err != nil {
			return nil, err
		}
		discount = result.DiscountAmount
		override = result.FinalAmount
		dto.Coupon = result
	}

	dto.Totals = pricing.Compose(subtotal, option.Price, discount, override)
	return dto, nil
}

// ValidateSubmission runs every order gate that needs no I/O. It is called
// before the in-flight guard and before any database work.
func (s *service) ValidateSubmission(input SubmissionInput) error {
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	for _, line := range input.Items {
		if line.Qty <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity for %q must be positive", line.Name))
		}
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address required")
	}
	if _, err := shipping.Resolve(input.OriginState, input.State); err != nil {
		return err
	}
	if input.DeliveryTier != "" {
		if _, err := shipping.ParseTier(input.DeliveryTier); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}
	if err := security.ValidatePINFormat(input.PIN); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	return nil
}

// Guard serializes order submission per user. It replaces a client-held
// busy flag with a shared lock that survives the client: a crashed caller
// releases it via the TTL.
type Guard struct {
	store inflightStore
	ttl   time.Duration
}

type inflightStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	InflightKey(scope, id string) string
}

// NewGuard builds the submission guard.
func NewGuard(store inflightStore, cfg config.CheckoutConfig) (*Guard, error) {
	if store == nil {
		return nil, fmt.Errorf("inflight store required")
	}
	ttl := cfg.InflightTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Guard{store: store, ttl: ttl}, nil
}

// Begin claims the user's submission slot. A second submission while one is
// in flight gets STATE_CONFLICT.
func (g *Guard) Begin(ctx context.Context, userID uuid.UUID) error {
	key := g.store.InflightKey("checkout", userID.String())
	claimed, err := g.store.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), g.ttl)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim submission slot")
	}
	if !claimed {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "an order submission is already in flight")
	}
	return nil
}

// End releases the slot. Errors are swallowed: the TTL is the backstop.
func (g *Guard) End(ctx context.Context, userID uuid.UUID) {
	key := g.store.InflightKey("checkout", userID.String())
	_ = g.store.Del(ctx, key)
}
