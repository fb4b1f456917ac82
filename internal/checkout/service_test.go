package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coupon "github.com/adebayo-ng/nairamart-backend/internal/coupons"
	"github.com/adebayo-ng/nairamart-backend/pkg/config"
	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
	"github.com/adebayo-ng/nairamart-backend/pkg/shipping"
)

type stubCouponValidator struct {
	calls  int
	result *coupon.ValidationResult
	err    error
}

func (s *stubCouponValidator) Validate(_ context.Context, code string, orderAmount int64) (*coupon.ValidationResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &coupon.ValidationResult{Code: code}, nil
}

func sampleQuoteInput() QuoteInput {
	return QuoteInput{
		Items: []QuoteItemInput{
			{ProductID: uuid.New(), Name: "Ankara tote", Qty: 2, UnitPrice: 3000},
			{ProductID: uuid.New(), Name: "Aso oke cap", Qty: 1, UnitPrice: 4000},
		},
		OriginState:  "Lagos",
		State:        "Ogun",
		DeliveryTier: "standard",
	}
}

func TestQuotePricesInterStateRoute(t *testing.T) {
	validator := &stubCouponValidator{}
	svc, err := NewService(validator)
	require.NoError(t, err)

	dto, err := svc.Quote(context.Background(), sampleQuoteInput())
	require.NoError(t, err)

	assert.Equal(t, shipping.CategoryInterState, dto.Shipping.Category)
	assert.Equal(t, int64(1000), dto.Selected.Price)
	assert.Equal(t, int64(10000), dto.Totals.Subtotal)
	assert.Equal(t, int64(200), dto.Totals.Tax)
	assert.Equal(t, int64(11200), dto.Totals.Total)
	assert.Zero(t, validator.calls)
}

func TestQuoteDefaultsToStandardOnRouteChange(t *testing.T) {
	svc, err := NewService(&stubCouponValidator{})
	require.NoError(t, err)

	input := sampleQuoteInput()
	input.State = "Kano"
	input.DeliveryTier = ""

	dto, err := svc.Quote(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, shipping.CategoryInterRegional, dto.Shipping.Category)
	assert.Equal(t, shipping.TierStandard, dto.Selected.Tier)
	assert.Equal(t, int64(2000), dto.Selected.Price)
}

func TestQuoteAppliesCoupon(t *testing.T) {
	validator := &stubCouponValidator{result: &coupon.ValidationResult{Code: "SAVE200", DiscountAmount: 200}}
	svc, err := NewService(validator)
	require.NoError(t, err)

	input := sampleQuoteInput()
	input.CouponCode = "SAVE200"

	dto, err := svc.Quote(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, validator.calls)
	assert.Equal(t, int64(200), dto.Totals.CouponDiscount)
	assert.Equal(t, int64(11000), dto.Totals.Total)
}

func TestQuoteFinalAmountOverrideWins(t *testing.T) {
	final := int64(9999)
	validator := &stubCouponValidator{result: &coupon.ValidationResult{Code: "FLAT9999", DiscountAmount: 1201, FinalAmount: &final}}
	svc, err := NewService(validator)
	require.NoError(t, err)

	input := sampleQuoteInput()
	input.CouponCode = "FLAT9999"

	dto, err := svc.Quote(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(9999), dto.Totals.Total)
}

func TestQuoteGatesRunBeforeCouponLookup(t *testing.T) {
	validator := &stubCouponValidator{}
	svc, err := NewService(validator)
	require.NoError(t, err)

	input := sampleQuoteInput()
	input.CouponCode = "SAVE200"
	input.Items[0].Qty = 0

	_, err = svc.Quote(context.Background(), input)
	require.Error(t, err)
	assert.Zero(t, validator.calls, "coupon endpoint must not be called when gates fail")

	input = sampleQuoteInput()
	input.CouponCode = "SAVE200"
	input.State = "Atlantis"

	_, err = svc.Quote(context.Background(), input)
	require.Error(t, err)
	assert.Zero(t, validator.calls)
}

func TestQuoteRejectsSecondCoupon(t *testing.T) {
	validator := &stubCouponValidator{}
	svc, err := NewService(validator)
	require.NoError(t, err)

	input := sampleQuoteInput()
	input.AppliedCouponCode = "SAVE200"
	input.AppliedDiscount = 200
	input.CouponCode = "TENOFF"

	_, err = svc.Quote(context.Background(), input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	assert.Zero(t, validator.calls)
}

func TestQuoteAllowsRevalidatingSameCoupon(t *testing.T) {
	validator := &stubCouponValidator{}
	svc, err := NewService(validator)
	require.NoError(t, err)

	input := sampleQuoteInput()
	input.AppliedCouponCode = "save200"
	input.AppliedDiscount = 200
	input.CouponCode = "SAVE200"

	_, err = svc.Quote(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, validator.calls)
}

func TestValidateSubmission(t *testing.T) {
	svc, err := NewService(&stubCouponValidator{})
	require.NoError(t, err)

	valid := SubmissionInput{
		Items:           []QuoteItemInput{{ProductID: uuid.New(), Name: "Ankara tote", Qty: 1, UnitPrice: 3000}},
		OriginState:     "Lagos",
		State:           "Ogun",
		DeliveryTier:    "express",
		DeliveryAddress: "12 Allen Avenue, Ikeja",
		PIN:             "1234",
	}
	require.NoError(t, svc.ValidateSubmission(valid))

	cases := map[string]func(*SubmissionInput){
		"emptyCart":     func(in *SubmissionInput) { in.Items = nil },
		"zeroQty":       func(in *SubmissionInput) { in.Items[0].Qty = 0 },
		"noAddress":     func(in *SubmissionInput) { in.DeliveryAddress = "  " },
		"badState":      func(in *SubmissionInput) { in.State = "Atlantis" },
		"badTier":       func(in *SubmissionInput) { in.DeliveryTier = "overnight" },
		"badPIN":        func(in *SubmissionInput) { in.PIN = "12" },
		"nonDigitPIN":   func(in *SubmissionInput) { in.PIN = "12a4" },
		"missingOrigin": func(in *SubmissionInput) { in.OriginState = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := valid
			input.Items = append([]QuoteItemInput(nil), valid.Items...)
			mutate(&input)
			err := svc.ValidateSubmission(input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

type fakeInflightStore struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newFakeInflightStore() *fakeInflightStore {
	return &fakeInflightStore{keys: map[string]struct{}{}}
}

func (f *fakeInflightStore) SetNX(_ context.Context, key string, _ any, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.keys[key]; exists {
		return false, nil
	}
	f.keys[key] = struct{}{}
	return true, nil
}

func (f *fakeInflightStore) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.keys, key)
	}
	return nil
}

func (f *fakeInflightStore) InflightKey(scope, id string) string {
	return "inflight:" + scope + ":" + id
}

func TestGuardSerializesSubmissions(t *testing.T) {
	store := newFakeInflightStore()
	guard, err := NewGuard(store, config.CheckoutConfig{InflightTTL: time.Second})
	require.NoError(t, err)
	userID := uuid.New()

	require.NoError(t, guard.Begin(context.Background(), userID))

	err = guard.Begin(context.Background(), userID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	// A different user is unaffected.
	require.NoError(t, guard.Begin(context.Background(), uuid.New()))

	guard.End(context.Background(), userID)
	require.NoError(t, guard.Begin(context.Background(), userID))
}
