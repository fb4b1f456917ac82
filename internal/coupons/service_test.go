package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
)

func setupCouponTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	schema := `
CREATE TABLE IF NOT EXISTS coupons (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  discount_type TEXT NOT NULL,
  value INTEGER NOT NULL,
  min_order_amount INTEGER NOT NULL DEFAULT 0,
  max_uses INTEGER NOT NULL DEFAULT 0,
  used_count INTEGER NOT NULL DEFAULT 0,
  vendor_id TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  expires_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedCoupon(t *testing.T, db *gorm.DB, coupon *models.Coupon) *models.Coupon {
	t.Helper()
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	require.NoError(t, db.Create(coupon).Error)
	return coupon
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestValidateFixedCoupon(t *testing.T) {
	db := setupCouponTestDB(t)
	seedCoupon(t, db, &models.Coupon{
		Code:         "SAVE200",
		DiscountType: enums.CouponDiscountFixed,
		Value:        200,
		Active:       true,
	})
	svc := newTestService(t, db)

	result, err := svc.Validate(context.Background(), "SAVE200", 11200)
	require.NoError(t, err)
	assert.Equal(t, int64(200), result.DiscountAmount)
	assert.Nil(t, result.FinalAmount)
}

func TestValidateCodeIsCaseInsensitive(t *testing.T) {
	db := setupCouponTestDB(t)
	seedCoupon(t, db, &models.Coupon{
		Code:         "SAVE200",
		DiscountType: enums.CouponDiscountFixed,
		Value:        200,
		Active:       true,
	})
	svc := newTestService(t, db)

	result, err := svc.Validate(context.Background(), "save200", 5000)
	require.NoError(t, err)
	assert.Equal(t, "SAVE200", result.Code)
}

func TestValidatePercentCoupon(t *testing.T) {
	db := setupCouponTestDB(t)
	seedCoupon(t, db, &models.Coupon{
		Code:         "TENOFF",
		DiscountType: enums.CouponDiscountPercent,
		Value:        10,
		Active:       true,
	})
	svc := newTestService(t, db)

	result, err := svc.Validate(context.Background(), "TENOFF", 11200)
	require.NoError(t, err)
	assert.Equal(t, int64(1120), result.DiscountAmount)
}

func TestValidateFinalAmountCouponIsAuthoritative(t *testing.T) {
	db := setupCouponTestDB(t)
	seedCoupon(t, db, &models.Coupon{
		Code:         "FLAT9999",
		DiscountType: enums.CouponDiscountFinalAmount,
		Value:        9999,
		Active:       true,
	})
	svc := newTestService(t, db)

	result, err := svc.Validate(context.Background(), "FLAT9999", 11200)
	require.NoError(t, err)
	require.NotNil(t, result.FinalAmount)
	assert.Equal(t, int64(9999), *result.FinalAmount)
	assert.Equal(t, int64(1201), result.DiscountAmount)
}

func TestValidateRejectsUnknownCoupon(t *testing.T) {
	db := setupCouponTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Validate(context.Background(), "NOPE", 1000)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestValidateRejectsExpiredCoupon(t *testing.T) {
	db := setupCouponTestDB(t)
	expired := time.Now().Add(-time.Hour)
	seedCoupon(t, db, &models.Coupon{
		Code:         "OLD",
		DiscountType: enums.CouponDiscountFixed,
		Value:        100,
		Active:       true,
		ExpiresAt:    &expired,
	})
	svc := newTestService(t, db)

	_, err := svc.Validate(context.Background(), "OLD", 1000)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestValidateRejectsBelowMinimum(t *testing.T) {
	db := setupCouponTestDB(t)
	seedCoupon(t, db, &models.Coupon{
		Code:           "BIGSPEND",
		DiscountType:   enums.CouponDiscountFixed,
		Value:          500,
		MinOrderAmount: 5000,
		Active:         true,
	})
	svc := newTestService(t, db)

	_, err := svc.Validate(context.Background(), "BIGSPEND", 4999)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestValidateRejectsExhaustedCoupon(t *testing.T) {
	db := setupCouponTestDB(t)
	seedCoupon(t, db, &models.Coupon{
		Code:         "GONE",
		DiscountType: enums.CouponDiscountFixed,
		Value:        100,
		MaxUses:      2,
		UsedCount:    2,
		Active:       true,
	})
	svc := newTestService(t, db)

	_, err := svc.Validate(context.Background(), "GONE", 1000)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestDiscountNeverExceedsOrderAmount(t *testing.T) {
	db := setupCouponTestDB(t)
	seedCoupon(t, db, &models.Coupon{
		Code:         "HUGE",
		DiscountType: enums.CouponDiscountFixed,
		Value:        50000,
		Active:       true,
	})
	svc := newTestService(t, db)

	result, err := svc.Validate(context.Background(), "HUGE", 1200)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), result.DiscountAmount)
}

func TestRedeemStopsAtMaxUses(t *testing.T) {
	db := setupCouponTestDB(t)
	record := seedCoupon(t, db, &models.Coupon{
		Code:         "ONCE",
		DiscountType: enums.CouponDiscountFixed,
		Value:        100,
		MaxUses:      1,
		Active:       true,
	})
	svc := newTestService(t, db)

	require.NoError(t, svc.Redeem(context.Background(), nil, record.ID))

	err := svc.Redeem(context.Background(), nil, record.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}
