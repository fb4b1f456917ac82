package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
)

// Service exposes coupon validation and redemption.
type Service interface {
	Validate(ctx context.Context, code string, orderAmount int64) (*ValidationResult, error)
	Redeem(ctx context.Context, tx *gorm.DB, couponID uuid.UUID) error
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs a coupon service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Validate checks a coupon against the pre-discount order amount and returns
// the adjustment it would apply. It never mutates the coupon.
func (s *service) Validate(ctx context.Context, code string, orderAmount int64) (*ValidationResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code required")
	}
	if orderAmount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order amount must be positive")
	}

	record, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("coupon %q not found", code))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	if err := s.checkUsable(record, orderAmount); err != nil {
		return nil, err
	}

	return buildResult(record, orderAmount), nil
}

// Redeem increments the usage counter inside the caller's transaction. It
// fails with STATE_CONFLICT when the coupon ran out between validation and
// redemption.
func (s *service) Redeem(ctx context.Context, tx *gorm.DB, couponID uuid.UUID) error {
	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}
	updated, err := repo.IncrementUsage(ctx, couponID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redeem coupon")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "coupon has no remaining uses")
	}
	return nil
}

func (s *service) checkUsable(record *models.Coupon, orderAmount int64) error {
	if !record.Active {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "coupon is no longer active")
	}
	if record.ExpiresAt != nil && !record.ExpiresAt.After(s.now()) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "coupon has expired")
	}
	if record.MaxUses > 0 && record.UsedCount >= record.MaxUses {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "coupon has no remaining uses")
	}
	if orderAmount < record.MinOrderAmount {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("order amount below coupon minimum of %d", record.MinOrderAmount))
	}
	return nil
}

func buildResult(record *models.Coupon, orderAmount int64) *ValidationResult {
	result := &ValidationResult{CouponID: record.ID, VendorID: record.VendorID, Code: record.Code}
	switch record.DiscountType {
	case enums.CouponDiscountPercent:
		result.DiscountAmount = orderAmount * record.Value / 100
	case enums.CouponDiscountFinalAmount:
		final := record.Value
		if final < 0 {
			final = 0
		}
		result.FinalAmount = &final
		if discount := orderAmount - final; discount > 0 {
			result.DiscountAmount = discount
		}
	default:
		result.DiscountAmount = record.Value
	}
	if result.DiscountAmount > orderAmount {
		result.DiscountAmount = orderAmount
	}
	return result
}
