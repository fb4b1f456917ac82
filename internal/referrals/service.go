package referrals

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adebayo-ng/nairamart-backend/pkg/config"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
)

// Service pays referral commission and serves the referrer summary.
type Service interface {
	OnOrderDelivered(ctx context.Context, tx *gorm.DB, orderID, customerID uuid.UUID, subtotal int64) error
	Summary(ctx context.Context, referrerID uuid.UUID) (*SummaryDTO, error)
}

type walletCrediter interface {
	Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int64, entryType enums.WalletEntryType, orderID *uuid.UUID, reference string) error
}

type service struct {
	repo    *Repository
	wallets walletCrediter
	percent decimal.Decimal
}

// NewService constructs a referrals service instance.
func NewService(repo *Repository, wallets walletCrediter, cfg config.ReferralConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("referrals repository required")
	}
	if wallets == nil {
		return nil, fmt.Errorf("wallet service required")
	}
	percent, err := decimal.NewFromString(cfg.CommissionPercent)
	if err != nil {
		return nil, fmt.Errorf("invalid commission percent %q: %w", cfg.CommissionPercent, err)
	}
	if percent.IsNegative() {
		return nil, fmt.Errorf("commission percent must not be negative")
	}
	return &service{repo: repo, wallets: wallets, percent: percent}, nil
}

// OnOrderDelivered credits the customer's referrer with their commission on
// the order subtotal, rounded down to whole naira. The ledger reference is
// derived from the order ID, so a delivery replay pays at most once. A
// customer with no referrer is a no-op.
func (s *service) OnOrderDelivered(ctx context.Context, tx *gorm.DB, orderID, customerID uuid.UUID, subtotal int64) error {
	if subtotal <= 0 {
		return nil
	}
	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}

	referral, err := repo.FindByReferredID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load referral")
	}

	commission := s.commissionFor(subtotal)
	if commission <= 0 {
		return nil
	}

	reference := commissionReference(orderID)
	return s.wallets.Credit(ctx, tx, referral.ReferrerID, commission, enums.WalletEntryReferralCommission, &orderID, reference)
}

// Summary returns the referrer's signups and total commission earned.
func (s *service) Summary(ctx context.Context, referrerID uuid.UUID) (*SummaryDTO, error) {
	referrals, err := s.repo.ListByReferrerID(ctx, referrerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list referrals")
	}
	total, err := s.repo.SumCommission(ctx, referrerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum commission")
	}

	summary := &SummaryDTO{
		ReferralCount:   len(referrals),
		TotalCommission: total,
		Referrals:       make([]ReferralDTO, 0, len(referrals)),
	}
	for _, referral := range referrals {
		summary.Referrals = append(summary.Referrals, ReferralDTO{
			ReferredID: referral.ReferredID,
			Code:       referral.Code,
			JoinedAt:   referral.CreatedAt,
		})
	}
	return summary, nil
}

func (s *service) commissionFor(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).
		Mul(s.percent).
		Div(decimal.NewFromInt(100)).
		Floor().
		IntPart()
}

func commissionReference(orderID uuid.UUID) string {
	return "referral:" + orderID.String()
}
