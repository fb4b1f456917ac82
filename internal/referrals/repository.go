package referrals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
)

// Repository reads referral attribution rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByReferredID returns the referral row for a referred user, if any.
func (r *Repository) FindByReferredID(ctx context.Context, referredID uuid.UUID) (*models.Referral, error) {
	var referral models.Referral
	if err := r.db.WithContext(ctx).First(&referral, "referred_id = ?", referredID).Error; err != nil {
		return nil, err
	}
	return &referral, nil
}

// SumCommission totals the referral commission credited to a user's wallet.
func (r *Repository) SumCommission(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.WalletEntry{}).
		Select("COALESCE(SUM(wallet_entries.amount), 0)").
		Joins("JOIN wallets ON wallets.id = wallet_entries.wallet_id").
		Where("wallets.user_id = ? AND wallet_entries.type = ?", userID, enums.WalletEntryReferralCommission).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ListByReferrerID returns every user the referrer has brought in.
func (r *Repository) ListByReferrerID(ctx context.Context, referrerID uuid.UUID) ([]models.Referral, error) {
	var referrals []models.Referral
	err := r.db.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("created_at DESC").
		Find(&referrals).Error
	if err != nil {
		return nil, err
	}
	return referrals, nil
}
