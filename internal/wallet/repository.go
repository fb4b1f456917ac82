package wallet

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
)

// Repository provides wallet and ledger persistence.
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

// FindByUserID loads a user's wallet.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).First(&wallet, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Create inserts a zero-balance wallet for the user.
func (r *Repository) Create(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error) {
	if err := r.db.WithContext(ctx).Create(wallet).Error; err != nil {
		return nil, err
	}
	return wallet, nil
}

// AdjustBalance applies delta atomically. The WHERE guard rejects any
// adjustment that would take the balance negative; the caller reads the
// returned flag to distinguish insufficient funds from success.
func (r *Repository) AdjustBalance(ctx context.Context, walletID uuid.UUID, delta int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND balance + ? >= 0", walletID, delta).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdatePINHash stores a new transaction PIN hash.
func (r *Repository) UpdatePINHash(ctx context.Context, walletID uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", walletID).
		UpdateColumn("pin_hash", hash).Error
}

// CreateEntry appends a ledger entry.
func (r *Repository) CreateEntry(ctx context.Context, entry *models.WalletEntry) (*models.WalletEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// FindEntryByReference looks up a ledger entry by its dedupe reference.
func (r *Repository) FindEntryByReference(ctx context.Context, reference string) (*models.WalletEntry, error) {
	var entry models.WalletEntry
	if err := r.db.WithContext(ctx).First(&entry, "reference = ?", reference).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries returns the most recent ledger entries for a wallet.
func (r *Repository) ListEntries(ctx context.Context, walletID uuid.UUID, limit int) ([]models.WalletEntry, error) {
	var entries []models.WalletEntry
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
