package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adebayo-ng/nairamart-backend/pkg/config"
	"github.com/adebayo-ng/nairamart-backend/pkg/db"
	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
	"github.com/adebayo-ng/nairamart-backend/pkg/security"
)

const entryHistoryLimit = 50

// Service manages wallet balances, the transaction PIN and the ledger.
type Service interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*WalletDTO, error)
	SetPIN(ctx context.Context, userID uuid.UUID, pin string) error
	VerifyPIN(ctx context.Context, userID uuid.UUID, pin string) error
	TopUp(ctx context.Context, userID uuid.UUID, amount int64, reference string) (*WalletDTO, error)
	Debit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int64, entryType enums.WalletEntryType, orderID *uuid.UUID, reference string) error
	Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int64, entryType enums.WalletEntryType, orderID *uuid.UUID, reference string) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	pinCfg   config.PINConfig
}

// NewService constructs a wallet service instance.
func NewService(repo *Repository, dbClient *db.Client, pinCfg config.PINConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, pinCfg: pinCfg}, nil
}

// GetWallet returns the caller's wallet, creating it on first access.
func (s *service) GetWallet(ctx context.Context, userID uuid.UUID) (*WalletDTO, error) {
	record, err := s.ensureWallet(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, record.ID, entryHistoryLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wallet entries")
	}
	return toWalletDTO(record, entries), nil
}

// SetPIN validates and stores the 4-digit transaction PIN.
func (s *service) SetPIN(ctx context.Context, userID uuid.UUID, pin string) error {
	if err := security.ValidatePINFormat(pin); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	record, err := s.ensureWallet(ctx, s.repo, userID)
	if err != nil {
		return err
	}
	hash, err := security.HashPIN(pin, s.pinCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash pin")
	}
	if err := s.repo.UpdatePINHash(ctx, record.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store pin")
	}
	return nil
}

// VerifyPIN checks the supplied PIN against the stored hash. A wallet
// without a PIN always fails verification.
func (s *service) VerifyPIN(ctx context.Context, userID uuid.UUID, pin string) error {
	if err := security.ValidatePINFormat(pin); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	record, err := s.findWallet(ctx, s.repo, userID)
	if err != nil {
		return err
	}
	if record.PINHash == nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "transaction pin not set")
	}
	ok, err := security.VerifyPIN(pin, *record.PINHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify pin")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeForbidden, "incorrect transaction pin")
	}
	return nil
}

// TopUp credits the wallet outside of any order flow.
func (s *service) TopUp(ctx context.Context, userID uuid.UUID, amount int64, reference string) (*WalletDTO, error) {
	if amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "top-up amount must be positive")
	}
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.Credit(ctx, tx, userID, amount, enums.WalletEntryTopUp, nil, reference)
	})
	if err != nil {
		return nil, err
	}
	return s.GetWallet(ctx, userID)
}

// Debit subtracts amount from the wallet inside the caller's transaction and
// appends a ledger entry. The reference makes the movement idempotent: a
// repeat with the same reference is a no-op.
func (s *service) Debit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int64, entryType enums.WalletEntryType, orderID *uuid.UUID, reference string) error {
	if amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	return s.move(ctx, tx, userID, -amount, entryType, orderID, reference)
}

// Credit adds amount to the wallet inside the caller's transaction. Same
// idempotency contract as Debit.
func (s *service) Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int64, entryType enums.WalletEntryType, orderID *uuid.UUID, reference string) error {
	if amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	return s.move(ctx, tx, userID, amount, entryType, orderID, reference)
}

func (s *service) move(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int64, entryType enums.WalletEntryType, orderID *uuid.UUID, reference string) error {
	if reference == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "ledger reference required")
	}
	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}

	if _, err := repo.FindEntryByReference(ctx, reference); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check ledger reference")
	}

	record, err := s.ensureWallet(ctx, repo, userID)
	if err != nil {
		return err
	}

	adjusted, err := repo.AdjustBalance(ctx, record.ID, delta)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update balance")
	}
	if !adjusted {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient wallet balance")
	}

	amount := delta
	if amount < 0 {
		amount = -amount
	}
	entry := &models.WalletEntry{
		ID:        uuid.New(),
		WalletID:  record.ID,
		Type:      entryType,
		Amount:    amount,
		OrderID:   orderID,
		Reference: reference,
	}
	if _, err := repo.CreateEntry(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append ledger entry")
	}
	return nil
}

func (s *service) findWallet(ctx context.Context, repo *Repository, userID uuid.UUID) (*models.Wallet, error) {
	record, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wallet not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wallet")
	}
	return record, nil
}

func (s *service) ensureWallet(ctx context.Context, repo *Repository, userID uuid.UUID) (*models.Wallet, error) {
	record, err := repo.FindByUserID(ctx, userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wallet")
	}
	record = &models.Wallet{ID: uuid.New(), UserID: userID}
	if _, err := repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wallet")
	}
	return record, nil
}
