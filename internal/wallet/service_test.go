package wallet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adebayo-ng/nairamart-backend/pkg/config"
	"github.com/adebayo-ng/nairamart-backend/pkg/db"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
)

func setupWalletTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	wallets := `
CREATE TABLE IF NOT EXISTS wallets (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
  pin_hash TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	entries := `
CREATE TABLE IF NOT EXISTS wallet_entries (
  id TEXT PRIMARY KEY,
  wallet_id TEXT NOT NULL,
  type TEXT NOT NULL,
  amount INTEGER NOT NULL CHECK (amount > 0),
  order_id TEXT,
  reference TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(wallets).Error)
	require.NoError(t, conn.Exec(entries).Error)
	return conn
}

func newWalletService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), db.FromConn(conn), config.PINConfig{})
	require.NoError(t, err)
	return svc
}

func TestGetWalletCreatesOnFirstAccess(t *testing.T) {
	conn := setupWalletTestDB(t)
	svc := newWalletService(t, conn)
	userID := uuid.New()

	dto, err := svc.GetWallet(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), dto.Balance)
	assert.False(t, dto.PINSet)

	again, err := svc.GetWallet(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, again.ID)
}

func TestSetAndVerifyPIN(t *testing.T) {
	conn := setupWalletTestDB(t)
	svc := newWalletService(t, conn)
	userID := uuid.New()

	require.NoError(t, svc.SetPIN(context.Background(), userID, "4321"))
	require.NoError(t, svc.VerifyPIN(context.Background(), userID, "4321"))

	err := svc.VerifyPIN(context.Background(), userID, "1111")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestSetPINRejectsBadFormat(t *testing.T) {
	conn := setupWalletTestDB(t)
	svc := newWalletService(t, conn)

	for _, pin := range []string{"", "12", "12345", "12a4"} {
		err := svc.SetPIN(context.Background(), uuid.New(), pin)
		require.Error(t, err, "pin %q", pin)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestVerifyPINWithoutPINSet(t *testing.T) {
	conn := setupWalletTestDB(t)
	svc := newWalletService(t, conn)
	userID := uuid.New()

	_, err := svc.GetWallet(context.Background(), userID)
	require.NoError(t, err)

	err = svc.VerifyPIN(context.Background(), userID, "1234")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestTopUpThenDebit(t *testing.T) {
	conn := setupWalletTestDB(t)
	svc := newWalletService(t, conn)
	userID := uuid.New()

	dto, err := svc.TopUp(context.Background(), userID, 15000, "topup:1")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), dto.Balance)

	orderID := uuid.New()
	err = svc.Debit(context.Background(), nil, userID, 11200, enums.WalletEntryOrderPayment, &orderID, "order:"+orderID.String())
	require.NoError(t, err)

	dto, err = svc.GetWallet(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3800), dto.Balance)
	require.Len(t, dto.Entries, 2)
}

func TestDebitInsufficientBalance(t *testing.T) {
	conn := setupWalletTestDB(t)
	svc := newWalletService(t, conn)
	userID := uuid.New()

	_, err := svc.TopUp(context.Background(), userID, 100, "topup:1")
	require.NoError(t, err)

	err = svc.Debit(context.Background(), nil, userID, 101, enums.WalletEntryOrderPayment, nil, "order:x")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	dto, err := svc.GetWallet(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), dto.Balance)
}

func TestMovementsAreIdempotentByReference(t *testing.T) {
	conn := setupWalletTestDB(t)
	svc := newWalletService(t, conn)
	userID := uuid.New()

	_, err := svc.TopUp(context.Background(), userID, 1000, "topup:1")
	require.NoError(t, err)

	// Same reference applied twice credits once.
	_, err = svc.TopUp(context.Background(), userID, 1000, "topup:1")
	require.NoError(t, err)

	dto, err := svc.GetWallet(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), dto.Balance)
	require.Len(t, dto.Entries, 1)
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	conn := setupWalletTestDB(t)
	svc := newWalletService(t, conn)

	err := svc.Debit(context.Background(), nil, uuid.New(), 0, enums.WalletEntryOrderPayment, nil, "order:x")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
