package referrals

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adebayo-ng/nairamart-backend/internal/wallet"
	"github.com/adebayo-ng/nairamart-backend/pkg/config"
	"github.com/adebayo-ng/nairamart-backend/pkg/db"
	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
)

func setupReferralsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS referrals (
  id TEXT PRIMARY KEY,
  referrer_id TEXT NOT NULL,
  referred_id TEXT NOT NULL UNIQUE,
  code TEXT NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS wallets (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
  pin_hash TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS wallet_entries (
  id TEXT PRIMARY KEY,
  wallet_id TEXT NOT NULL,
  type TEXT NOT NULL,
  amount INTEGER NOT NULL CHECK (amount > 0),
  order_id TEXT,
  reference TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`,
	}
	for _, statement := range statements {
		require.NoError(t, conn.Exec(statement).Error)
	}
	return conn
}

func newReferralsService(t *testing.T, conn *gorm.DB) (Service, wallet.Service) {
	t.Helper()
	wallets, err := wallet.NewService(wallet.NewRepository(conn), db.FromConn(conn), config.PINConfig{})
	require.NoError(t, err)
	svc, err := NewService(NewRepository(conn), wallets, config.ReferralConfig{CommissionPercent: "2"})
	require.NoError(t, err)
	return svc, wallets
}

func seedReferral(t *testing.T, conn *gorm.DB, referrerID, referredID uuid.UUID) {
	t.Helper()
	require.NoError(t, conn.Create(&models.Referral{
		ID:         uuid.New(),
		ReferrerID: referrerID,
		ReferredID: referredID,
		Code:       "REF123",
	}).Error)
}

func TestOnOrderDeliveredPaysCommission(t *testing.T) {
	conn := setupReferralsTestDB(t)
	svc, wallets := newReferralsService(t, conn)
	referrerID, customerID := uuid.New(), uuid.New()
	seedReferral(t, conn, referrerID, customerID)

	orderID := uuid.New()
	require.NoError(t, svc.OnOrderDelivered(context.Background(), nil, orderID, customerID, 10000))

	dto, err := wallets.GetWallet(context.Background(), referrerID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), dto.Balance)
	require.Len(t, dto.Entries, 1)
	assert.Equal(t, enums.WalletEntryReferralCommission.String(), dto.Entries[0].Type)
}

func TestOnOrderDeliveredRoundsDown(t *testing.T) {
	conn := setupReferralsTestDB(t)
	svc, wallets := newReferralsService(t, conn)
	referrerID, customerID := uuid.New(), uuid.New()
	seedReferral(t, conn, referrerID, customerID)

	// 2% of 10049 is 200.98; whole-naira commission floors to 200.
	require.NoError(t, svc.OnOrderDelivered(context.Background(), nil, uuid.New(), customerID, 10049))

	dto, err := wallets.GetWallet(context.Background(), referrerID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), dto.Balance)
}

func TestOnOrderDeliveredIsIdempotentPerOrder(t *testing.T) {
	conn := setupReferralsTestDB(t)
	svc, wallets := newReferralsService(t, conn)
	referrerID, customerID := uuid.New(), uuid.New()
	seedReferral(t, conn, referrerID, customerID)

	orderID := uuid.New()
	require.NoError(t, svc.OnOrderDelivered(context.Background(), nil, orderID, customerID, 10000))
	require.NoError(t, svc.OnOrderDelivered(context.Background(), nil, orderID, customerID, 10000))

	dto, err := wallets.GetWallet(context.Background(), referrerID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), dto.Balance)
	require.Len(t, dto.Entries, 1)
}

func TestOnOrderDeliveredNoReferrerIsNoOp(t *testing.T) {
	conn := setupReferralsTestDB(t)
	svc, _ := newReferralsService(t, conn)

	require.NoError(t, svc.OnOrderDelivered(context.Background(), nil, uuid.New(), uuid.New(), 10000))
}

func TestOnOrderDeliveredSkipsZeroCommission(t *testing.T) {
	conn := setupReferralsTestDB(t)
	svc, wallets := newReferralsService(t, conn)
	referrerID, customerID := uuid.New(), uuid.New()
	seedReferral(t, conn, referrerID, customerID)

	// 2% of 49 floors to zero naira.
	require.NoError(t, svc.OnOrderDelivered(context.Background(), nil, uuid.New(), customerID, 49))

	dto, err := wallets.GetWallet(context.Background(), referrerID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), dto.Balance)
	assert.Empty(t, dto.Entries)
}

func TestSummary(t *testing.T) {
	conn := setupReferralsTestDB(t)
	svc, _ := newReferralsService(t, conn)
	referrerID := uuid.New()
	first, second := uuid.New(), uuid.New()
	seedReferral(t, conn, referrerID, first)
	seedReferral(t, conn, referrerID, second)

	require.NoError(t, svc.OnOrderDelivered(context.Background(), nil, uuid.New(), first, 10000))
	require.NoError(t, svc.OnOrderDelivered(context.Background(), nil, uuid.New(), second, 5000))

	summary, err := svc.Summary(context.Background(), referrerID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ReferralCount)
	assert.Equal(t, int64(300), summary.TotalCommission)
	assert.Len(t, summary.Referrals, 2)
}
