package rates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
	"github.com/adebayo-ng/nairamart-backend/pkg/shipping"
)

func setupRatesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	schema := `
CREATE TABLE IF NOT EXISTS delivery_rates (
  id TEXT PRIMARY KEY,
  category TEXT NOT NULL,
  tier TEXT NOT NULL,
  price INTEGER NOT NULL,
  eta TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (category, tier)
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestListRatesServesStaticTableWhenNoOverlays(t *testing.T) {
	db := setupRatesTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	rows, err := svc.ListRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, shipping.Table(), rows)
}

func TestListRatesAppliesActiveOverlay(t *testing.T) {
	db := setupRatesTestDB(t)
	require.NoError(t, db.Create(&models.DeliveryRate{
		ID:       uuid.New(),
		Category: shipping.CategoryIntraState,
		Tier:     shipping.TierStandard,
		Price:    950,
		ETA:      "1 day",
		Active:   true,
	}).Error)

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	rows, err := svc.ListRates(context.Background())
	require.NoError(t, err)

	var overlaid, untouched bool
	for _, row := range rows {
		if row.Category == shipping.CategoryIntraState && row.Tier == shipping.TierStandard {
			assert.Equal(t, int64(950), row.Price)
			assert.Equal(t, "1 day", row.ETA)
			overlaid = true
		}
		if row.Category == shipping.CategoryInterRegional && row.Tier == shipping.TierExpress {
			assert.Equal(t, int64(4000), row.Price)
			untouched = true
		}
	}
	assert.True(t, overlaid)
	assert.True(t, untouched)
}

func TestListRatesIgnoresInactiveOverlay(t *testing.T) {
	db := setupRatesTestDB(t)
	require.NoError(t, db.Create(&models.DeliveryRate{
		ID:       uuid.New(),
		Category: shipping.CategoryInterState,
		Tier:     shipping.TierExpress,
		Price:    1,
		ETA:      "same day",
		Active:   false,
	}).Error)

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	rows, err := svc.ListRates(context.Background())
	require.NoError(t, err)
	for _, row := range rows {
		if row.Category == shipping.CategoryInterState && row.Tier == shipping.TierExpress {
			assert.Equal(t, int64(2000), row.Price)
		}
	}
}
