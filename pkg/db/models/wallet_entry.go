package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adebayo-ng/nairamart-backend/pkg/enums"
)

// WalletEntry is one ledger movement on a wallet. Amount is always
// positive; Type determines the direction. Reference dedupes movements
// that must apply at most once (e.g. one commission per order).
type WalletEntry struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WalletID  uuid.UUID             `gorm:"column:wallet_id;type:uuid;not null;index"`
	Type      enums.WalletEntryType `gorm:"column:type;type:text;not null"`
	Amount    int64                 `gorm:"column:amount;not null"`
	OrderID   *uuid.UUID            `gorm:"column:order_id;type:uuid"`
	Reference string                `gorm:"column:reference;not null;uniqueIndex"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}
