package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds a user's spendable balance in whole naira. PINHash is an
// Argon2id hash of the 4-digit transaction PIN; nil until the user sets one.
type Wallet struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Balance   int64     `gorm:"column:balance;not null;default:0"`
	PINHash   *string   `gorm:"column:pin_hash"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
