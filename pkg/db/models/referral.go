package models

import (
	"time"

	"github.com/google/uuid"
)

// Referral links a referred user to the referrer whose code they signed
// up with. Attribution happens in the identity service; this row is
// read-only here and drives commission payouts.
type Referral struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ReferrerID uuid.UUID `gorm:"column:referrer_id;type:uuid;not null;index"`
	ReferredID uuid.UUID `gorm:"column:referred_id;type:uuid;not null;uniqueIndex"`
	Code       string    `gorm:"column:code;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
