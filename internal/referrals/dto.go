package referrals

import (
	"time"

	"github.com/google/uuid"
)

// SummaryDTO is the referrer-facing earnings overview.
type SummaryDTO struct {
	ReferralCount   int           `json:"referralCount"`
	TotalCommission int64         `json:"totalCommission"`
	Referrals       []ReferralDTO `json:"referrals"`
}

// ReferralDTO is one referred signup.
type ReferralDTO struct {
	ReferredID uuid.UUID `json:"referredId"`
	Code       string    `json:"code"`
	JoinedAt   time.Time `json:"joinedAt"`
}
