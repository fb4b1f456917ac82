package wallet

import (
	"time"

	"github.com/google/uuid"

	"github.com/adebayo-ng/nairamart-backend/pkg/db/models"
)

// WalletDTO is the wallet payload returned to clients.
type WalletDTO struct {
	ID        uuid.UUID  `json:"id"`
	Balance   int64      `json:"balance"`
	PINSet    bool       `json:"pinSet"`
	Entries   []EntryDTO `json:"entries,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// EntryDTO is one ledger movement.
type EntryDTO struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Amount    int64      `json:"amount"`
	OrderID   *uuid.UUID `json:"orderId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toWalletDTO(wallet *models.Wallet, entries []models.WalletEntry) *WalletDTO {
	dto := &WalletDTO{
		ID:        wallet.ID,
		Balance:   wallet.Balance,
		PINSet:    wallet.PINHash != nil,
		UpdatedAt: wallet.UpdatedAt,
	}
	for _, entry := range entries {
		dto.Entries = append(dto.Entries, EntryDTO{
			ID:        entry.ID,
			Type:      entry.Type.String(),
			Amount:    entry.Amount,
			OrderID:   entry.OrderID,
			CreatedAt: entry.CreatedAt,
		})
	}
	return dto
}
