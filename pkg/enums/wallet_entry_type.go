package enums

import "fmt"

// WalletEntryType classifies a wallet ledger movement.
type WalletEntryType string

const (
	WalletEntryOrderPayment       WalletEntryType = "order_payment"
	WalletEntryOrderRefund        WalletEntryType = "order_refund"
	WalletEntryReferralCommission WalletEntryType = "referral_commission"
	WalletEntryTopUp              WalletEntryType = "top_up"
)

var validWalletEntryTypes = []WalletEntryType{
	WalletEntryOrderPayment,
	WalletEntryOrderRefund,
	WalletEntryReferralCommission,
	WalletEntryTopUp,
}

// String implements fmt.Stringer.
func (w WalletEntryType) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WalletEntryType.
func (w WalletEntryType) IsValid() bool {
	for _, candidate := range validWalletEntryTypes {
		if candidate == w {
			return true
		}
	}
	return false
}

// IsCredit reports whether the entry increases the wallet balance.
func (w WalletEntryType) IsCredit() bool {
	switch w {
	case WalletEntryOrderRefund, WalletEntryReferralCommission, WalletEntryTopUp:
		return true
	}
	return false
}

// ParseWalletEntryType converts raw input into a WalletEntryType.
func ParseWalletEntryType(value string) (WalletEntryType, error) {
	for _, candidate := range validWalletEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wallet entry type %q", value)
}
