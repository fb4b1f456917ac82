package shipping

import (
	"fmt"

	"github.com/adebayo-ng/nairamart-backend/pkg/geo"
	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
)

// Category classifies a delivery route. It is always derived from the
// origin and destination states, never stored.
type Category string

const (
	CategoryIntraState    Category = "intra_state"
	CategoryInterState    Category = "inter_state"
	CategoryInterRegional Category = "inter_regional"
)

var validCategories = []Category{
	CategoryIntraState,
	CategoryInterState,
	CategoryInterRegional,
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// Tier is a named delivery speed option.
type Tier string

const (
	TierStandard Tier = "standard"
	TierExpress  Tier = "express"
)

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Tier.
func (t Tier) IsValid() bool {
	return t == TierStandard || t == TierExpress
}

// ParseTier converts raw input into a Tier.
func ParseTier(value string) (Tier, error) {
	switch Tier(value) {
	case TierStandard:
		return TierStandard, nil
	case TierExpress:
		return TierExpress, nil
	}
	return "", fmt.Errorf("invalid delivery tier %q", value)
}

// ShippingOption is one priced tier for a resolved category. Prices are
// whole naira.
type ShippingOption struct {
	Tier  Tier   `json:"tier"`
	Price int64  `json:"price"`
	ETA   string `json:"eta"`
}

// rateTable is the authoritative price table. Two tiers per category.
var rateTable = map[Category][2]ShippingOption{
	CategoryIntraState: {
		{Tier: TierStandard, Price: 900, ETA: "1-2 days"},
		{Tier: TierExpress, Price: 1500, ETA: "1 day"},
	},
	CategoryInterState: {
		{Tier: TierStandard, Price: 1000, ETA: "4-5 days"},
		{Tier: TierExpress, Price: 2000, ETA: "2-3 days"},
	},
	CategoryInterRegional: {
		{Tier: TierStandard, Price: 2000, ETA: "8-9 days"},
		{Tier: TierExpress, Price: 4000, ETA: "2-3 days"},
	},
}

// Quote is a resolved route with both priced tiers, Standard first.
// Callers default-select Standard until the buyer switches tier.
type Quote struct {
	Category Category         `json:"category"`
	Options  []ShippingOption `json:"options"`
}

// Resolve classifies the route between two states and returns the priced
// options for it. Either state being unknown makes the route
// unserviceable; callers must offer no options and block submission.
func Resolve(originState, destinationState string) (Quote, error) {
	if originState == "" || destinationState == "" {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "origin and destination states are required")
	}

	if originState == destinationState {
		return quoteFor(CategoryIntraState), nil
	}

	originZone, ok := geo.ZoneOf(originState)
	if !ok {
		return Quote{}, unserviceable(originState)
	}
	destinationZone, ok := geo.ZoneOf(destinationState)
	if !ok {
		return Quote{}, unserviceable(destinationState)
	}

	if originZone == destinationZone {
		return quoteFor(CategoryInterState), nil
	}
	return quoteFor(CategoryInterRegional), nil
}

// Option returns the priced option for a category and tier.
func Option(category Category, tier Tier) (ShippingOption, error) {
	options, ok := rateTable[category]
	if !ok {
		return ShippingOption{}, fmt.Errorf("unknown shipping category %q", category)
	}
	for _, option := range options {
		if option.Tier == tier {
			return option, nil
		}
	}
	return ShippingOption{}, fmt.Errorf("unknown delivery tier %q", tier)
}

// Table returns every (category, tier) row of the static rate table in a
// stable order. The shipping-fees endpoint serves this.
func Table() []TableRow {
	rows := make([]TableRow, 0, len(validCategories)*2)
	for _, category := range validCategories {
		for _, option := range rateTable[category] {
			rows = append(rows, TableRow{
				Category: category,
				Tier:     option.Tier,
				Price:    option.Price,
				ETA:      option.ETA,
			})
		}
	}
	return rows
}

// TableRow is one entry of the flattened rate table.
type TableRow struct {
	Category Category `json:"category"`
	Tier     Tier     `json:"tier"`
	Price    int64    `json:"price"`
	ETA      string   `json:"eta"`
}

func quoteFor(category Category) Quote {
	options := rateTable[category]
	return Quote{
		Category: category,
		Options:  []ShippingOption{options[0], options[1]},
	}
}

func unserviceable(state string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("state %q is not serviceable", state)).WithDetails(map[string]any{
		"state": state,
	})
}
