package rates

import (
	"context"
	"fmt"

	pkgerrors "github.com/adebayo-ng/nairamart-backend/pkg/errors"
	"github.com/adebayo-ng/nairamart-backend/pkg/shipping"
)

// Service serves the delivery rate table shown to buyers. Pricing during
// checkout always comes from the static table; active database rows only
// overlay the displayed price and ETA.
type Service interface {
	ListRates(ctx context.Context) ([]shipping.TableRow, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a rates service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rates repository required")
	}
	return &service{repo: repo}, nil
}

// ListRates returns the static table with any active overlay rows applied.
func (s *service) ListRates(ctx context.Context) ([]shipping.TableRow, error) {
	rows := shipping.Table()

	overlays, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery rate overlays")
	}

	for _, overlay := range overlays {
		for i := range rows {
			if rows[i].Category == overlay.Category && rows[i].Tier == overlay.Tier {
				rows[i].Price = overlay.Price
				rows[i].ETA = overlay.ETA
			}
		}
	}
	return rows, nil
}
