package ports

import (
	"context"

	"github.com/burningtree/flixbux-prices/internal/domain/models"
)

type StorefrontDiscoverer interface {
	DiscoverDomains(ctx context.Context) ([]models.Storefront, error)
}

type PriceSource interface {
	GetPrice(ctx context.Context, storefront models.Storefront, itinerary models.Itinerary) (models.Price, error)
}

type RateTable interface {
	Rate(code string) (float64, bool)
}

type Progress interface {
	Advance()
}
