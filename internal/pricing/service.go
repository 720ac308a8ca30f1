package pricing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/farmgate/storefront/internal/domain"
	"github.com/farmgate/storefront/internal/logger"
	"github.com/farmgate/storefront/internal/metrics"
	"github.com/farmgate/storefront/internal/repository"
)

// Service is the price oracle: it resolves an item reference to its current
// unit price. Product prices come from the catalog; lot prices track the
// current bid. Results are cached briefly to absorb bursts - the cart only
// reads a price once per new line, so short staleness here is harmless.
type Service interface {
	Price(ctx context.Context, ref domain.ItemRef) (domain.Money, error)
}

type service struct {
	repo  repository.Pricing
	cache *priceCache
	sfg   singleflight.Group // collapses concurrent lookups per item
}

// NewService creates a new pricing service. cacheSize bounds the number of
// cached prices and ttl how long each one is served before a fresh read.
func NewService(repo repository.Pricing, cacheSize int, ttl time.Duration) Service {
	return &service{
		repo:  repo,
		cache: newPriceCache(cacheSize, ttl),
	}
}

// Price looks up the current unit price for ref. A missing item surfaces
// domain.ErrItemNotFound; store faults surface domain.ErrPersistence.
func (s *service) Price(ctx context.Context, ref domain.ItemRef) (domain.Money, error) {
	if ref.IsZero() {
		return domain.Money{}, domain.ErrInvalidItemRef
	}

	if price, ok := s.cache.Get(ref); ok {
		metrics.PriceLookups.WithLabelValues(metrics.SourceCache).Inc()
		return price, nil
	}

	v, err, _ := s.sfg.Do(ref.String(), func() (interface{}, error) {
		price, err := s.lookup(ctx, ref)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ref, price)
		return price, nil
	})
	if err != nil {
		return domain.Money{}, err
	}

	metrics.PriceLookups.WithLabelValues(metrics.SourceStore).Inc()

	price, ok := v.(domain.Money)
	if !ok {
		return domain.Money{}, fmt.Errorf("unexpected price type %T", v)
	}
	return price, nil
}

func (s *service) lookup(ctx context.Context, ref domain.ItemRef) (domain.Money, error) {
	log := logger.FromContext(ctx)

	var (
		price domain.Money
		err   error
	)

	switch ref.Kind() {
	case domain.ItemKindProduct:
		price, err = s.repo.ProductPrice(ctx, ref.ID())
	case domain.ItemKindLot:
		price, err = s.repo.LotCurrentPrice(ctx, ref.ID())
	default:
		return domain.Money{}, fmt.Errorf("%w: kind[%s]", domain.ErrInvalidItemRef, ref.Kind())
	}

	if err != nil {
		log.Debug("Price lookup failed", "item", ref.String(), "error", err)
		return domain.Money{}, err
	}

	return price, nil
}
