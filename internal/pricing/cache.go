package pricing

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/farmgate/storefront/internal/domain"
)

// priceCache provides an in-memory LRU cache for price lookups with
// time-based expiration. Cart line snapshots are taken from the value that
// was current at add time, so the TTL only bounds how stale a browse price
// can be, never a committed one.
type priceCache struct {
	lru *expirable.LRU[string, domain.Money]
}

func newPriceCache(size int, ttl time.Duration) *priceCache {
	if size <= 0 {
		size = 1
	}
	return &priceCache{
		lru: expirable.NewLRU[string, domain.Money](size, nil, ttl),
	}
}

func (c *priceCache) Get(ref domain.ItemRef) (domain.Money, bool) {
	return c.lru.Get(ref.String())
}

func (c *priceCache) Set(ref domain.ItemRef, price domain.Money) {
	c.lru.Add(ref.String(), price)
}
