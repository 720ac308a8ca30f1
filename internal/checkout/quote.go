package checkout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmgate/storefront/internal/cart"
	"github.com/farmgate/storefront/internal/domain"
	"github.com/farmgate/storefront/internal/metrics"
)

// Quote is the pre-order summary for the current cart: the line totals plus
// the flat shipping rule. Taxes, payment, and order placement happen in
// downstream systems.
type Quote struct {
	ItemCount    int
	Subtotal     domain.Money
	Shipping     domain.Money
	Total        domain.Money
	FreeShipping bool
}

// Service defines the interface for checkout quoting.
type Service interface {
	Quote(ctx context.Context, ident domain.Identity) (Quote, error)
}

type service struct {
	carts     cart.Service
	flatRate  decimal.Decimal
	threshold decimal.Decimal
	currency  string
}

// NewService creates a new checkout service. flatRate is charged on every
// order below threshold; at or above it shipping is free.
func NewService(carts cart.Service, flatRate, threshold decimal.Decimal, currency string) Service {
	return &service{
		carts:     carts,
		flatRate:  flatRate,
		threshold: threshold,
		currency:  currency,
	}
}

// Quote computes the quote for the identity's current cart.
func (s *service) Quote(ctx context.Context, ident domain.Identity) (Quote, error) {
	current, err := s.carts.Cart(ctx, ident)
	if err != nil {
		return Quote{}, fmt.Errorf("load cart: %w", err)
	}

	subtotal := current.Total
	if len(current.Lines) == 0 {
		// An empty cart quotes as zero in the store currency.
		subtotal, err = domain.NewMoney(decimal.Zero, s.currency)
		if err != nil {
			return Quote{}, err
		}
	}

	shipping, err := domain.NewMoney(s.shippingFor(subtotal.Amount, current.ItemCount), s.currency)
	if err != nil {
		return Quote{}, err
	}

	total, err := subtotal.Add(shipping)
	if err != nil {
		return Quote{}, err
	}

	metrics.CheckoutQuotes.Inc()

	return Quote{
		ItemCount:    current.ItemCount,
		Subtotal:     subtotal,
		Shipping:     shipping,
		Total:        total,
		FreeShipping: shipping.IsZero() && current.ItemCount > 0,
	}, nil
}

func (s *service) shippingFor(subtotal decimal.Decimal, itemCount int) decimal.Decimal {
	if itemCount == 0 {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(s.threshold) {
		return decimal.Zero
	}
	return s.flatRate
}
