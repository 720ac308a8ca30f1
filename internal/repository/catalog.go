package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/farmgate/storefront/internal/domain"
)

// Catalog defines the interface for product and auction lot reads.
type Catalog interface {
	ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetLot(ctx context.Context, id uuid.UUID) (*domain.Lot, error)
}

// Pricing defines the interface backing the price oracle. Lookups return
// domain.ErrItemNotFound when the referenced item no longer exists.
type Pricing interface {
	// ProductPrice returns the current fixed price of a catalog product.
	ProductPrice(ctx context.Context, id uuid.UUID) (domain.Money, error)

	// LotCurrentPrice returns the current bid-driven price of an auction lot.
	LotCurrentPrice(ctx context.Context, id uuid.UUID) (domain.Money, error)
}
