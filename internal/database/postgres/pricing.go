package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmgate/storefront/internal/domain"
)

// PricingRepository implements the price oracle backing for PostgreSQL.
// A missing row maps to domain.ErrItemNotFound so the cart can tell a
// delisted item apart from a store fault.
type PricingRepository struct {
	db *pgxpool.Pool
}

// NewPricingRepository creates a new PricingRepository
func NewPricingRepository(db *pgxpool.Pool) *PricingRepository {
	return &PricingRepository{db: db}
}

// ProductPrice returns the current fixed price of a product.
func (r *PricingRepository) ProductPrice(ctx context.Context, id uuid.UUID) (domain.Money, error) {
	return r.price(ctx,
		`SELECT price_amount::text, price_currency FROM products WHERE product_id = $1`, id)
}

// LotCurrentPrice returns the current bid-driven price of an auction lot.
func (r *PricingRepository) LotCurrentPrice(ctx context.Context, id uuid.UUID) (domain.Money, error) {
	return r.price(ctx,
		`SELECT current_amount::text, price_currency FROM lots WHERE lot_id = $1`, id)
}

func (r *PricingRepository) price(ctx context.Context, query string, id uuid.UUID) (domain.Money, error) {
	var amount, code string

	if err := r.db.QueryRow(ctx, query, id).Scan(&amount, &code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Money{}, fmt.Errorf("%w: id[%s]", domain.ErrItemNotFound, id)
		}
		return domain.Money{}, fmt.Errorf("%w: price lookup: %v", domain.ErrPersistence, err)
	}

	return parseMoney(amount, code)
}
