package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/farmgate/storefront/internal/domain"
)

// CatalogRepository implements product and lot reads for PostgreSQL.
// It backs both the browse surface and the price oracle.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListProducts returns a page of catalog products, newest first.
func (r *CatalogRepository) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT product_id, name, description, farm_name, price_amount::text, price_currency, created_at, updated_at
		 FROM products
		 ORDER BY created_at DESC, product_id
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: query products: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate products: %v", domain.ErrPersistence, err)
	}

	return products, nil
}

// GetProduct retrieves a product by id. Returns nil when absent.
func (r *CatalogRepository) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT product_id, name, description, farm_name, price_amount::text, price_currency, created_at, updated_at
		 FROM products WHERE product_id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetLot retrieves an auction lot by id. Returns nil when absent.
func (r *CatalogRepository) GetLot(ctx context.Context, id uuid.UUID) (*domain.Lot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT lot_id, title, farm_name, opening_amount::text, current_amount::text, price_currency, closes_at, created_at, updated_at
		 FROM lots WHERE lot_id = $1`, id)

	var (
		lotID     uuid.UUID
		title     string
		farmName  string
		opening   string
		current   string
		code      string
		closesAt  time.Time
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&lotID, &title, &farmName, &opening, &current, &code, &closesAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: scan lot: %v", domain.ErrPersistence, err)
	}

	openingPrice, err := parseMoney(opening, code)
	if err != nil {
		return nil, fmt.Errorf("row lot_id[%s]: %w", lotID, err)
	}
	currentPrice, err := parseMoney(current, code)
	if err != nil {
		return nil, fmt.Errorf("row lot_id[%s]: %w", lotID, err)
	}

	return &domain.Lot{
		ID:           lotID,
		Title:        title,
		FarmName:     farmName,
		OpeningPrice: openingPrice,
		CurrentPrice: currentPrice,
		ClosesAt:     closesAt,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		productID   uuid.UUID
		name        string
		description string
		farmName    string
		amount      string
		code        string
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(&productID, &name, &description, &farmName, &amount, &code, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, pgx.ErrNoRows
		}
		return domain.Product{}, fmt.Errorf("%w: scan product: %v", domain.ErrPersistence, err)
	}

	price, err := parseMoney(amount, code)
	if err != nil {
		return domain.Product{}, fmt.Errorf("row product_id[%s]: %w", productID, err)
	}

	return domain.Product{
		ID:          productID,
		Name:        name,
		Description: description,
		FarmName:    farmName,
		Price:       price,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func parseMoney(amount, code string) (domain.Money, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return domain.Money{}, fmt.Errorf("amount[%s] is not valid: %w", amount, err)
	}
	return domain.NewMoney(value, strings.TrimSpace(code))
}
