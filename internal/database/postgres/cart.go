package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmgate/storefront/internal/domain"
)

// CartRepository implements the durable cart store for PostgreSQL.
// One row per (owner, item) pair; the unique constraint on
// (owner_id, item_kind, item_id) backs the single-line-per-item invariant.
type CartRepository struct {
	db *pgxpool.Pool
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

const cartLineColumns = `line_id, owner_id, item_kind, item_id, quantity, price_amount::text, price_currency, created_at, updated_at`

// Load returns all cart lines for the owner, oldest first.
func (r *CartRepository) Load(ctx context.Context, ownerID string) ([]domain.CartLine, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+cartLineColumns+`
		 FROM cart_lines
		 WHERE owner_id = $1
		 ORDER BY created_at, line_id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: query cart lines: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		line, err := scanCartLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate cart lines: %v", domain.ErrPersistence, err)
	}

	return lines, nil
}

// Insert creates a line for (ownerID, ref). If a line for the same item
// already exists the quantities are summed and the stored price snapshot is
// kept, so two concurrent find-or-create attempts converge on one line
// instead of racing into a duplicate.
func (r *CartRepository) Insert(ctx context.Context, ownerID string, ref domain.ItemRef, quantity int, unitPrice domain.Money) (domain.CartLine, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO cart_lines (owner_id, item_kind, item_id, quantity, price_amount, price_currency)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6)
		 ON CONFLICT (owner_id, item_kind, item_id)
		 DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity,
		               updated_at = NOW()
		 RETURNING `+cartLineColumns,
		ownerID, string(ref.Kind()), ref.ID(), quantity, unitPrice.Amount.String(), unitPrice.Currency.String())

	line, err := scanCartLine(row)
	if err != nil {
		return domain.CartLine{}, err
	}
	return line, nil
}

// UpdateQuantity overwrites the stored quantity of a line, leaving the price
// snapshot untouched.
func (r *CartRepository) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	id, err := uuid.Parse(lineID)
	if err != nil {
		return fmt.Errorf("%w: line id[%s]", domain.ErrLineNotFound, lineID)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE cart_lines SET quantity = $2, updated_at = NOW() WHERE line_id = $1`,
		id, quantity)
	if err != nil {
		return fmt.Errorf("%w: update quantity: %v", domain.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: line id[%s]", domain.ErrLineNotFound, lineID)
	}

	return nil
}

// Delete removes a line. Deleting an absent or malformed line id is a no-op.
func (r *CartRepository) Delete(ctx context.Context, lineID string) (bool, error) {
	id, err := uuid.Parse(lineID)
	if err != nil {
		return false, nil
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM cart_lines WHERE line_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%w: delete line: %v", domain.ErrPersistence, err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteAll removes every line for the owner.
func (r *CartRepository) DeleteAll(ctx context.Context, ownerID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cart_lines WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("%w: clear cart: %v", domain.ErrPersistence, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCartLine(row rowScanner) (domain.CartLine, error) {
	var (
		lineID    uuid.UUID
		ownerID   string
		itemKind  string
		itemID    uuid.UUID
		quantity  int
		amount    string
		code      string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&lineID, &ownerID, &itemKind, &itemID, &quantity, &amount, &code, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CartLine{}, domain.ErrLineNotFound
		}
		return domain.CartLine{}, fmt.Errorf("%w: scan cart line: %v", domain.ErrPersistence, err)
	}

	ref, err := domain.ParseItemRef(itemKind, itemID.String())
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("row line_id[%s]: %w", lineID, err)
	}

	price, err := parseMoney(amount, code)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("row line_id[%s]: %w", lineID, err)
	}

	return domain.CartLine{
		ID:        lineID.String(),
		OwnerID:   ownerID,
		ItemRef:   ref,
		Quantity:  quantity,
		UnitPrice: price,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
