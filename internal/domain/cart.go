package domain

import (
	"fmt"
	"time"
)

// CartLine is one purchasable position in a cart: an (owner, item) pair with a
// quantity and the unit price captured when the line was first created. The
// snapshot is deliberately never refreshed while the line exists, so a lot
// whose live bid moves after the add keeps the price the shopper committed to.
type CartLine struct {
	ID        string
	OwnerID   string // empty for ephemeral lines
	ItemRef   ItemRef
	Quantity  int
	UnitPrice Money // snapshot from line creation
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subtotal returns quantity times the unit price snapshot.
func (l CartLine) Subtotal() Money {
	return l.UnitPrice.Mul(l.Quantity)
}

// Cart is the derived view of an owner's current line set. It is materialized
// on read and never stored.
type Cart struct {
	OwnerID   string
	Lines     []CartLine
	ItemCount int
	Total     Money
}

// ComputeTotals derives the item count and monetary total for a line set.
// ItemCount is the sum of quantities; Total is the sum of quantity times each
// line's price snapshot. Lines must share one currency.
func ComputeTotals(lines []CartLine) (int, Money, error) {
	var count int
	var total Money

	for i, line := range lines {
		count += line.Quantity

		if i == 0 {
			total = line.Subtotal()
			continue
		}

		sum, err := total.Add(line.Subtotal())
		if err != nil {
			return 0, Money{}, fmt.Errorf("line[%s]: %w", line.ID, err)
		}
		total = sum
	}

	return count, total, nil
}

// NewCart materializes the derived cart for a line set.
func NewCart(ownerID string, lines []CartLine) (Cart, error) {
	count, total, err := ComputeTotals(lines)
	if err != nil {
		return Cart{}, err
	}

	return Cart{
		OwnerID:   ownerID,
		Lines:     lines,
		ItemCount: count,
		Total:     total,
	}, nil
}
