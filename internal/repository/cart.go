package repository

import (
	"context"

	"github.com/farmgate/storefront/internal/domain"
)

// Cart defines the interface for durable, owner-keyed cart persistence.
// Implementations report every failure; a write is never silently dropped.
type Cart interface {
	// Load returns all lines for the owner, oldest first.
	Load(ctx context.Context, ownerID string) ([]domain.CartLine, error)

	// Insert creates a line for (ownerID, ref) with the given quantity and
	// price snapshot. If a line for the same reference already exists the
	// quantities are summed and the existing snapshot is kept, so a lost
	// find-or-create race still converges on a single line.
	Insert(ctx context.Context, ownerID string, ref domain.ItemRef, quantity int, unitPrice domain.Money) (domain.CartLine, error)

	// UpdateQuantity overwrites the stored quantity of a line, leaving its
	// price snapshot untouched. Returns domain.ErrLineNotFound for an
	// unknown line id.
	UpdateQuantity(ctx context.Context, lineID string, quantity int) error

	// Delete removes a line. Deleting an absent line is not an error;
	// the bool reports whether a row was removed.
	Delete(ctx context.Context, lineID string) (bool, error)

	// DeleteAll removes every line for the owner.
	DeleteAll(ctx context.Context, ownerID string) error
}
