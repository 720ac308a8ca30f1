package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemKind discriminates what an ItemRef points at.
type ItemKind string

const (
	// ItemKindProduct references a fixed-price catalog product.
	ItemKindProduct ItemKind = "product"
	// ItemKindLot references a live-bid auction lot.
	ItemKindLot ItemKind = "lot"
)

// ItemRef is a discriminated reference to either a catalog product or an
// auction lot. Exactly one of the two ids is set, never both, never neither.
// The zero value is invalid.
type ItemRef struct {
	kind ItemKind
	id   uuid.UUID
}

// ProductRef references a catalog product.
func ProductRef(id uuid.UUID) ItemRef {
	return ItemRef{kind: ItemKindProduct, id: id}
}

// LotRef references an auction lot.
func LotRef(id uuid.UUID) ItemRef {
	return ItemRef{kind: ItemKindLot, id: id}
}

// ParseItemRef builds an ItemRef from its kind and id string representation,
// e.g. as carried in requests or persisted ephemeral records.
func ParseItemRef(kind, id string) (ItemRef, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ItemRef{}, fmt.Errorf("%w: item id[%s]: %v", ErrInvalidItemRef, id, err)
	}

	switch ItemKind(kind) {
	case ItemKindProduct:
		return ProductRef(parsed), nil
	case ItemKindLot:
		return LotRef(parsed), nil
	default:
		return ItemRef{}, fmt.Errorf("%w: unknown item kind[%s]", ErrInvalidItemRef, kind)
	}
}

// Kind returns the discriminator.
func (r ItemRef) Kind() ItemKind { return r.kind }

// ID returns the referenced product or lot id.
func (r ItemRef) ID() uuid.UUID { return r.id }

// IsZero reports whether the reference is unset.
func (r ItemRef) IsZero() bool {
	return r.kind == "" || r.id == uuid.Nil
}

// Equal reports whether two references point at the same item.
func (r ItemRef) Equal(other ItemRef) bool {
	return r.kind == other.kind && r.id == other.id
}

func (r ItemRef) String() string {
	return fmt.Sprintf("%s:%s", r.kind, r.id)
}
