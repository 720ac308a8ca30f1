package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a fixed-price catalog entry.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	FarmName    string
	Price       Money
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Lot is an auction listing whose current price is driven by live bids.
// Bid placement itself happens elsewhere; the storefront only reads the
// current price when a lot is added to a cart.
type Lot struct {
	ID           uuid.UUID
	Title        string
	FarmName     string
	OpeningPrice Money
	CurrentPrice Money
	ClosesAt     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ref returns the cart item reference for the product.
func (p Product) Ref() ItemRef { return ProductRef(p.ID) }

// Ref returns the cart item reference for the lot.
func (l Lot) Ref() ItemRef { return LotRef(l.ID) }
