package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a buyer's shopping cart. Pricing columns are a
// snapshot taken when the line was added; shaped reads join live prices.
type CartItem struct {
	ID            uuid.UUID `db:"id"`
	CustomerID    uuid.UUID `db:"customer_id"`
	CustomerEmail string    `db:"customer_email"`
	ProductID     uuid.UUID `db:"product_id"`
	ListingID     string    `db:"listing_id"`
	VariationID   uuid.UUID `db:"variation_id"`
	Quantity      int       `db:"quantity"`
	AddedAt       time.Time `db:"added_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type WishlistItem struct {
	ID          uuid.UUID `db:"id"`
	CustomerID  uuid.UUID `db:"customer_id"`
	ProductID   uuid.UUID `db:"product_id"`
	ListingID   string    `db:"listing_id"`
	VariationID uuid.UUID `db:"variation_id"`
	AddedAt     time.Time `db:"added_at"`
}
