package entity

import (
	"time"

	"github.com/google/uuid"
)

// QueueProduct is a seller listing waiting for moderation. The whole listing,
// variations included, is kept as one JSONB document until it is promoted.
type QueueProduct struct {
	ID        uuid.UUID `db:"id"`
	ListingID string    `db:"listing_id"`
	SellerID  uuid.UUID `db:"seller_id"`
	Document  Product   `db:"document"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
