package repository

import (
	"context"
	"fmt"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"
	"github.com/mroy35034/woo-com-server/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WishlistRepository interface {
	Add(ctx context.Context, item *entity.WishlistItem) error
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]query.ProductCard, error)
	Exists(ctx context.Context, customerID, variationID uuid.UUID) (bool, error)
	Remove(ctx context.Context, customerID, variationID uuid.UUID) error
}

type wishlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWishlistRepository(db database.PgxIface, log *zap.Logger) WishlistRepository {
	return &wishlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "wishlist")),
	}
}

func (r *wishlistRepository) Add(ctx context.Context, item *entity.WishlistItem) error {
	stmt := `
		INSERT INTO wishlist_items (id, customer_id, product_id, listing_id, variation_id, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, stmt,
		item.ID,
		item.CustomerID,
		item.ProductID,
		item.ListingID,
		item.VariationID,
		item.AddedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		r.log.Error("Failed to add wishlist item",
			zap.Error(err),
			zap.String("customer_id", item.CustomerID.String()),
		)
		return fmt.Errorf("add variation %s to wishlist: %w", item.VariationID.String(), err)
	}

	return nil
}

func (r *wishlistRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]query.ProductCard, error) {
	sql, args := query.Wishlist(customerID)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to find wishlist",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find wishlist of %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	cards := []query.ProductCard{}
	for rows.Next() {
		var c query.ProductCard
		if err := rows.Scan(c.Dest()...); err != nil {
			return nil, fmt.Errorf("scan wishlist card: %w", err)
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

func (r *wishlistRepository) Exists(ctx context.Context, customerID, variationID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE customer_id = $1 AND variation_id = $2)`,
		customerID, variationID,
	).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check wishlist item", zap.Error(err))
		return false, fmt.Errorf("check wishlist item: %w", err)
	}

	return exists, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, customerID, variationID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM wishlist_items WHERE customer_id = $1 AND variation_id = $2`,
		customerID, variationID,
	)
	if err != nil {
		r.log.Error("Failed to remove wishlist item",
			zap.Error(err),
			zap.String("variation_id", variationID.String()),
		)
		return fmt.Errorf("remove variation %s from wishlist: %w", variationID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
