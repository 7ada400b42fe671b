package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"
	"github.com/mroy35034/woo-com-server/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CartRepository interface {
	Add(ctx context.Context, item *entity.CartItem) error
	FindLines(ctx context.Context, customerID uuid.UUID, purchasableOnly bool) ([]query.CartLine, error)
	FindSingleLine(ctx context.Context, productID, variationID uuid.UUID, quantity int) (*query.CartLine, error)
	FindItem(ctx context.Context, customerID, id uuid.UUID) (*entity.CartItem, error)
	Exists(ctx context.Context, customerID, variationID uuid.UUID) (bool, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	UpdateQuantity(ctx context.Context, customerID, id uuid.UUID, quantity int) error
	Remove(ctx context.Context, customerID, id uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

// Add inserts a cart line. The same variation twice is ErrConflict.
func (r *cartRepository) Add(ctx context.Context, item *entity.CartItem) error {
	stmt := `
		INSERT INTO cart_items (id, customer_id, customer_email, product_id, listing_id,
		                        variation_id, quantity, added_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, stmt,
		item.ID,
		item.CustomerID,
		item.CustomerEmail,
		item.ProductID,
		item.ListingID,
		item.VariationID,
		item.Quantity,
		item.AddedAt,
		item.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		r.log.Error("Failed to add cart item",
			zap.Error(err),
			zap.String("customer_id", item.CustomerID.String()),
			zap.String("variation_id", item.VariationID.String()),
		)
		return fmt.Errorf("add variation %s to cart: %w", item.VariationID.String(), err)
	}

	return nil
}

func (r *cartRepository) FindLines(ctx context.Context, customerID uuid.UUID, purchasableOnly bool) ([]query.CartLine, error) {
	sql, args := query.CartLines(customerID, purchasableOnly)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to find cart lines",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find cart lines of %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	lines := []query.CartLine{}
	for rows.Next() {
		var line query.CartLine
		if err := rows.Scan(line.Dest()...); err != nil {
			r.log.Error("Failed to scan cart line", zap.Error(err))
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// FindSingleLine shapes a single purchase like a cart line.
func (r *cartRepository) FindSingleLine(ctx context.Context, productID, variationID uuid.UUID, quantity int) (*query.CartLine, error) {
	sql, args := query.SingleLine(productID, variationID, quantity)

	var line query.CartLine
	err := r.db.QueryRow(ctx, sql, args...).Scan(line.Dest()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find single line",
			zap.Error(err),
			zap.String("variation_id", variationID.String()),
		)
		return nil, fmt.Errorf("find variation %s: %w", variationID.String(), err)
	}

	return &line, nil
}

func (r *cartRepository) FindItem(ctx context.Context, customerID, id uuid.UUID) (*entity.CartItem, error) {
	stmt := `
		SELECT id, customer_id, customer_email, product_id, listing_id, variation_id,
		       quantity, added_at, updated_at
		FROM cart_items
		WHERE id = $1 AND customer_id = $2
	`

	var item entity.CartItem
	err := r.db.QueryRow(ctx, stmt, id, customerID).Scan(
		&item.ID,
		&item.CustomerID,
		&item.CustomerEmail,
		&item.ProductID,
		&item.ListingID,
		&item.VariationID,
		&item.Quantity,
		&item.AddedAt,
		&item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item",
			zap.Error(err),
			zap.String("cart_item_id", id.String()),
		)
		return nil, fmt.Errorf("find cart item %s: %w", id.String(), err)
	}

	return &item, nil
}

func (r *cartRepository) Exists(ctx context.Context, customerID, variationID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cart_items WHERE customer_id = $1 AND variation_id = $2)`,
		customerID, variationID,
	).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check cart item", zap.Error(err))
		return false, fmt.Errorf("check cart item: %w", err)
	}

	return exists, nil
}

func (r *cartRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE customer_id = $1`, customerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count cart items",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count cart items of %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, customerID, id uuid.UUID, quantity int) error {
	result, err := r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = NOW() WHERE id = $1 AND customer_id = $2`,
		id, customerID, quantity,
	)
	if err != nil {
		r.log.Error("Failed to update cart quantity",
			zap.Error(err),
			zap.String("cart_item_id", id.String()),
		)
		return fmt.Errorf("update quantity of cart item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *cartRepository) Remove(ctx context.Context, customerID, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND customer_id = $2`, id, customerID)
	if err != nil {
		r.log.Error("Failed to remove cart item",
			zap.Error(err),
			zap.String("cart_item_id", id.String()),
		)
		return fmt.Errorf("remove cart item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
