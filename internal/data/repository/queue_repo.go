package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// QueueRepository holds seller listings that wait for moderation.
type QueueRepository interface {
	Create(ctx context.Context, item *entity.QueueProduct) error
	FindByListingID(ctx context.Context, listingID string) (*entity.QueueProduct, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.QueueProduct, error)
	CountAll(ctx context.Context) (int64, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.QueueProduct, error)
	Update(ctx context.Context, item *entity.QueueProduct) error
	Promote(ctx context.Context, listingID string, build func(*entity.QueueProduct) (*entity.Product, error)) (*entity.Product, error)
}

type queueRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewQueueRepository(db database.PgxIface, log *zap.Logger) QueueRepository {
	return &queueRepository{
		db:  db,
		log: log.With(zap.String("repository", "queue")),
	}
}

const queueColumns = `id, listing_id, seller_id, document, created_at, updated_at`

func scanQueueProduct(row pgx.Row) (*entity.QueueProduct, error) {
	var q entity.QueueProduct
	err := row.Scan(
		&q.ID,
		&q.ListingID,
		&q.SellerID,
		&q.Document,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *queueRepository) Create(ctx context.Context, item *entity.QueueProduct) error {
	query := `
		INSERT INTO queue_products (id, listing_id, seller_id, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.ListingID,
		item.SellerID,
		item.Document,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		r.log.Error("Failed to queue product",
			zap.Error(err),
			zap.String("listing_id", item.ListingID),
		)
		return fmt.Errorf("queue product %s: %w", item.ListingID, err)
	}

	return nil
}

func (r *queueRepository) FindByListingID(ctx context.Context, listingID string) (*entity.QueueProduct, error) {
	query := `SELECT ` + queueColumns + ` FROM queue_products WHERE listing_id = $1`

	item, err := scanQueueProduct(r.db.QueryRow(ctx, query, listingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find queued product",
			zap.Error(err),
			zap.String("listing_id", listingID),
		)
		return nil, fmt.Errorf("find queued product %s: %w", listingID, err)
	}

	return item, nil
}

func (r *queueRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.QueueProduct, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*entity.QueueProduct{}
	for rows.Next() {
		item, err := scanQueueProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan queue row: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *queueRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.QueueProduct, error) {
	query := `SELECT ` + queueColumns + ` FROM queue_products ORDER BY created_at LIMIT $1 OFFSET $2`

	items, err := r.findMany(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find queued products", zap.Error(err))
		return nil, fmt.Errorf("find queued products: %w", err)
	}

	return items, nil
}

func (r *queueRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM queue_products`).Scan(&count); err != nil {
		r.log.Error("Failed to count queued products", zap.Error(err))
		return 0, fmt.Errorf("count queued products: %w", err)
	}

	return count, nil
}

func (r *queueRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.QueueProduct, error) {
	query := `SELECT ` + queueColumns + ` FROM queue_products WHERE seller_id = $1 ORDER BY created_at DESC`

	items, err := r.findMany(ctx, query, sellerID)
	if err != nil {
		r.log.Error("Failed to find seller queue",
			zap.Error(err),
			zap.String("seller_id", sellerID.String()),
		)
		return nil, fmt.Errorf("find queue of seller %s: %w", sellerID.String(), err)
	}

	return items, nil
}

// Update replaces the queued document of the seller's listing.
func (r *queueRepository) Update(ctx context.Context, item *entity.QueueProduct) error {
	query := `
		UPDATE queue_products
		SET document = $3, updated_at = $4
		WHERE listing_id = $1 AND seller_id = $2
	`

	result, err := r.db.Exec(ctx, query, item.ListingID, item.SellerID, item.Document, item.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update queued product",
			zap.Error(err),
			zap.String("listing_id", item.ListingID),
		)
		return fmt.Errorf("update queued product %s: %w", item.ListingID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Promote moves a queued listing into products in one transaction. The queue
// row is locked, a listing that already exists in products is ErrConflict and
// leaves the queue untouched, and a missing queue row is ErrNotFound. build
// turns the queued document into the product to insert.
func (r *queueRepository) Promote(ctx context.Context, listingID string, build func(*entity.QueueProduct) (*entity.Product, error)) (*entity.Product, error) {
	var product *entity.Product

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		item, err := scanQueueProduct(tx.QueryRow(ctx,
			`SELECT `+queueColumns+` FROM queue_products WHERE listing_id = $1 FOR UPDATE`, listingID))
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE listing_id = $1)`, listingID,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}

		product, err = build(item)
		if err != nil {
			return err
		}

		if err := insertProduct(ctx, tx, product); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM queue_products WHERE id = $1`, item.ID)
		return err
	})

	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return nil, err
	}
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		r.log.Error("Failed to promote queued product",
			zap.Error(err),
			zap.String("listing_id", listingID),
		)
		return nil, fmt.Errorf("promote queued product %s: %w", listingID, err)
	}

	return product, nil
}
