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

// RateFunc folds a new rating into the listing's buckets and returns the
// updated buckets with their average.
type RateFunc func(buckets []entity.RatingBucket, rating int) ([]entity.RatingBucket, float64)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review, rate RateFunc) error
	FindByProductID(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

// Create stores the review and updates the listing rating in one
// transaction. A second review by the same buyer is ErrConflict.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review, rate RateFunc) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var buckets []entity.RatingBucket
		err := tx.QueryRow(ctx,
			`SELECT rating FROM products WHERE id = $1 FOR UPDATE`, review.ProductID,
		).Scan(&buckets)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO reviews (id, user_id, product_id, full_name, rating, comment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			review.ID,
			review.UserID,
			review.ProductID,
			review.FullName,
			review.Rating,
			review.Comment,
			review.CreatedAt,
		)
		if isUniqueViolation(err) {
			return ErrConflict
		}
		if err != nil {
			return err
		}

		buckets, average := rate(buckets, review.Rating)
		_, err = tx.Exec(ctx,
			`UPDATE products SET rating = $2, rating_average = $3, updated_at = NOW() WHERE id = $1`,
			review.ProductID, buckets, average)
		return err
	})

	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("product_id", review.ProductID.String()),
		)
		return fmt.Errorf("create review for product %s by user %s: %w",
			review.ProductID.String(), review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByProductID(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, user_id, product_id, full_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, productID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by product ID",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find reviews by product ID %s: %w", productID.String(), err)
	}
	defer rows.Close()

	reviews := []*entity.Review{}
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ProductID,
			&review.FullName,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE product_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, productID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by product ID",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return 0, fmt.Errorf("count reviews by product ID %s: %w", productID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, user_id, product_id, full_name, rating, comment, created_at
		FROM reviews
		WHERE user_id = $1 AND product_id = $2
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, userID, productID).Scan(
		&review.ID,
		&review.UserID,
		&review.ProductID,
		&review.FullName,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and product",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find review for product %s by user %s: %w",
			productID.String(), userID.String(), err)
	}

	return &review, nil
}
