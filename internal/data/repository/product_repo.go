package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"
	"github.com/mroy35034/woo-com-server/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindDrafts(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)
	FindManaged(ctx context.Context, filter query.ManageFilter) ([]*entity.Product, error)
	CountManaged(ctx context.Context, filter query.ManageFilter) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Publish(ctx context.Context, sellerID, id uuid.UUID) error
	Delete(ctx context.Context, sellerID, id uuid.UUID) error
	RemoveFromCarts(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	UpdateScore(ctx context.Context, id uuid.UUID, score float64) error

	// Variations
	CreateVariation(ctx context.Context, sellerID uuid.UUID, v *entity.Variation) error
	UpdateVariation(ctx context.Context, sellerID uuid.UUID, v *entity.Variation) error
	DeleteVariation(ctx context.Context, sellerID, productID, variationID uuid.UUID) error
	UpdateStock(ctx context.Context, sellerID, productID, variationID uuid.UUID, available int) error

	// Shaped reads
	Search(ctx context.Context, text string, limit int) ([]query.ProductCard, error)
	FindByCategory(ctx context.Context, filter query.CategoryFilter) ([]query.ProductCard, error)
	CountByCategory(ctx context.Context, filter query.CategoryFilter) (int64, error)
	FindCarousel(ctx context.Context, kind query.Carousel, limit int) ([]query.ProductCard, error)
	FindRelated(ctx context.Context, categories []string, excludeVariationID uuid.UUID, limit int) ([]query.ProductCard, error)
	FindTopSold(ctx context.Context, sellerID *uuid.UUID, limit int) ([]query.SoldProduct, error)
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p             entity.Product
		verifiedBy    *string
		verifierEmail *string
		verifiedAt    *time.Time
	)

	err := row.Scan(
		&p.ID,
		&p.ListingID,
		&p.Title,
		&p.Slug,
		&p.Categories,
		&p.Brand,
		&p.Manufacturer,
		&p.Packaged,
		&p.Shipping,
		&p.Rating,
		&p.RatingAverage,
		&p.Keywords,
		&p.MetaDescription,
		&p.Description,
		&p.Highlights,
		&p.Specification,
		&p.Images,
		&p.Supplier.ID,
		&p.Supplier.Email,
		&p.Supplier.StoreName,
		&p.SaveAs,
		&p.Status,
		&p.Views,
		&p.Score,
		&p.Sold,
		&p.IsVerified,
		&verifiedBy,
		&verifierEmail,
		&verifiedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if verifiedAt != nil {
		p.VerifyStatus = &entity.VerifyStatus{VerifiedAt: *verifiedAt}
		if verifiedBy != nil {
			p.VerifyStatus.VerifiedBy = *verifiedBy
		}
		if verifierEmail != nil {
			p.VerifyStatus.Email = *verifierEmail
		}
	}

	return &p, nil
}

func scanVariation(row pgx.Row) (*entity.Variation, error) {
	var v entity.Variation
	err := row.Scan(
		&v.ID,
		&v.ProductID,
		&v.SKU,
		&v.Title,
		&v.Slug,
		&v.Price,
		&v.SellingPrice,
		&v.Available,
		&v.Stock,
		&v.Status,
		&v.Attributes,
		&v.Images,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// insertProduct writes a listing and its variations through q, which is
// normally the caller's transaction.
func insertProduct(ctx context.Context, q database.Querier, p *entity.Product) error {
	stmt := `
		INSERT INTO products (id, listing_id, title, slug, categories, brand, manufacturer, packaged,
		                      shipping, rating, rating_average, keywords, meta_description, description,
		                      highlights, specification, images, seller_id, seller_email, store_name,
		                      save_as, status, views, score, sold, is_verified, verified_by,
		                      verifier_email, verified_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		        $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
	`

	var (
		verifiedBy, verifierEmail *string
		verifiedAt                *time.Time
	)
	if vs := p.VerifyStatus; vs != nil {
		verifiedBy, verifierEmail, verifiedAt = &vs.VerifiedBy, &vs.Email, &vs.VerifiedAt
	}

	_, err := q.Exec(ctx, stmt,
		p.ID,
		p.ListingID,
		p.Title,
		p.Slug,
		p.Categories,
		p.Brand,
		p.Manufacturer,
		p.Packaged,
		p.Shipping,
		p.Rating,
		p.RatingAverage,
		p.Keywords,
		p.MetaDescription,
		p.Description,
		p.Highlights,
		p.Specification,
		p.Images,
		p.Supplier.ID,
		p.Supplier.Email,
		p.Supplier.StoreName,
		p.SaveAs,
		p.Status,
		p.Views,
		p.Score,
		p.Sold,
		p.IsVerified,
		verifiedBy,
		verifierEmail,
		verifiedAt,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product %s: %w", p.ListingID, err)
	}

	for i := range p.Variations {
		p.Variations[i].ProductID = p.ID
		if err := insertVariation(ctx, q, &p.Variations[i]); err != nil {
			return err
		}
	}

	return nil
}

func insertVariation(ctx context.Context, q database.Querier, v *entity.Variation) error {
	stmt := `
		INSERT INTO variations (id, product_id, sku, title, slug, price, selling_price, available,
		                        stock, status, attributes, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := q.Exec(ctx, stmt,
		v.ID,
		v.ProductID,
		v.SKU,
		v.Title,
		v.Slug,
		v.Price,
		v.SellingPrice,
		v.Available,
		entity.StockFor(v.Available),
		v.Status,
		v.Attributes,
		v.Images,
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert variation %s: %w", v.SKU, err)
	}

	return nil
}

// attachVariations loads the variations of every product in one query.
func (r *productRepository) attachVariations(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(products))
	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	sql, args := query.VariationsOf(ids)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("find variations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVariation(rows)
		if err != nil {
			return fmt.Errorf("scan variation row: %w", err)
		}
		if p := byID[v.ProductID]; p != nil {
			p.Variations = append(p.Variations, *v)
		}
	}

	return rows.Err()
}

func (r *productRepository) findProducts(ctx context.Context, sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.attachVariations(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// FindByID returns the listing with all of its variations.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	sql, args := query.ProductByID(id)

	p, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	if err := r.attachVariations(ctx, []*entity.Product{p}); err != nil {
		r.log.Error("Failed to load product variations",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return p, nil
}

func (r *productRepository) FindDrafts(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	sql, args := query.Drafts(sellerID)

	products, err := r.findProducts(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to find draft products",
			zap.Error(err),
			zap.String("seller_id", sellerID.String()),
		)
		return nil, fmt.Errorf("find drafts of seller %s: %w", sellerID.String(), err)
	}

	return products, nil
}

func (r *productRepository) FindManaged(ctx context.Context, filter query.ManageFilter) ([]*entity.Product, error) {
	sql, args := query.ManageProducts(filter)

	products, err := r.findProducts(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to find managed products", zap.Error(err))
		return nil, fmt.Errorf("find managed products: %w", err)
	}

	return products, nil
}

func (r *productRepository) CountManaged(ctx context.Context, filter query.ManageFilter) (int64, error) {
	sql, args := query.CountManageProducts(filter)

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count managed products", zap.Error(err))
		return 0, fmt.Errorf("count managed products: %w", err)
	}

	return count, nil
}

// Update rewrites the descriptive fields of a seller's listing.
func (r *productRepository) Update(ctx context.Context, p *entity.Product) error {
	stmt := `
		UPDATE products
		SET title = $3, slug = $4, categories = $5, brand = $6, manufacturer = $7, packaged = $8,
		    shipping = $9, keywords = $10, meta_description = $11, description = $12,
		    highlights = $13, specification = $14, images = $15, updated_at = $16
		WHERE id = $1 AND seller_id = $2
	`

	result, err := r.db.Exec(ctx, stmt,
		p.ID,
		p.Supplier.ID,
		p.Title,
		p.Slug,
		p.Categories,
		p.Brand,
		p.Manufacturer,
		p.Packaged,
		p.Shipping,
		p.Keywords,
		p.MetaDescription,
		p.Description,
		p.Highlights,
		p.Specification,
		p.Images,
		p.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", p.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", p.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Publish turns a draft with at least one variation into a live listing.
func (r *productRepository) Publish(ctx context.Context, sellerID, id uuid.UUID) error {
	stmt := `
		UPDATE products
		SET save_as = 'fulfilled', status = 'active', updated_at = NOW()
		WHERE id = $1 AND seller_id = $2 AND save_as = 'draft'
		  AND EXISTS (SELECT 1 FROM variations WHERE product_id = $1)
	`

	result, err := r.db.Exec(ctx, stmt, id, sellerID)
	if err != nil {
		r.log.Error("Failed to publish product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("publish product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the listing. Variations, cart and wishlist lines go with it.
func (r *productRepository) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1 AND seller_id = $2`, id, sellerID)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("delete product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *productRepository) RemoveFromCarts(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE product_id = $1`, id); err != nil {
		r.log.Error("Failed to remove product from carts",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("remove product %s from carts: %w", id.String(), err)
	}

	return nil
}

func (r *productRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	var views int64
	err := r.db.QueryRow(ctx,
		`UPDATE products SET views = views + 1 WHERE id = $1 RETURNING views`, id,
	).Scan(&views)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to increment product views",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return 0, fmt.Errorf("increment views of product %s: %w", id.String(), err)
	}

	return views, nil
}

func (r *productRepository) UpdateScore(ctx context.Context, id uuid.UUID, score float64) error {
	if _, err := r.db.Exec(ctx, `UPDATE products SET score = $2 WHERE id = $1`, id, score); err != nil {
		r.log.Error("Failed to update product score",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("update score of product %s: %w", id.String(), err)
	}

	return nil
}

const ownsProduct = `EXISTS (SELECT 1 FROM products p WHERE p.id = $2 AND p.seller_id = $3)`

func (r *productRepository) CreateVariation(ctx context.Context, sellerID uuid.UUID, v *entity.Variation) error {
	var owned bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND seller_id = $2)`,
		v.ProductID, sellerID,
	).Scan(&owned)
	if err != nil {
		r.log.Error("Failed to check product owner",
			zap.Error(err),
			zap.String("product_id", v.ProductID.String()),
		)
		return fmt.Errorf("check owner of product %s: %w", v.ProductID.String(), err)
	}
	if !owned {
		return ErrNotFound
	}

	if err := insertVariation(ctx, r.db, v); err != nil {
		r.log.Error("Failed to create variation",
			zap.Error(err),
			zap.String("product_id", v.ProductID.String()),
		)
		return err
	}

	return nil
}

func (r *productRepository) UpdateVariation(ctx context.Context, sellerID uuid.UUID, v *entity.Variation) error {
	stmt := `
		UPDATE variations
		SET sku = $4, title = $5, slug = $6, price = $7, selling_price = $8,
		    status = $9, attributes = $10, images = $11, updated_at = $12
		WHERE id = $1 AND product_id = $2 AND ` + ownsProduct

	result, err := r.db.Exec(ctx, stmt,
		v.ID,
		v.ProductID,
		sellerID,
		v.SKU,
		v.Title,
		v.Slug,
		v.Price,
		v.SellingPrice,
		v.Status,
		v.Attributes,
		v.Images,
		v.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update variation",
			zap.Error(err),
			zap.String("variation_id", v.ID.String()),
		)
		return fmt.Errorf("update variation %s: %w", v.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *productRepository) DeleteVariation(ctx context.Context, sellerID, productID, variationID uuid.UUID) error {
	stmt := `DELETE FROM variations WHERE id = $1 AND product_id = $2 AND ` + ownsProduct

	result, err := r.db.Exec(ctx, stmt, variationID, productID, sellerID)
	if err != nil {
		r.log.Error("Failed to delete variation",
			zap.Error(err),
			zap.String("variation_id", variationID.String()),
		)
		return fmt.Errorf("delete variation %s: %w", variationID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateStock sets the available count and derives the stock flag from it.
func (r *productRepository) UpdateStock(ctx context.Context, sellerID, productID, variationID uuid.UUID, available int) error {
	stmt := `
		UPDATE variations
		SET available = $4, stock = $5, updated_at = NOW()
		WHERE id = $1 AND product_id = $2 AND ` + ownsProduct

	result, err := r.db.Exec(ctx, stmt, variationID, productID, sellerID, available, entity.StockFor(available))
	if err != nil {
		r.log.Error("Failed to update stock",
			zap.Error(err),
			zap.String("variation_id", variationID.String()),
			zap.Int("available", available),
		)
		return fmt.Errorf("update stock of variation %s: %w", variationID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *productRepository) findCards(ctx context.Context, sql string, args ...any) ([]query.ProductCard, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []query.ProductCard{}
	for rows.Next() {
		var c query.ProductCard
		if err := rows.Scan(c.Dest()...); err != nil {
			return nil, fmt.Errorf("scan product card: %w", err)
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

func (r *productRepository) Search(ctx context.Context, text string, limit int) ([]query.ProductCard, error) {
	sql, args := query.Search(text, limit)

	cards, err := r.findCards(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to search products",
			zap.Error(err),
			zap.String("q", text),
		)
		return nil, fmt.Errorf("search products %q: %w", text, err)
	}

	return cards, nil
}

func (r *productRepository) FindByCategory(ctx context.Context, filter query.CategoryFilter) ([]query.ProductCard, error) {
	sql, args := query.ByCategory(filter)

	cards, err := r.findCards(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to find products by category",
			zap.Error(err),
			zap.Strings("categories", filter.Categories),
		)
		return nil, fmt.Errorf("find products by category: %w", err)
	}

	return cards, nil
}

func (r *productRepository) CountByCategory(ctx context.Context, filter query.CategoryFilter) (int64, error) {
	sql, args := query.CountByCategory(filter)

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count products by category", zap.Error(err))
		return 0, fmt.Errorf("count products by category: %w", err)
	}

	return count, nil
}

func (r *productRepository) FindCarousel(ctx context.Context, kind query.Carousel, limit int) ([]query.ProductCard, error) {
	sql, args := query.HomeCarousel(kind, limit)

	cards, err := r.findCards(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to find home carousel",
			zap.Error(err),
			zap.String("kind", string(kind)),
		)
		return nil, fmt.Errorf("find %s carousel: %w", kind, err)
	}

	return cards, nil
}

func (r *productRepository) FindRelated(ctx context.Context, categories []string, excludeVariationID uuid.UUID, limit int) ([]query.ProductCard, error) {
	sql, args := query.Related(categories, excludeVariationID, limit)

	cards, err := r.findCards(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to find related products", zap.Error(err))
		return nil, fmt.Errorf("find related products: %w", err)
	}

	return cards, nil
}

func (r *productRepository) FindTopSold(ctx context.Context, sellerID *uuid.UUID, limit int) ([]query.SoldProduct, error) {
	sql, args := query.TopSold(sellerID, limit)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to find top sold products", zap.Error(err))
		return nil, fmt.Errorf("find top sold products: %w", err)
	}
	defer rows.Close()

	sold := []query.SoldProduct{}
	for rows.Next() {
		var s query.SoldProduct
		if err := rows.Scan(s.Dest()...); err != nil {
			return nil, fmt.Errorf("scan sold product: %w", err)
		}
		sold = append(sold, s)
	}

	return sold, rows.Err()
}
