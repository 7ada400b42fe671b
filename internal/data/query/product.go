package query

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sort orders for category listings.
type Sort string

const (
	SortLowest  Sort = "lowest"
	SortHighest Sort = "highest"
	SortNewest  Sort = "newest"
)

// Carousel selects one of the home store rows.
type Carousel string

const (
	CarouselNewest     Carousel = "newest"
	CarouselTopSelling Carousel = "top_selling"
	CarouselTopRated   Carousel = "top_rated"
)

const actualPrice = "COALESCE(NULLIF(v.selling_price, 0), v.price)"

// visible limits rows to what buyers may see.
const visible = "p.status = 'active' AND p.save_as = 'fulfilled' AND v.status = 'active'"

const cardColumns = `p.id, p.listing_id, v.id, v.title, v.slug, p.brand,
	COALESCE(v.images[1], p.images[1], ''), v.price, v.selling_price,
	p.categories, p.store_name, p.rating_average, p.sold, v.available, v.stock, p.created_at`

const cardFrom = " FROM products p JOIN variations v ON v.product_id = p.id"

// ProductCard is one purchasable variation as shown in listings.
type ProductCard struct {
	ProductID     uuid.UUID       `json:"productID"`
	ListingID     string          `json:"_lid"`
	VariationID   uuid.UUID       `json:"_vrid"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Brand         string          `json:"brand"`
	Image         string          `json:"image"`
	Price         decimal.Decimal `json:"price"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Categories    []string        `json:"categories"`
	StoreName     string          `json:"storeName"`
	RatingAverage float64         `json:"ratingAverage"`
	Sold          int64           `json:"sold"`
	Available     int             `json:"available"`
	Stock         string          `json:"stock"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Dest returns scan targets in cardColumns order.
func (c *ProductCard) Dest() []any {
	return []any{
		&c.ProductID, &c.ListingID, &c.VariationID, &c.Title, &c.Slug, &c.Brand,
		&c.Image, &c.Price, &c.SellingPrice,
		&c.Categories, &c.StoreName, &c.RatingAverage, &c.Sold, &c.Available, &c.Stock, &c.CreatedAt,
	}
}

// Search matches text against title, brand, store and categories of visible listings.
func Search(text string, limit int) (string, []any) {
	b := &Builder{}
	pattern := b.Arg(Contains(text))

	b.Write("SELECT ", cardColumns, cardFrom,
		" WHERE ", visible,
		" AND (p.title ILIKE ", pattern,
		" OR p.brand ILIKE ", pattern,
		" OR p.store_name ILIKE ", pattern,
		" OR EXISTS (SELECT 1 FROM unnest(p.categories) c WHERE c ILIKE ", pattern, "))",
		" ORDER BY p.score DESC, p.created_at DESC",
		" LIMIT ", b.Arg(limit))

	return b.Build()
}

type CategoryFilter struct {
	Categories []string
	Sort       Sort
	Limit      int
	Offset     int
}

func categoryConds(b *Builder, f CategoryFilter) []string {
	conds := []string{visible}
	if len(f.Categories) > 0 {
		conds = append(conds, "p.categories @> "+b.Arg(f.Categories))
	}
	return conds
}

// ByCategory lists visible variations whose listing carries every category in f.
func ByCategory(f CategoryFilter) (string, []any) {
	b := &Builder{}
	b.Write("SELECT ", cardColumns, cardFrom, where(categoryConds(b, f)))

	switch f.Sort {
	case SortLowest:
		b.Write(" ORDER BY ", actualPrice, " ASC, p.created_at DESC")
	case SortHighest:
		b.Write(" ORDER BY ", actualPrice, " DESC, p.created_at DESC")
	default:
		b.Write(" ORDER BY p.created_at DESC")
	}

	b.Write(" LIMIT ", b.Arg(f.Limit), " OFFSET ", b.Arg(f.Offset))
	return b.Build()
}

func CountByCategory(f CategoryFilter) (string, []any) {
	b := &Builder{}
	b.Write("SELECT COUNT(*)", cardFrom, where(categoryConds(b, f)))
	return b.Build()
}

// HomeCarousel builds one of the storefront rows.
func HomeCarousel(kind Carousel, limit int) (string, []any) {
	b := &Builder{}
	b.Write("SELECT ", cardColumns, cardFrom, " WHERE ", visible)

	switch kind {
	case CarouselTopSelling:
		b.Write(" AND p.sold > 0 ORDER BY p.sold DESC")
	case CarouselTopRated:
		b.Write(" AND p.rating_average > 0 ORDER BY p.rating_average DESC, p.sold DESC")
	default:
		b.Write(" ORDER BY v.created_at DESC")
	}

	b.Write(" LIMIT ", b.Arg(limit))
	return b.Build()
}

// Related lists visible variations that share a category with the listing,
// excluding the variation being viewed.
func Related(categories []string, excludeVariationID uuid.UUID, limit int) (string, []any) {
	b := &Builder{}
	b.Write("SELECT ", cardColumns, cardFrom,
		" WHERE ", visible,
		" AND p.categories && ", b.Arg(categories),
		" AND v.id <> ", b.Arg(excludeVariationID),
		" ORDER BY p.score DESC",
		" LIMIT ", b.Arg(limit))
	return b.Build()
}

type ManageFilter struct {
	SellerID *uuid.UUID
	Search   string
	Category string
	Limit    int
	Offset   int
}

func manageConds(b *Builder, f ManageFilter) []string {
	conds := []string{"p.status = 'active'", "p.save_as = 'fulfilled'"}
	if f.SellerID != nil {
		conds = append(conds, "p.seller_id = "+b.Arg(*f.SellerID))
	}
	if f.Search != "" {
		pattern := b.Arg(Contains(f.Search))
		conds = append(conds, "(p.title ILIKE "+pattern+" OR p.store_name ILIKE "+pattern+")")
	} else if f.Category != "" && f.Category != "all" {
		conds = append(conds, b.Arg(f.Category)+" = ANY(p.categories)")
	}
	return conds
}

// ManageProducts lists fulfilled listings for the seller (or all, for admins).
func ManageProducts(f ManageFilter) (string, []any) {
	b := &Builder{}
	b.Write("SELECT ", productColumns, " FROM products p", where(manageConds(b, f)),
		" ORDER BY p.created_at DESC LIMIT ", b.Arg(f.Limit), " OFFSET ", b.Arg(f.Offset))
	return b.Build()
}

func CountManageProducts(f ManageFilter) (string, []any) {
	b := &Builder{}
	b.Write("SELECT COUNT(*) FROM products p", where(manageConds(b, f)))
	return b.Build()
}

// SoldProduct is a row of the sales dashboards.
type SoldProduct struct {
	ProductID  uuid.UUID `json:"productID"`
	Title      string    `json:"title"`
	Brand      string    `json:"brand"`
	Image      string    `json:"image"`
	StoreName  string    `json:"seller"`
	Categories []string  `json:"categories"`
	Sold       int64     `json:"sold"`
}

func (s *SoldProduct) Dest() []any {
	return []any{&s.ProductID, &s.Title, &s.Brand, &s.Image, &s.StoreName, &s.Categories, &s.Sold}
}

// TopSold ranks listings by units sold, optionally for one seller.
func TopSold(sellerID *uuid.UUID, limit int) (string, []any) {
	b := &Builder{}
	conds := []string{"p.sold > 0"}
	if sellerID != nil {
		conds = append(conds, "p.seller_id = "+b.Arg(*sellerID))
	}

	b.Write("SELECT p.id, p.title, p.brand, COALESCE(p.images[1], ''), p.store_name, p.categories, p.sold",
		" FROM products p", where(conds),
		" ORDER BY p.sold DESC LIMIT ", b.Arg(limit))
	return b.Build()
}
