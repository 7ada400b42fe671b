package query

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "shirt", "shirt"},
		{"percent", "100%", `100\%`},
		{"underscore", "a_b", `a\_b`},
		{"backslash", `a\b`, `a\\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLike(tt.in))
		})
	}
}

func TestSearch_ParameterisesText(t *testing.T) {
	sql, args := Search("Red'; DROP TABLE products;--", 20)

	assert.NotContains(t, sql, "DROP TABLE")
	assert.Equal(t, []any{"%Red'; DROP TABLE products;--%", 20}, args)
	assert.Contains(t, sql, "p.title ILIKE $1")
	assert.Contains(t, sql, "LIMIT $2")
	assert.Contains(t, sql, visible)
}

func TestByCategory(t *testing.T) {
	tests := []struct {
		name      string
		filter    CategoryFilter
		wantOrder string
		wantArgs  int
	}{
		{
			name:      "lowest price",
			filter:    CategoryFilter{Categories: []string{"men", "shirt"}, Sort: SortLowest, Limit: 10},
			wantOrder: "ORDER BY " + actualPrice + " ASC",
			wantArgs:  3,
		},
		{
			name:      "highest price",
			filter:    CategoryFilter{Categories: []string{"men"}, Sort: SortHighest, Limit: 10},
			wantOrder: "ORDER BY " + actualPrice + " DESC",
			wantArgs:  3,
		},
		{
			name:      "default newest without categories",
			filter:    CategoryFilter{Limit: 10},
			wantOrder: "ORDER BY p.created_at DESC",
			wantArgs:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := ByCategory(tt.filter)

			assert.Contains(t, sql, tt.wantOrder)
			assert.Len(t, args, tt.wantArgs)
			if len(tt.filter.Categories) > 0 {
				assert.Contains(t, sql, "p.categories @> $1")
				assert.Equal(t, tt.filter.Categories, args[0])
			}
		})
	}
}

func TestCountByCategory_MatchesListingFilter(t *testing.T) {
	f := CategoryFilter{Categories: []string{"women"}}
	sql, args := CountByCategory(f)

	assert.True(t, strings.HasPrefix(sql, "SELECT COUNT(*)"))
	assert.Equal(t, []any{[]string{"women"}}, args)
}

func TestHomeCarousel(t *testing.T) {
	tests := []struct {
		kind Carousel
		want string
	}{
		{CarouselNewest, "ORDER BY v.created_at DESC"},
		{CarouselTopSelling, "ORDER BY p.sold DESC"},
		{CarouselTopRated, "ORDER BY p.rating_average DESC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			sql, args := HomeCarousel(tt.kind, 6)
			assert.Contains(t, sql, tt.want)
			assert.Equal(t, []any{6}, args)
		})
	}
}

func TestRelated_ExcludesViewedVariation(t *testing.T) {
	vid := uuid.New()
	sql, args := Related([]string{"men"}, vid, 5)

	assert.Contains(t, sql, "v.id <> $2")
	assert.Equal(t, []any{[]string{"men"}, vid, 5}, args)
}

func TestManageProducts(t *testing.T) {
	seller := uuid.New()

	t.Run("search wins over category", func(t *testing.T) {
		sql, args := ManageProducts(ManageFilter{SellerID: &seller, Search: "shoe", Category: "men", Limit: 10})
		assert.Contains(t, sql, "p.seller_id = $1")
		assert.Contains(t, sql, "p.title ILIKE $2")
		assert.NotContains(t, sql, "ANY(p.categories)")
		assert.Equal(t, []any{seller, "%shoe%", 10, 0}, args)
	})

	t.Run("category all is no filter", func(t *testing.T) {
		sql, args := ManageProducts(ManageFilter{Category: "all", Limit: 10, Offset: 20})
		assert.NotContains(t, sql, "p.seller_id = $")
		assert.NotContains(t, sql, "ANY(p.categories)")
		assert.Equal(t, []any{10, 20}, args)
	})
}

func TestCartLines(t *testing.T) {
	customer := uuid.New()

	sql, args := CartLines(customer, true)
	assert.Contains(t, sql, purchasable)
	assert.Equal(t, []any{customer}, args)

	sql, _ = CartLines(customer, false)
	assert.NotContains(t, sql, purchasable)
}

func TestCartLine_Purchasable(t *testing.T) {
	line := CartLine{ProductStatus: "active", VariationStatus: "active", Stock: "in", Available: 2, Quantity: 2}
	assert.True(t, line.Purchasable())

	line.Quantity = 3
	assert.False(t, line.Purchasable())
	assert.True(t, line.Listed())

	line.ProductStatus = "inactive"
	assert.False(t, line.Listed())
	line.ProductStatus = "active"

	line.Quantity = 1
	line.VariationStatus = "inactive"
	assert.False(t, line.Purchasable())
}

func TestCartLine_DestMatchesColumns(t *testing.T) {
	var l CartLine
	assert.Len(t, l.Dest(), strings.Count(lineColumns, ",")-countInner(lineColumns)+1)
}

func TestOrderItems(t *testing.T) {
	seller := uuid.New()
	sql, args := OrderItems(OrderItemFilter{SellerID: &seller, Status: "placed", Limit: 10})

	assert.Contains(t, sql, "i.seller_id = $1")
	assert.Contains(t, sql, "i.item_status = $2")
	assert.Equal(t, []any{seller, "placed", 10, 0}, args)
}

// countInner counts commas that sit inside parentheses.
func countInner(s string) int {
	depth, n := 0, 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth > 0 {
				n++
			}
		}
	}
	return n
}

func TestProductCard_DestMatchesColumns(t *testing.T) {
	var c ProductCard
	assert.Len(t, c.Dest(), strings.Count(cardColumns, ",")-countInner(cardColumns)+1)

	var s SoldProduct
	assert.Len(t, s.Dest(), 7)
}
