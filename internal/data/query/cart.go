package query

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a cart row joined with the live listing and variation.
type CartLine struct {
	CartItemID       uuid.UUID       `json:"_id"`
	ProductID        uuid.UUID       `json:"productID"`
	ListingID        string          `json:"listingID"`
	VariationID      uuid.UUID       `json:"variationID"`
	Quantity         int             `json:"quantity"`
	AddedAt          time.Time       `json:"addedAt"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	SKU              string          `json:"sku"`
	Brand            string          `json:"brand"`
	Image            string          `json:"image"`
	Price            decimal.Decimal `json:"price"`
	SellingPrice     decimal.Decimal `json:"sellingPrice"`
	Available        int             `json:"available"`
	Stock            string          `json:"stock"`
	VariationStatus  string          `json:"-"`
	ProductStatus    string          `json:"-"`
	IsFreeShipping   bool            `json:"isFreeShipping"`
	VolumetricWeight float64         `json:"volumetricWeight"`
	SellerID         uuid.UUID       `json:"sellerID"`
	SellerEmail      string          `json:"sellerEmail"`
	StoreName        string          `json:"storeName"`

	Attributes map[string]string `json:"attributes"`

	// computed by the service
	BaseAmount     decimal.Decimal `json:"baseAmount"`
	SavingAmount   decimal.Decimal `json:"savingAmount"`
	ShippingCharge decimal.Decimal `json:"shippingCharge"`
}

const lineColumns = `c.id, p.id, p.listing_id, v.id, c.quantity, c.added_at,
	v.title, v.slug, v.sku, p.brand, COALESCE(v.images[1], p.images[1], ''), v.attributes,
	v.price, v.selling_price, v.available, v.stock, v.status, p.status,
	COALESCE((p.shipping->>'isFree')::boolean, false),
	COALESCE((p.packaged->>'volumetricWeight')::float8, 0),
	p.seller_id, p.seller_email, p.store_name`

func (l *CartLine) Dest() []any {
	return []any{
		&l.CartItemID, &l.ProductID, &l.ListingID, &l.VariationID, &l.Quantity, &l.AddedAt,
		&l.Title, &l.Slug, &l.SKU, &l.Brand, &l.Image, &l.Attributes,
		&l.Price, &l.SellingPrice, &l.Available, &l.Stock, &l.VariationStatus, &l.ProductStatus,
		&l.IsFreeShipping, &l.VolumetricWeight,
		&l.SellerID, &l.SellerEmail, &l.StoreName,
	}
}

// Listed reports whether the product and variation are live and in stock.
func (l *CartLine) Listed() bool {
	return l.ProductStatus == "active" && l.VariationStatus == "active" && l.Stock == "in"
}

// Purchasable reports whether the line can be bought as it stands.
func (l *CartLine) Purchasable() bool {
	return l.Listed() && l.Available >= l.Quantity
}

// purchasable keeps lines whose variation is active and holds enough units.
const purchasable = "p.status = 'active' AND v.status = 'active' AND v.stock = 'in' AND v.available >= c.quantity"

// CartLines shapes a buyer's cart. With purchasableOnly set, lines that could
// not be bought right now are left out.
func CartLines(customerID uuid.UUID, purchasableOnly bool) (string, []any) {
	b := &Builder{}
	b.Write("SELECT ", lineColumns,
		" FROM cart_items c",
		" JOIN products p ON p.id = c.product_id",
		" JOIN variations v ON v.id = c.variation_id AND v.product_id = p.id",
		" WHERE c.customer_id = ", b.Arg(customerID))
	if purchasableOnly {
		b.Write(" AND ", purchasable)
	}
	b.Write(" ORDER BY c.added_at DESC")
	return b.Build()
}

// SingleLine shapes one (product, variation, quantity) purchase the same way a
// cart line is shaped. The cart item id comes back as the nil uuid.
func SingleLine(productID, variationID uuid.UUID, quantity int) (string, []any) {
	b := &Builder{}
	qty := b.Arg(quantity)
	cols := `'00000000-0000-0000-0000-000000000000'::uuid, p.id, p.listing_id, v.id, ` + qty + `::int, now(),
	v.title, v.slug, v.sku, p.brand, COALESCE(v.images[1], p.images[1], ''), v.attributes,
	v.price, v.selling_price, v.available, v.stock, v.status, p.status,
	COALESCE((p.shipping->>'isFree')::boolean, false),
	COALESCE((p.packaged->>'volumetricWeight')::float8, 0),
	p.seller_id, p.seller_email, p.store_name`

	b.Write("SELECT ", cols,
		" FROM products p JOIN variations v ON v.product_id = p.id",
		" WHERE p.id = ", b.Arg(productID),
		" AND v.id = ", b.Arg(variationID))
	return b.Build()
}

// Wishlist lists the buyer's saved variations as product cards, whatever
// their current status.
func Wishlist(customerID uuid.UUID) (string, []any) {
	b := &Builder{}
	b.Write("SELECT ", cardColumns, cardFrom,
		" JOIN wishlist_items w ON w.variation_id = v.id",
		" WHERE w.customer_id = ", b.Arg(customerID),
		" ORDER BY w.added_at DESC")
	return b.Build()
}
