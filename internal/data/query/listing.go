package query

// productColumns is the full listing row, in the order the product
// repository scans it.
const productColumns = `p.id, p.listing_id, p.title, p.slug, p.categories, p.brand,
	p.manufacturer, p.packaged, p.shipping, p.rating, p.rating_average, p.keywords,
	p.meta_description, p.description, p.highlights, p.specification, p.images,
	p.seller_id, p.seller_email, p.store_name, p.save_as, p.status, p.views, p.score,
	p.sold, p.is_verified, p.verified_by, p.verifier_email, p.verified_at,
	p.created_at, p.updated_at`

const variationColumns = `v.id, v.product_id, v.sku, v.title, v.slug, v.price, v.selling_price,
	v.available, v.stock, v.status, v.attributes, v.images, v.created_at, v.updated_at`

// ProductColumns exposes the listing column list to repositories.
func ProductColumns() string { return productColumns }

func VariationColumns() string { return variationColumns }

// ProductByID loads one listing row.
func ProductByID(id any) (string, []any) {
	b := &Builder{}
	b.Write("SELECT ", productColumns, " FROM products p WHERE p.id = ", b.Arg(id))
	return b.Build()
}

// VariationsOf loads the variations of the given listings.
func VariationsOf(productIDs any) (string, []any) {
	b := &Builder{}
	b.Write("SELECT ", variationColumns, " FROM variations v WHERE v.product_id = ANY(", b.Arg(productIDs), ")",
		" ORDER BY v.created_at")
	return b.Build()
}

// Drafts lists the seller's promoted but unpublished listings.
func Drafts(sellerID any) (string, []any) {
	b := &Builder{}
	b.Write("SELECT ", productColumns, " FROM products p WHERE p.seller_id = ", b.Arg(sellerID),
		" AND p.save_as = 'draft' ORDER BY p.created_at DESC")
	return b.Build()
}
