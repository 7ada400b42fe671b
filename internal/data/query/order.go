package query

import (
	"github.com/google/uuid"
)

const orderItemColumns = `i.id, i.order_row_id, i.tracking_id, i.product_id, i.listing_id, i.variation_id,
	i.title, i.slug, i.image, i.brand, i.sku, i.seller_id, i.seller_email, i.store_name,
	i.quantity, i.selling_price, i.base_amount, i.shipping_charge, i.item_status,
	i.created_at, i.updated_at, o.order_id, o.customer_id, o.customer_email`

// OrderItemColumns exposes the joined item column list to the order repository.
func OrderItemColumns() string { return orderItemColumns }

type OrderItemFilter struct {
	CustomerID *uuid.UUID
	SellerID   *uuid.UUID
	Status     string
	Limit      int
	Offset     int
}

func orderItemConds(b *Builder, f OrderItemFilter) []string {
	var conds []string
	if f.CustomerID != nil {
		conds = append(conds, "o.customer_id = "+b.Arg(*f.CustomerID))
	}
	if f.SellerID != nil {
		conds = append(conds, "i.seller_id = "+b.Arg(*f.SellerID))
	}
	if f.Status != "" {
		conds = append(conds, "i.item_status = "+b.Arg(f.Status))
	}
	return conds
}

// OrderItems lists order lines newest first, joined with their order.
func OrderItems(f OrderItemFilter) (string, []any) {
	b := &Builder{}
	b.Write("SELECT ", orderItemColumns,
		" FROM order_items i JOIN orders o ON o.id = i.order_row_id",
		where(orderItemConds(b, f)),
		" ORDER BY i.created_at DESC LIMIT ", b.Arg(f.Limit), " OFFSET ", b.Arg(f.Offset))
	return b.Build()
}

func CountOrderItems(f OrderItemFilter) (string, []any) {
	b := &Builder{}
	b.Write("SELECT COUNT(*) FROM order_items i JOIN orders o ON o.id = i.order_row_id",
		where(orderItemConds(b, f)))
	return b.Build()
}
