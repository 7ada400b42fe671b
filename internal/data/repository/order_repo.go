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

// ItemTransition moves one order item between statuses. Exactly one of
// SellerID or CustomerID scopes the item to its owner.
type ItemTransition struct {
	ItemID       uuid.UUID
	SellerID     *uuid.UUID
	CustomerID   *uuid.UUID
	From         []entity.ItemStatus
	To           entity.ItemStatus
	RestoreStock bool
}

type OrderRepository interface {
	Place(ctx context.Context, order *entity.Order) error
	FindItem(ctx context.Context, itemID uuid.UUID) (*entity.OrderItem, error)
	FindItems(ctx context.Context, filter query.OrderItemFilter) ([]*entity.OrderItem, error)
	CountItems(ctx context.Context, filter query.OrderItemFilter) (int64, error)
	TransitionItem(ctx context.Context, t ItemTransition) error
	HasCompletedItem(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const decrementStock = `
	UPDATE variations
	SET available = available - $3,
	    stock = CASE WHEN available - $3 > 0 THEN 'in' ELSE 'out' END,
	    updated_at = NOW()
	WHERE id = $1 AND product_id = $2 AND status = 'active' AND available >= $3
`

const restoreStock = `
	UPDATE variations
	SET available = available + $3,
	    stock = CASE WHEN available + $3 > 0 THEN 'in' ELSE 'out' END,
	    updated_at = NOW()
	WHERE id = $1 AND product_id = $2
`

// Place stores a paid order. In one transaction it consumes the payment
// record, inserts the order and its items, decrements the stock of every
// purchased variation, bumps sales counters and, for cart orders, removes the
// purchased cart lines. A variation without enough units aborts the whole
// order with ErrInsufficientStock; a payment record already consumed aborts
// it with ErrPaymentUsed.
func (r *orderRepository) Place(ctx context.Context, order *entity.Order) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE payments SET status = 'consumed', updated_at = NOW()
			 WHERE order_payment_id = $1 AND customer_id = $2 AND status = 'created'`,
			order.OrderPaymentID, order.CustomerID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrPaymentUsed
		}

		if err := insertOrder(ctx, tx, order); err != nil {
			return err
		}

		variationIDs := make([]uuid.UUID, 0, len(order.Items))
		for i := range order.Items {
			item := &order.Items[i]

			result, err := tx.Exec(ctx, decrementStock, item.VariationID, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if result.RowsAffected() == 0 {
				return fmt.Errorf("variation %s: %w", item.VariationID.String(), ErrInsufficientStock)
			}

			item.OrderRowID = order.ID
			if err := insertOrderItem(ctx, tx, item); err != nil {
				return err
			}

			if _, err := tx.Exec(ctx,
				`UPDATE products SET sold = sold + $2 WHERE id = $1`, item.ProductID, item.Quantity); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`UPDATE users SET total_sold = total_sold + $2 WHERE id = $1`, item.SellerID, item.Quantity); err != nil {
				return err
			}

			variationIDs = append(variationIDs, item.VariationID)
		}

		if order.State == entity.OrderStateCart {
			_, err := tx.Exec(ctx,
				`DELETE FROM cart_items WHERE customer_id = $1 AND variation_id = ANY($2)`,
				order.CustomerID, variationIDs)
			return err
		}

		return nil
	})

	if errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrPaymentUsed) {
		r.log.Warn("Order rejected",
			zap.Error(err),
			zap.String("order_id", order.OrderID),
		)
		return err
	}
	if err != nil {
		r.log.Error("Failed to place order",
			zap.Error(err),
			zap.String("order_id", order.OrderID),
			zap.String("customer_id", order.CustomerID.String()),
		)
		return fmt.Errorf("place order %s: %w", order.OrderID, err)
	}

	return nil
}

func insertOrder(ctx context.Context, q database.Querier, o *entity.Order) error {
	stmt := `
		INSERT INTO orders (id, order_id, order_payment_id, payment_intent_id, payment_method_id,
		                    customer_id, customer_email, state, payment_mode, payment_status,
		                    shipping_address, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := q.Exec(ctx, stmt,
		o.ID,
		o.OrderID,
		o.OrderPaymentID,
		o.PaymentIntentID,
		o.PaymentMethodID,
		o.CustomerID,
		o.CustomerEmail,
		o.State,
		o.PaymentMode,
		o.PaymentStatus,
		o.ShippingAddress,
		o.TotalAmount,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.OrderID, err)
	}

	return nil
}

func insertOrderItem(ctx context.Context, q database.Querier, i *entity.OrderItem) error {
	stmt := `
		INSERT INTO order_items (id, order_row_id, tracking_id, product_id, listing_id, variation_id,
		                         title, slug, image, brand, sku, seller_id, seller_email, store_name,
		                         quantity, selling_price, base_amount, shipping_charge, item_status,
		                         created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		        $19, $20, $21)
	`

	_, err := q.Exec(ctx, stmt,
		i.ID,
		i.OrderRowID,
		i.TrackingID,
		i.ProductID,
		i.ListingID,
		i.VariationID,
		i.Title,
		i.Slug,
		i.Image,
		i.Brand,
		i.SKU,
		i.SellerID,
		i.SellerEmail,
		i.StoreName,
		i.Quantity,
		i.SellingPrice,
		i.BaseAmount,
		i.ShippingCharge,
		i.ItemStatus,
		i.CreatedAt,
		i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order item %s: %w", i.TrackingID, err)
	}

	return nil
}

func scanOrderItem(row pgx.Row) (*entity.OrderItem, error) {
	var i entity.OrderItem
	err := row.Scan(
		&i.ID,
		&i.OrderRowID,
		&i.TrackingID,
		&i.ProductID,
		&i.ListingID,
		&i.VariationID,
		&i.Title,
		&i.Slug,
		&i.Image,
		&i.Brand,
		&i.SKU,
		&i.SellerID,
		&i.SellerEmail,
		&i.StoreName,
		&i.Quantity,
		&i.SellingPrice,
		&i.BaseAmount,
		&i.ShippingCharge,
		&i.ItemStatus,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.OrderID,
		&i.CustomerID,
		&i.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *orderRepository) FindItem(ctx context.Context, itemID uuid.UUID) (*entity.OrderItem, error) {
	stmt := `SELECT ` + query.OrderItemColumns() + `
		FROM order_items i JOIN orders o ON o.id = i.order_row_id
		WHERE i.id = $1`

	item, err := scanOrderItem(r.db.QueryRow(ctx, stmt, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order item",
			zap.Error(err),
			zap.String("item_id", itemID.String()),
		)
		return nil, fmt.Errorf("find order item %s: %w", itemID.String(), err)
	}

	return item, nil
}

func (r *orderRepository) FindItems(ctx context.Context, filter query.OrderItemFilter) ([]*entity.OrderItem, error) {
	sql, args := query.OrderItems(filter)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to find order items", zap.Error(err))
		return nil, fmt.Errorf("find order items: %w", err)
	}
	defer rows.Close()

	items := []*entity.OrderItem{}
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			r.log.Error("Failed to scan order item row", zap.Error(err))
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *orderRepository) CountItems(ctx context.Context, filter query.OrderItemFilter) (int64, error) {
	sql, args := query.CountOrderItems(filter)

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count order items", zap.Error(err))
		return 0, fmt.Errorf("count order items: %w", err)
	}

	return count, nil
}

// TransitionItem changes the item status only when it is currently in one of
// t.From, otherwise ErrNotFound. With RestoreStock the purchased units go back
// to the variation and the sales counters in the same transaction.
func (r *orderRepository) TransitionItem(ctx context.Context, t ItemTransition) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		from := make([]string, len(t.From))
		for i, s := range t.From {
			from[i] = string(s)
		}

		var (
			productID, variationID, sellerID uuid.UUID
			quantity                         int
		)
		err := tx.QueryRow(ctx, `
			UPDATE order_items i
			SET item_status = $2, updated_at = NOW()
			FROM orders o
			WHERE i.id = $1 AND o.id = i.order_row_id
			  AND i.item_status = ANY($3)
			  AND ($4::uuid IS NULL OR i.seller_id = $4)
			  AND ($5::uuid IS NULL OR o.customer_id = $5)
			RETURNING i.product_id, i.variation_id, i.seller_id, i.quantity`,
			t.ItemID, t.To, from, t.SellerID, t.CustomerID,
		).Scan(&productID, &variationID, &sellerID, &quantity)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if !t.RestoreStock {
			return nil
		}

		if _, err := tx.Exec(ctx, restoreStock, variationID, productID, quantity); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE products SET sold = GREATEST(sold - $2, 0) WHERE id = $1`, productID, quantity); err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE users SET total_sold = GREATEST(total_sold - $2, 0) WHERE id = $1`, sellerID, quantity)
		return err
	})

	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		r.log.Error("Failed to change order item status",
			zap.Error(err),
			zap.String("item_id", t.ItemID.String()),
			zap.String("status", string(t.To)),
		)
		return fmt.Errorf("change status of order item %s: %w", t.ItemID.String(), err)
	}

	return nil
}

func (r *orderRepository) HasCompletedItem(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	stmt := `
		SELECT EXISTS (
			SELECT 1 FROM order_items i JOIN orders o ON o.id = i.order_row_id
			WHERE o.customer_id = $1 AND i.product_id = $2 AND i.item_status = 'completed'
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, stmt, customerID, productID).Scan(&exists); err != nil {
		r.log.Error("Failed to check completed order item",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("product_id", productID.String()),
		)
		return false, fmt.Errorf("check completed item: %w", err)
	}

	return exists, nil
}
