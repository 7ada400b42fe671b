package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderState string

const (
	OrderStateCart   OrderState = "CART"
	OrderStateSingle OrderState = "SINGLE"
)

type ItemStatus string

const (
	ItemPlaced    ItemStatus = "placed"
	ItemShipped   ItemStatus = "shipped"
	ItemCanceled  ItemStatus = "canceled"
	ItemDispatch  ItemStatus = "dispatch"
	ItemRefunded  ItemStatus = "refunded"
	ItemCompleted ItemStatus = "completed"
)

type PaymentMode string

const (
	PaymentModeCard PaymentMode = "card"
	PaymentModeCOD  PaymentMode = "cod"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPending PaymentStatus = "pending"
)

type Order struct {
	Base
	OrderID         string          `db:"order_id"`
	OrderPaymentID  string          `db:"order_payment_id"`
	PaymentIntentID string          `db:"payment_intent_id"`
	PaymentMethodID string          `db:"payment_method_id"`
	CustomerID      uuid.UUID       `db:"customer_id"`
	CustomerEmail   string          `db:"customer_email"`
	State           OrderState      `db:"state"`
	PaymentMode     PaymentMode     `db:"payment_mode"`
	PaymentStatus   PaymentStatus   `db:"payment_status"`
	ShippingAddress Address         `db:"shipping_address"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Items           []OrderItem     `db:"-"`
}

type OrderItem struct {
	Base
	OrderRowID     uuid.UUID       `db:"order_row_id"`
	TrackingID     string          `db:"tracking_id"`
	ProductID      uuid.UUID       `db:"product_id"`
	ListingID      string          `db:"listing_id"`
	VariationID    uuid.UUID       `db:"variation_id"`
	CartItemID     *uuid.UUID      `db:"-"`
	Title          string          `db:"title"`
	Slug           string          `db:"slug"`
	Image          string          `db:"image"`
	Brand          string          `db:"brand"`
	SKU            string          `db:"sku"`
	SellerID       uuid.UUID       `db:"seller_id"`
	SellerEmail    string          `db:"seller_email"`
	StoreName      string          `db:"store_name"`
	Quantity       int             `db:"quantity"`
	SellingPrice   decimal.Decimal `db:"selling_price"`
	BaseAmount     decimal.Decimal `db:"base_amount"`
	ShippingCharge decimal.Decimal `db:"shipping_charge"`
	ItemStatus     ItemStatus      `db:"item_status"`

	// filled on reads joined with orders
	OrderID       string    `db:"order_id"`
	CustomerID    uuid.UUID `db:"customer_id"`
	CustomerEmail string    `db:"customer_email"`
}
