package response

import (
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"

	"github.com/shopspring/decimal"
)

type CheckoutResponse struct {
	OrderItems     []query.CartLine `json:"orderItems"`
	TotalAmount    decimal.Decimal  `json:"totalAmount"`
	ClientSecret   string           `json:"clientSecret"`
	OrderPaymentID string           `json:"orderPaymentID"`
}

type PlacedOrderResponse struct {
	OrderID       string               `json:"orderID"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	Items         []OrderItemResponse  `json:"items"`
}

type OrderItemResponse struct {
	ID             string            `json:"_id"`
	OrderID        string            `json:"orderID"`
	TrackingID     string            `json:"trackingID"`
	ProductID      string            `json:"productID"`
	ListingID      string            `json:"listingID"`
	VariationID    string            `json:"variationID"`
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	Image          string            `json:"image"`
	Brand          string            `json:"brand"`
	SKU            string            `json:"sku"`
	StoreName      string            `json:"storeName"`
	CustomerEmail  string            `json:"customerEmail,omitempty"`
	Quantity       int               `json:"quantity"`
	SellingPrice   decimal.Decimal   `json:"sellingPrice"`
	BaseAmount     decimal.Decimal   `json:"baseAmount"`
	ShippingCharge decimal.Decimal   `json:"shippingCharge"`
	ItemStatus     entity.ItemStatus `json:"itemStatus"`
	OrderAt        time.Time         `json:"orderAT"`
}

func OrderItemToResponse(i *entity.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:             i.ID.String(),
		OrderID:        i.OrderID,
		TrackingID:     i.TrackingID,
		ProductID:      i.ProductID.String(),
		ListingID:      i.ListingID,
		VariationID:    i.VariationID.String(),
		Title:          i.Title,
		Slug:           i.Slug,
		Image:          i.Image,
		Brand:          i.Brand,
		SKU:            i.SKU,
		StoreName:      i.StoreName,
		CustomerEmail:  i.CustomerEmail,
		Quantity:       i.Quantity,
		SellingPrice:   i.SellingPrice,
		BaseAmount:     i.BaseAmount,
		ShippingCharge: i.ShippingCharge,
		ItemStatus:     i.ItemStatus,
		OrderAt:        i.CreatedAt,
	}
}

func OrderItemsToResponse(items []*entity.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, len(items))
	for i, item := range items {
		out[i] = OrderItemToResponse(item)
	}
	return out
}

func PlacedOrderToResponse(o *entity.Order) PlacedOrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = OrderItemToResponse(&o.Items[i])
		items[i].OrderID = o.OrderID
	}

	return PlacedOrderResponse{
		OrderID:       o.OrderID,
		PaymentStatus: o.PaymentStatus,
		TotalAmount:   o.TotalAmount,
		Items:         items,
	}
}
