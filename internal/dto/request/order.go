package request

type SetOrderRequest struct {
	State string `json:"state" validate:"required,oneof=CART SINGLE"`
}

type SingleCheckoutRequest struct {
	ProductID   string `json:"productID" validate:"required,uuid"`
	VariationID string `json:"variationID" validate:"required,uuid"`
	ListingID   string `json:"listingID" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
}

type ConfirmOrderRequest struct {
	OrderPaymentID  string `json:"orderPaymentID" validate:"required"`
	PaymentIntentID string `json:"paymentIntentID" validate:"required"`
	PaymentMethodID string `json:"paymentMethodID" validate:"required"`
}

type SinglePurchaseRequest struct {
	ProductID       string `json:"productID" validate:"required,uuid"`
	VariationID     string `json:"variationID" validate:"required,uuid"`
	ListingID       string `json:"listingID" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,gte=1"`
	PaymentIntentID string `json:"paymentIntentID" validate:"required"`
	PaymentMethodID string `json:"paymentMethodID" validate:"required"`
	OrderPaymentID  string `json:"orderPaymentID" validate:"required"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email"`
	State           string `json:"state" validate:"required,oneof=SINGLE"`
}

type ItemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=dispatch shipped completed canceled refunded"`
}

type OrderListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=placed dispatch shipped completed canceled refunded"`
}
