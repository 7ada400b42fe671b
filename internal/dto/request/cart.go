package request

type AddToCartRequest struct {
	ProductID   string `json:"productID" validate:"required,uuid"`
	VariationID string `json:"variationID" validate:"required,uuid"`
	ListingID   string `json:"listingID" validate:"required"`
	Quantity    int    `json:"quantity" validate:"omitempty,gte=1"`
}

type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

type WishlistRequest struct {
	ProductID   string `json:"productID" validate:"required,uuid"`
	VariationID string `json:"variationID" validate:"required,uuid"`
	ListingID   string `json:"listingID" validate:"required"`
}
