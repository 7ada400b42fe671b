package adaptor

import (
	"net/http"

	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/usecase"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "success", cart)
}

// AddToCart handles POST /api/v1/cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized access")
		return
	}
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req request.AddToCartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.AddToCart(r.Context(), userID, claims.Email, &req); err != nil {
		handleServiceError(w, h.log, err, "add to cart")
		return
	}

	utils.ResponseCreated(w, "Product has been added to your cart", nil)
}

// UpdateQuantity handles PUT /api/v1/cart/{cartItemID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	cartItemID, ok := urlUUID(w, r, "cartItemID")
	if !ok {
		return
	}

	var req request.UpdateCartQuantityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), userID, cartItemID, req.Quantity); err != nil {
		handleServiceError(w, h.log, err, "update cart quantity")
		return
	}

	utils.ResponseSuccess(w, "Quantity updated", nil)
}

// RemoveFromCart handles DELETE /api/v1/cart/{cartItemID}
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	cartItemID, ok := urlUUID(w, r, "cartItemID")
	if !ok {
		return
	}

	if err := h.service.RemoveFromCart(r.Context(), userID, cartItemID); err != nil {
		handleServiceError(w, h.log, err, "remove from cart")
		return
	}

	utils.ResponseSuccess(w, "Item removed from your cart", nil)
}

// GetWishlist handles GET /api/v1/wishlist
func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	items, err := h.service.GetWishlist(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get wishlist")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// AddToWishlist handles POST /api/v1/wishlist
func (h *CartHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req request.WishlistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.AddToWishlist(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "add to wishlist")
		return
	}

	utils.ResponseCreated(w, "Product added to your wishlist", nil)
}

// RemoveFromWishlist handles DELETE /api/v1/wishlist/{variationID}
func (h *CartHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	variationID, ok := urlUUID(w, r, "variationID")
	if !ok {
		return
	}

	if err := h.service.RemoveFromWishlist(r.Context(), userID, variationID); err != nil {
		handleServiceError(w, h.log, err, "remove from wishlist")
		return
	}

	utils.ResponseSuccess(w, "Product removed from your wishlist", nil)
}
