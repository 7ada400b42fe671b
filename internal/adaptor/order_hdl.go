package adaptor

import (
	"net/http"
	"strings"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/usecase"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

func sessionBuyer(w http.ResponseWriter, r *http.Request) (usecase.Buyer, bool) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized access")
		return usecase.Buyer{}, false
	}
	userID, ok := sessionUser(w, r)
	if !ok {
		return usecase.Buyer{}, false
	}
	return usecase.Buyer{ID: userID, Email: claims.Email}, true
}

// orderList reads paging and the optional status filter from the query string.
func orderList(w http.ResponseWriter, r *http.Request) (*request.OrderListRequest, bool) {
	req := &request.OrderListRequest{
		PaginatedRequest: paginated(r),
		Status:           r.URL.Query().Get("status"),
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return nil, false
	}
	return req, true
}

// Checkout handles POST /api/v1/order/set-order. The Authorization header
// carries the email the client believes is signed in.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	buyer, ok := sessionBuyer(w, r)
	if !ok {
		return
	}

	var req request.SetOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.State != string(entity.OrderStateCart) {
		utils.ResponseBadRequest(w, "Invalid order state", nil)
		return
	}

	claimedEmail := strings.TrimSpace(r.Header.Get("Authorization"))

	res, err := h.service.Checkout(r.Context(), buyer, claimedEmail)
	if err != nil {
		handleServiceError(w, h.log, err, "checkout")
		return
	}

	utils.ResponseSuccess(w, "Order created", res)
}

// SingleCheckout handles POST /api/v1/order/single-checkout
func (h *OrderHandler) SingleCheckout(w http.ResponseWriter, r *http.Request) {
	buyer, ok := sessionBuyer(w, r)
	if !ok {
		return
	}

	var req request.SingleCheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.SingleCheckout(r.Context(), buyer, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "single checkout")
		return
	}

	utils.ResponseSuccess(w, "Order created", res)
}

// ConfirmOrder handles POST /api/v1/order/confirm-order
func (h *OrderHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	buyer, ok := sessionBuyer(w, r)
	if !ok {
		return
	}

	var req request.ConfirmOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.ConfirmOrder(r.Context(), buyer, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm order")
		return
	}

	utils.ResponseCreated(w, "Order success.", res)
}

// SinglePurchase handles POST /api/v1/order/single-purchase
func (h *OrderHandler) SinglePurchase(w http.ResponseWriter, r *http.Request) {
	buyer, ok := sessionBuyer(w, r)
	if !ok {
		return
	}

	var req request.SinglePurchaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.SinglePurchase(r.Context(), buyer, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "single purchase")
		return
	}

	utils.ResponseCreated(w, "Order success.", res)
}

// MyOrders handles GET /api/v1/order/my-orders
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	req, ok := orderList(w, r)
	if !ok {
		return
	}

	res, err := h.service.MyOrders(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list my orders")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// CancelItem handles PUT /api/v1/order/items/{itemID}/cancel
func (h *OrderHandler) CancelItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	itemID, ok := urlUUID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.service.CancelItem(r.Context(), userID, itemID); err != nil {
		handleServiceError(w, h.log, err, "cancel order item")
		return
	}

	utils.ResponseSuccess(w, "Order canceled", nil)
}

// SellerOrders handles GET /api/v1/seller/orders
func (h *OrderHandler) SellerOrders(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	req, ok := orderList(w, r)
	if !ok {
		return
	}

	res, err := h.service.SellerOrders(r.Context(), sellerID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list seller orders")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// UpdateItemStatus handles PUT /api/v1/seller/orders/items/{itemID}/status
func (h *OrderHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	itemID, ok := urlUUID(w, r, "itemID")
	if !ok {
		return
	}

	var req request.ItemStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateItemStatus(r.Context(), sellerID, itemID, entity.ItemStatus(req.Status)); err != nil {
		handleServiceError(w, h.log, err, "update order item status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", nil)
}
