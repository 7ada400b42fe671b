package adaptor

import (
	"net/http"

	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/usecase"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SellerHandler struct {
	service usecase.SellerService
	log     *zap.Logger
}

func NewSellerHandler(service usecase.SellerService, log *zap.Logger) *SellerHandler {
	return &SellerHandler{
		service: service,
		log:     log.With(zap.String("handler", "seller")),
	}
}

// CreateListing handles POST /api/v1/seller/products
func (h *SellerHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req request.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.CreateListing(r.Context(), sellerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create listing")
		return
	}

	utils.ResponseCreated(w, "Product listed for review", res)
}

// UpdateQueuedListing handles PUT /api/v1/seller/products/queue/{listingID}
func (h *SellerHandler) UpdateQueuedListing(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	listingID := chi.URLParam(r, "listingID")

	var req request.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.UpdateQueuedListing(r.Context(), sellerID, listingID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update queued listing")
		return
	}

	utils.ResponseSuccess(w, "Listing updated", res)
}

// ManageProducts handles GET /api/v1/seller/products
func (h *SellerHandler) ManageProducts(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := request.ManageProductsRequest{
		PaginatedRequest: paginated(r),
		Search:           query.Get("search"),
		Category:         query.Get("category"),
	}

	res, err := h.service.ManageProducts(r.Context(), sellerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "manage products")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// UpdateProduct handles PUT /api/v1/seller/products/{productID}
func (h *SellerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	productID, ok := urlUUID(w, r, "productID")
	if !ok {
		return
	}

	var req request.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateProduct(r.Context(), sellerID, productID, &req); err != nil {
		handleServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated", nil)
}

// PublishProduct handles PUT /api/v1/seller/products/{productID}/publish
func (h *SellerHandler) PublishProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	productID, ok := urlUUID(w, r, "productID")
	if !ok {
		return
	}

	if err := h.service.PublishProduct(r.Context(), sellerID, productID); err != nil {
		handleServiceError(w, h.log, err, "publish product")
		return
	}

	utils.ResponseSuccess(w, "Product published", nil)
}

// DeleteProduct handles DELETE /api/v1/seller/products/{productID}
func (h *SellerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	productID, ok := urlUUID(w, r, "productID")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), sellerID, productID); err != nil {
		handleServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted", nil)
}

// AddVariation handles POST /api/v1/seller/products/{productID}/variations
func (h *SellerHandler) AddVariation(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	productID, ok := urlUUID(w, r, "productID")
	if !ok {
		return
	}

	var req request.VariationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	variation, err := h.service.AddVariation(r.Context(), sellerID, productID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add variation")
		return
	}

	utils.ResponseCreated(w, "Variation added", variation)
}

// UpdateVariation handles PUT /api/v1/seller/products/{productID}/variations/{variationID}
func (h *SellerHandler) UpdateVariation(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	productID, ok := urlUUID(w, r, "productID")
	if !ok {
		return
	}
	variationID, ok := urlUUID(w, r, "variationID")
	if !ok {
		return
	}

	var req request.VariationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateVariation(r.Context(), sellerID, productID, variationID, &req); err != nil {
		handleServiceError(w, h.log, err, "update variation")
		return
	}

	utils.ResponseSuccess(w, "Variation updated", nil)
}

// DeleteVariation handles DELETE /api/v1/seller/products/{productID}/variations/{variationID}
func (h *SellerHandler) DeleteVariation(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	productID, ok := urlUUID(w, r, "productID")
	if !ok {
		return
	}
	variationID, ok := urlUUID(w, r, "variationID")
	if !ok {
		return
	}

	if err := h.service.DeleteVariation(r.Context(), sellerID, productID, variationID); err != nil {
		handleServiceError(w, h.log, err, "delete variation")
		return
	}

	utils.ResponseSuccess(w, "Variation deleted", nil)
}

// UpdateStock handles PUT /api/v1/seller/products/{productID}/variations/{variationID}/stock
func (h *SellerHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	productID, ok := urlUUID(w, r, "productID")
	if !ok {
		return
	}
	variationID, ok := urlUUID(w, r, "variationID")
	if !ok {
		return
	}

	var req request.StockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateStock(r.Context(), sellerID, productID, variationID, req.Available); err != nil {
		handleServiceError(w, h.log, err, "update stock")
		return
	}

	utils.ResponseSuccess(w, "Stock updated", nil)
}

// Dashboard handles GET /api/v1/seller/dashboard
func (h *SellerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	res, err := h.service.Dashboard(r.Context(), sellerID)
	if err != nil {
		handleServiceError(w, h.log, err, "seller dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}
