package adaptor

import (
	"net/http"

	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/usecase"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	reviews usecase.ReviewService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, reviews usecase.ReviewService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		reviews: reviews,
		log:     log.With(zap.String("handler", "product")),
	}
}

// Search handles GET /api/v1/product/search?q=
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleServiceError(w, h.log, err, "search products")
		return
	}

	if len(cards) == 0 {
		utils.ResponseNoContent(w)
		return
	}

	utils.ResponseSuccess(w, "success", cards)
}

// ByCategory handles GET /api/v1/product/category
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.CategoryRequest{
		PaginatedRequest: paginated(r),
		Categories:       utils.SplitCSV(query.Get("categories")),
		Sort:             query.Get("sort"),
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	res, err := h.service.ByCategory(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list products by category")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Detail handles GET /api/v1/product/{productID}/variation/{variationID}
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlUUID(w, r, "productID")
	if !ok {
		return
	}
	variationID, ok := urlUUID(w, r, "variationID")
	if !ok {
		return
	}

	res, err := h.service.Detail(r.Context(), productID, variationID, viewer(r))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch product detail")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Home handles GET /api/v1/product/store/home?newest=N
func (h *ProductHandler) Home(w http.ResponseWriter, r *http.Request) {
	newest := utils.ParseInt(r.URL.Query().Get("newest"), 6)

	res, err := h.service.Home(r.Context(), newest)
	if err != nil {
		handleServiceError(w, h.log, err, "fetch store home")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Count handles GET /api/v1/product/count?seller=<uuid>
func (h *ProductHandler) Count(w http.ResponseWriter, r *http.Request) {
	seller := r.URL.Query().Get("seller")
	if seller == "" {
		utils.ResponseBadRequest(w, "Required seller id", nil)
		return
	}

	res, err := h.service.Count(r.Context(), seller)
	if err != nil {
		handleServiceError(w, h.log, err, "count products")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// Reviews handles GET /api/v1/product/{productID}/reviews
func (h *ProductHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlUUID(w, r, "productID")
	if !ok {
		return
	}

	req := paginated(r)
	res, err := h.reviews.ProductReviews(r.Context(), productID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list product reviews")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}
