package adaptor

import (
	"net/http"

	"github.com/mroy35034/woo-com-server/internal/usecase"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// Dashboard handles GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	req := paginated(r)

	res, err := h.service.Dashboard(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "admin dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}

// TakeProduct handles POST /api/v1/admin/queue/{listingID}/take
func (h *AdminHandler) TakeProduct(w http.ResponseWriter, r *http.Request) {
	adminID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	product, err := h.service.TakeProduct(r.Context(), adminID, chi.URLParam(r, "listingID"))
	if err != nil {
		handleServiceError(w, h.log, err, "take product")
		return
	}

	utils.ResponseSuccess(w, "Product taken", product)
}

// VerifySeller handles PUT /api/v1/admin/sellers/{userID}/verify
func (h *AdminHandler) VerifySeller(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := urlUUID(w, r, "userID")
	if !ok {
		return
	}

	if err := h.service.VerifySeller(r.Context(), sellerID); err != nil {
		handleServiceError(w, h.log, err, "verify seller")
		return
	}

	utils.ResponseSuccess(w, "Seller verified", nil)
}

// Overview handles GET /api/v1/admin/overview
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Overview(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "admin overview")
		return
	}

	utils.ResponseSuccess(w, "success", res)
}
