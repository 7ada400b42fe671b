package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/usecase"
	"github.com/mroy35034/woo-com-server/pkg/apperr"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Cart    *CartHandler
	Order   *OrderHandler
	Product *ProductHandler
	Seller  *SellerHandler
	Admin   *AdminHandler
	Review  *ReviewHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, config.JWT, log),
		User:    NewUserHandler(service.User, log),
		Cart:    NewCartHandler(service.Cart, log),
		Order:   NewOrderHandler(service.Order, log),
		Product: NewProductHandler(service.Product, service.Review, log),
		Seller:  NewSellerHandler(service.Seller, log),
		Admin:   NewAdminHandler(service.Admin, log),
		Review:  NewReviewHandler(service.Review, log),
	}
}

// decodeAndValidate reads the JSON body into req and answers 400 itself when
// the body is malformed or fails validation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// handleServiceError maps service errors to status codes. Anything without an
// apperr kind is an internal failure and its message stays in the log.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, apperr.ErrBadRequest):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, apperr.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, apperr.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, apperr.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, apperr.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, apperr.ErrPaymentRequired):
		log.Warn(operation+" failed - payment required", zap.Error(err))
		utils.ResponsePaymentRequired(w, errMsg)

	case errors.Is(err, apperr.ErrInternal):
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, errMsg)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// paginated reads page and per_page from the query string.
func paginated(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}
	return req
}

// urlUUID parses a chi URL parameter, answering 400 when it is not a UUID.
func urlUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// sessionUser is the id of the authenticated caller.
func sessionUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized access")
		return uuid.Nil, false
	}
	return userID, true
}

// viewer is the signed in visitor on public routes, nil when anonymous.
func viewer(r *http.Request) *uuid.UUID {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return nil
	}
	return &userID
}
