package adaptor

import (
	"net/http"

	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/usecase"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// FetchAuthUser handles GET /api/v1/user/fetch-auth-user
func (h *UserHandler) FetchAuthUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	data, err := h.service.FetchAuthUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "fetch auth user")
		return
	}

	utils.ResponseSuccess(w, "Welcome "+data.FullName, map[string]any{"u_data": data})
}

// ListAddresses handles GET /api/v1/user/address
func (h *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	addresses, err := h.service.ListAddresses(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list addresses")
		return
	}

	utils.ResponseSuccess(w, "success", addresses)
}

// AddAddress handles POST /api/v1/user/address
func (h *UserHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req request.AddressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	address, err := h.service.AddAddress(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add address")
		return
	}

	utils.ResponseCreated(w, "Address added", address)
}

// UpdateAddress handles PUT /api/v1/user/address/{addressID}
func (h *UserHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	addressID, ok := urlUUID(w, r, "addressID")
	if !ok {
		return
	}

	var req request.AddressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	address, err := h.service.UpdateAddress(r.Context(), userID, addressID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update address")
		return
	}

	utils.ResponseSuccess(w, "Address updated", address)
}

// DeleteAddress handles DELETE /api/v1/user/address/{addressID}
func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	addressID, ok := urlUUID(w, r, "addressID")
	if !ok {
		return
	}

	if err := h.service.DeleteAddress(r.Context(), userID, addressID); err != nil {
		handleServiceError(w, h.log, err, "delete address")
		return
	}

	utils.ResponseSuccess(w, "Address deleted", nil)
}

// SelectDefaultAddress handles PUT /api/v1/user/address/{addressID}/default
func (h *UserHandler) SelectDefaultAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}
	addressID, ok := urlUUID(w, r, "addressID")
	if !ok {
		return
	}

	if err := h.service.SelectDefaultAddress(r.Context(), userID, addressID); err != nil {
		handleServiceError(w, h.log, err, "select default address")
		return
	}

	utils.ResponseSuccess(w, "Default address updated", nil)
}
