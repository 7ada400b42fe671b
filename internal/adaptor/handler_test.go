package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mroy35034/woo-com-server/internal/data/query"
	"github.com/mroy35034/woo-com-server/internal/dto/response"
	"github.com/mroy35034/woo-com-server/internal/usecase"
	"github.com/mroy35034/woo-com-server/pkg/apperr"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  map[string]any  `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func withClaims(r *http.Request, userID uuid.UUID, email string) *http.Request {
	claims := &utils.Claims{UserID: userID.String(), Email: email, Role: "BUYER"}
	return r.WithContext(utils.SetUserContext(r.Context(), claims))
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"bad request", apperr.BadRequest("This product out of stock now"), http.StatusBadRequest, "This product out of stock now"},
		{"unauthorized", apperr.Unauthorized("Unauthorized access !"), http.StatusUnauthorized, "Unauthorized access !"},
		{"forbidden", apperr.Forbidden("Forbidden access"), http.StatusForbidden, "Forbidden access"},
		{"not found", apperr.NotFound("Product not found!"), http.StatusNotFound, "Product not found!"},
		{"conflict", apperr.Conflict("Product already taken"), http.StatusConflict, "Product already taken"},
		{"payment required", apperr.PaymentRequired("Payment not completed"), http.StatusPaymentRequired, "Payment not completed"},
		{"unclassified", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Status)
			assert.Equal(t, tt.wantMessage, env.Message)
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	type body struct {
		Email string `json:"email" validate:"required,email"`
	}

	tests := []struct {
		name       string
		payload    string
		wantOK     bool
		wantStatus int
	}{
		{"valid", `{"email":"a@b.co"}`, true, http.StatusOK},
		{"malformed", `{"email":`, false, http.StatusBadRequest},
		{"invalid email", `{"email":"nope"}`, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))

			var b body
			ok := decodeAndValidate(rec, req, &b)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPaginated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&per_page=500", nil)
	p := paginated(req)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PerPage)

	p = paginated(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PerPage)
}

func TestSignOut(t *testing.T) {
	h := NewAuthHandler(nil, utils.JWTConfig{CookieName: "token"}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.SignOut(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-out", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You already logged out !", decode(t, rec).Message)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-out", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "abc"})
	rec = httptest.NewRecorder()
	h.SignOut(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "token=;")
}

type stubProducts struct {
	usecase.ProductService
	cards  []query.ProductCard
	viewer *uuid.UUID
}

func (s *stubProducts) Search(context.Context, string) ([]query.ProductCard, error) {
	return s.cards, nil
}

func (s *stubProducts) Detail(_ context.Context, _, _ uuid.UUID, viewer *uuid.UUID) (*response.ProductDetailResponse, error) {
	s.viewer = viewer
	return nil, apperr.NotFound("Product not found!")
}

func TestProductSearch(t *testing.T) {
	tests := []struct {
		name       string
		cards      []query.ProductCard
		wantStatus int
	}{
		{"no match", nil, http.StatusNoContent},
		{"match", []query.ProductCard{{Title: "Keyboard"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProductHandler(&stubProducts{cards: tt.cards}, nil, zap.NewNop())

			rec := httptest.NewRecorder()
			h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/v1/product/search?q=key", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestProductDetailViewer(t *testing.T) {
	stub := &stubProducts{}
	h := NewProductHandler(stub, nil, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/{productID}/variation/{variationID}", h.Detail)

	path := "/" + uuid.NewString() + "/variation/" + uuid.NewString()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Nil(t, stub.viewer)

	userID := uuid.New()
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, withClaims(httptest.NewRequest(http.MethodGet, path, nil), userID, "b@example.com"))
	require.NotNil(t, stub.viewer)
	assert.Equal(t, userID, *stub.viewer)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/not-a-uuid/variation/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubOrders struct {
	usecase.OrderService
	buyer        usecase.Buyer
	claimedEmail string
}

func (s *stubOrders) Checkout(_ context.Context, buyer usecase.Buyer, claimedEmail string) (*response.CheckoutResponse, error) {
	s.buyer = buyer
	s.claimedEmail = claimedEmail
	if claimedEmail != buyer.Email {
		return nil, apperr.Unauthorized("Unauthorized access !")
	}
	return &response.CheckoutResponse{ClientSecret: "pi_1_secret"}, nil
}

func TestCheckoutReadsClaimedEmail(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		body       string
		wantStatus int
	}{
		{"matching email", "b@example.com", `{"state":"CART"}`, http.StatusOK},
		{"other email", "x@example.com", `{"state":"CART"}`, http.StatusUnauthorized},
		{"single state", "b@example.com", `{"state":"SINGLE"}`, http.StatusBadRequest},
		{"missing state", "b@example.com", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubOrders{}
			h := NewOrderHandler(stub, zap.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/order/set-order", strings.NewReader(tt.body))
			req.Header.Set("Authorization", tt.header)
			req = withClaims(req, userID, "b@example.com")
			rec := httptest.NewRecorder()

			h.Checkout(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusBadRequest {
				assert.Equal(t, userID, stub.buyer.ID)
				assert.Equal(t, tt.header, stub.claimedEmail)
			}
		})
	}
}

func TestSessionRequired(t *testing.T) {
	h := NewUserHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.FetchAuthUser(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/fetch-auth-user", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
