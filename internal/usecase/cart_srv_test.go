package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"
	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addRequest(line query.CartLine) *request.AddToCartRequest {
	return &request.AddToCartRequest{
		ProductID:   line.ProductID.String(),
		VariationID: line.VariationID.String(),
		ListingID:   line.ListingID,
	}
}

func TestAddToCart(t *testing.T) {
	s := newStore()
	svc := NewCartService(s.repository(), testLogger())
	customer := uuid.New()

	inStock := s.addLine("10", "0", 3, true, 1)
	soldOut := s.addLine("10", "0", 0, true, 1)

	wrongListing := addRequest(inStock)
	wrongListing.ListingID = "LIDOTHER"

	tests := []struct {
		name string
		req  *request.AddToCartRequest
		msg  string
	}{
		{"in stock", addRequest(inStock), ""},
		{"already in cart", addRequest(inStock), msgAlreadyInCart},
		{"sold out", addRequest(soldOut), msgOutOfStock},
		{"listing mismatch", wrongListing, msgOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AddToCart(context.Background(), customer, "buyer@example.com", tt.req)
			if tt.msg == "" {
				require.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, apperr.ErrBadRequest))
			assert.EqualError(t, err, tt.msg)
		})
	}

	assert.Len(t, s.cart, 1)
	assert.Equal(t, 1, s.cart[0].Quantity)
}

func TestUpdateCartQuantity(t *testing.T) {
	s := newStore()
	svc := NewCartService(s.repository(), testLogger())
	customer := uuid.New()

	line := s.addLine("10", "0", 4, true, 1)
	require.NoError(t, svc.AddToCart(context.Background(), customer, "b@example.com", addRequest(line)))
	itemID := s.cart[0].ID

	tests := []struct {
		name     string
		itemID   uuid.UUID
		quantity int
		kind     error
		msg      string
	}{
		{"zero", itemID, 0, apperr.ErrBadRequest, msgOutOfRange},
		{"below stock", itemID, 3, nil, ""},
		{"equal to stock", itemID, 4, apperr.ErrBadRequest, msgOutOfRange},
		{"above stock", itemID, 9, apperr.ErrBadRequest, msgOutOfRange},
		{"unknown item", uuid.New(), 2, apperr.ErrNotFound, "Cart item not found!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateQuantity(context.Background(), customer, tt.itemID, tt.quantity)
			if tt.kind == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.quantity, s.cart[0].Quantity)
				return
			}
			assert.True(t, errors.Is(err, tt.kind), err.Error())
			assert.EqualError(t, err, tt.msg)
		})
	}

	t.Run("product unpublished meanwhile", func(t *testing.T) {
		hidden := s.catalog[line.VariationID]
		hidden.ProductStatus = entity.StatusInactive
		s.catalog[line.VariationID] = hidden
		defer func() { s.catalog[line.VariationID] = line }()

		err := svc.UpdateQuantity(context.Background(), customer, itemID, 1)
		assert.EqualError(t, err, msgOutOfStock)
		assert.Equal(t, 3, s.cart[0].Quantity)
	})

	t.Run("sold out meanwhile", func(t *testing.T) {
		s.stock[line.VariationID] = 0
		err := svc.UpdateQuantity(context.Background(), customer, itemID, 1)
		assert.EqualError(t, err, msgOutOfStock)
	})
}

func TestGetCart(t *testing.T) {
	s := newStore()
	svc := NewCartService(s.repository(), testLogger())
	customer := uuid.New()

	line := s.addLine("30", "25", 5, false, 2)
	require.NoError(t, svc.AddToCart(context.Background(), customer, "b@example.com", &request.AddToCartRequest{
		ProductID:   line.ProductID.String(),
		VariationID: line.VariationID.String(),
		ListingID:   line.ListingID,
		Quantity:    2,
	}))

	res, err := svc.GetCart(context.Background(), customer)
	require.NoError(t, err)
	require.Len(t, res.Products, 1)

	got := res.Products[0]
	assert.True(t, mustDecimal("50").Equal(got.BaseAmount), got.BaseAmount.String())
	assert.True(t, mustDecimal("10").Equal(got.SavingAmount), got.SavingAmount.String())
	// no default address, so the outside rate applies
	assert.True(t, mustDecimal("25").Equal(got.ShippingCharge), got.ShippingCharge.String())
}

func TestRemoveFromCart(t *testing.T) {
	s := newStore()
	svc := NewCartService(s.repository(), testLogger())
	customer := uuid.New()

	line := s.addLine("10", "0", 4, true, 1)
	require.NoError(t, svc.AddToCart(context.Background(), customer, "b@example.com", addRequest(line)))

	err := svc.RemoveFromCart(context.Background(), uuid.New(), s.cart[0].ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	require.NoError(t, svc.RemoveFromCart(context.Background(), customer, s.cart[0].ID))
	assert.Empty(t, s.cart)
}

func TestAddToWishlist(t *testing.T) {
	s := newStore()
	svc := NewCartService(s.repository(), testLogger())
	customer := uuid.New()
	line := s.addLine("10", "0", 4, true, 1)

	req := &request.WishlistRequest{
		ProductID:   line.ProductID.String(),
		VariationID: line.VariationID.String(),
		ListingID:   line.ListingID,
	}
	require.NoError(t, svc.AddToWishlist(context.Background(), customer, req))

	err := svc.AddToWishlist(context.Background(), customer, req)
	assert.EqualError(t, err, "Product is already in your wishlist")

	err = svc.AddToWishlist(context.Background(), customer, &request.WishlistRequest{ProductID: "nope", VariationID: line.VariationID.String()})
	assert.True(t, errors.Is(err, apperr.ErrBadRequest))
}
