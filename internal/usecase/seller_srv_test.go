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

func listingRequest() *request.ProductRequest {
	return &request.ProductRequest{
		Title:      "Mechanical Keyboard",
		Categories: []string{"electronics", "keyboards"},
		Brand:      "Keychron",
		Packaged:   request.PackagedRequest{Weight: 1.2, WeightUnit: "kg", VolumetricWeight: 1.5},
		Shipping:   request.ShippingRequest{IsFree: true},
		Variations: []request.VariationRequest{
			{SKU: "K2-RED", Title: "K2 Red Switch", Price: 89.999, SellingPrice: 79.5, Available: 4},
			{SKU: "K2-BLUE", Title: "K2 Blue Switch", Price: 89, Available: 0, Status: "inactive"},
		},
	}
}

func TestCreateListing(t *testing.T) {
	s := newStore()
	svc := NewSellerService(s.repository(), testLogger())
	seller := seedActiveUser(t, s, entity.RoleSeller, "seller@example.com", "abc1!")

	res, err := svc.CreateListing(context.Background(), seller.ID, listingRequest())
	require.NoError(t, err)
	assert.Regexp(t, `^LID`, res.ListingID)
	require.Contains(t, s.queue, res.ListingID)

	doc := s.queue[res.ListingID].Document
	assert.Equal(t, entity.SaveAsQueue, doc.SaveAs)
	assert.Equal(t, entity.StatusInactive, doc.Status)
	assert.Equal(t, seller.ID, doc.Supplier.ID)
	assert.Equal(t, "Seeded Store", doc.Supplier.StoreName)
	assert.Len(t, doc.Rating, 5)

	require.Len(t, doc.Variations, 2)
	red, blue := doc.Variations[0], doc.Variations[1]
	assert.True(t, mustDecimal("90").Equal(red.Price), red.Price.String())
	assert.True(t, mustDecimal("79.5").Equal(red.SellingPrice))
	assert.Equal(t, "k2-red-switch", red.Slug)
	assert.Equal(t, entity.StatusActive, red.Status)
	assert.Equal(t, entity.StockIn, red.Stock)
	assert.Equal(t, entity.StatusInactive, blue.Status)
	assert.Equal(t, entity.StockOut, blue.Stock)
}

func TestCreateListingRequiresVerifiedSeller(t *testing.T) {
	s := newStore()
	svc := NewSellerService(s.repository(), testLogger())

	pending := seedActiveUser(t, s, entity.RoleSeller, "pending@example.com", "abc1!")
	status := entity.SellerPending
	pending.SellerStatus = &status
	buyer := seedActiveUser(t, s, entity.RoleBuyer, "buyer@example.com", "abc1!")

	tests := []struct {
		name     string
		sellerID uuid.UUID
		msg      string
	}{
		{"pending seller", pending.ID, "Your seller account is waiting for verification !"},
		{"buyer", buyer.ID, "Forbidden access !"},
		{"unknown", uuid.New(), "Forbidden access !"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateListing(context.Background(), tt.sellerID, listingRequest())
			assert.True(t, errors.Is(err, apperr.ErrForbidden))
			assert.EqualError(t, err, tt.msg)
			assert.Empty(t, s.queue)
		})
	}
}

func TestUpdateStock(t *testing.T) {
	s := newStore()
	svc := NewSellerService(s.repository(), testLogger())
	line := s.addLine("10", "0", 2, true, 1)

	tests := []struct {
		name      string
		variation uuid.UUID
		available int
		kind      error
	}{
		{"restock", line.VariationID, 12, nil},
		{"sold out", line.VariationID, 0, nil},
		{"negative", line.VariationID, -1, apperr.ErrBadRequest},
		{"unknown variation", uuid.New(), 3, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateStock(context.Background(), line.SellerID, line.ProductID, tt.variation, tt.available)
			if tt.kind != nil {
				assert.True(t, errors.Is(err, tt.kind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.available, s.stock[line.VariationID])
		})
	}
}

func TestSellerDashboard(t *testing.T) {
	s := newStore()
	svc := NewSellerService(s.repository(), testLogger())

	res, err := svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Len(t, res.TopSold, 3)
	assert.Equal(t, 2.33, res.AverageSold)
}

func TestAverageSold(t *testing.T) {
	tests := []struct {
		name string
		rows []query.SoldProduct
		want float64
	}{
		{"no rows", nil, 0},
		{"one row", []query.SoldProduct{{Sold: 7}}, 7},
		{"rounded", []query.SoldProduct{{Sold: 1}, {Sold: 1}, {Sold: 2}}, 1.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, averageSold(tt.rows))
		})
	}
}
