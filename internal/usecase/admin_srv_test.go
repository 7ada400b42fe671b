package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/pkg/apperr"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueListing(s *store, sellerID uuid.UUID) string {
	listingID := utils.GenerateListingID()
	s.queue[listingID] = &entity.QueueProduct{
		ID:        uuid.New(),
		ListingID: listingID,
		SellerID:  sellerID,
		Document: entity.Product{
			Base:   entity.NewBase(time.Now()),
			Title:  "Wireless Mouse",
			Rating: entity.EmptyRating(),
			SaveAs: entity.SaveAsQueue,
			Status: entity.StatusInactive,
		},
	}
	return listingID
}

func TestTakeProduct(t *testing.T) {
	s := newStore()
	svc := NewAdminService(s.repository(), &fakeMailer{}, testLogger())
	admin := seedActiveUser(t, s, entity.RoleAdmin, "admin@example.com", "abc1!")
	seller := seedActiveUser(t, s, entity.RoleSeller, "seller@example.com", "abc1!")

	listingID := queueListing(s, seller.ID)

	product, err := svc.TakeProduct(context.Background(), admin.ID, listingID)
	require.NoError(t, err)
	assert.Equal(t, listingID, product.ListingID)
	assert.Equal(t, entity.SaveAsDraft, product.SaveAs)
	assert.Equal(t, entity.StatusInactive, product.Status)
	assert.True(t, product.IsVerified)
	require.NotNil(t, product.VerifyStatus)
	assert.Equal(t, "admin@example.com", product.VerifyStatus.Email)
	assert.Equal(t, "ADMIN", product.VerifyStatus.VerifiedBy)
	assert.NotContains(t, s.queue, listingID)

	tests := []struct {
		name    string
		adminID uuid.UUID
		listing func() string
		kind    error
	}{
		{
			name:    "already taken",
			adminID: admin.ID,
			listing: func() string {
				// a stale queue row for a listing that is already in the catalog
				s.queue[listingID] = &entity.QueueProduct{ListingID: listingID}
				return listingID
			},
			kind: apperr.ErrConflict,
		},
		{
			name:    "unknown listing",
			adminID: admin.ID,
			listing: func() string { return "LIDMISSING" },
			kind:    apperr.ErrNotFound,
		},
		{
			name:    "not an admin",
			adminID: seller.ID,
			listing: func() string { return queueListing(s, seller.ID) },
			kind:    apperr.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.listing()
			_, err := svc.TakeProduct(context.Background(), tt.adminID, id)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			if tt.kind != apperr.ErrNotFound {
				assert.Contains(t, s.queue, id, "queue row must survive a failed promotion")
			}
		})
	}
}

func TestVerifySeller(t *testing.T) {
	s := newStore()
	mail := &fakeMailer{}
	svc := NewAdminService(s.repository(), mail, testLogger())

	seller := seedActiveUser(t, s, entity.RoleSeller, "new-seller@example.com", "abc1!")
	pending := entity.SellerPending
	seller.SellerStatus = &pending
	seller.AccountStatus = entity.AccountInactive

	require.NoError(t, svc.VerifySeller(context.Background(), seller.ID))
	assert.Equal(t, entity.SellerFulfilled, *s.users[seller.ID].SellerStatus)
	assert.Equal(t, entity.AccountActive, s.users[seller.ID].AccountStatus)
	assert.Equal(t, []string{"new-seller@example.com"}, mail.recipients())

	t.Run("not pending anymore", func(t *testing.T) {
		err := svc.VerifySeller(context.Background(), seller.ID)
		assert.EqualError(t, err, "Seller account is not pending !")
	})

	t.Run("buyer", func(t *testing.T) {
		buyer := seedActiveUser(t, s, entity.RoleBuyer, "b@example.com", "abc1!")
		err := svc.VerifySeller(context.Background(), buyer.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("email failure keeps approval", func(t *testing.T) {
		other := seedActiveUser(t, s, entity.RoleSeller, "other@example.com", "abc1!")
		other.SellerStatus = &pending

		failing := NewAdminService(s.repository(), &fakeMailer{err: errors.New("smtp down")}, testLogger())
		require.NoError(t, failing.VerifySeller(context.Background(), other.ID))
		assert.Equal(t, entity.SellerFulfilled, *s.users[other.ID].SellerStatus)
	})
}

func TestAdminOverview(t *testing.T) {
	s := newStore()
	svc := NewAdminService(s.repository(), &fakeMailer{}, testLogger())

	res, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.TopSoldProducts, 3)
	assert.Empty(t, res.TopSellers)
}
