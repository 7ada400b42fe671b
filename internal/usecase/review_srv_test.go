package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveProduct(s *store) *entity.Product {
	p := &entity.Product{
		Base:   entity.NewBase(time.Now()),
		Title:  "Desk Lamp",
		Rating: entity.EmptyRating(),
		SaveAs: entity.SaveAsFulfilled,
		Status: entity.StatusActive,
	}
	p.Variations = []entity.Variation{
		{ID: uuid.New(), ProductID: p.ID, Title: "Black", Status: entity.StatusActive, Available: 3, Stock: entity.StockIn},
		{ID: uuid.New(), ProductID: p.ID, Title: "White", Status: entity.StatusInactive},
	}
	s.products[p.ID] = p
	return p
}

func TestCreateReview(t *testing.T) {
	s := newStore()
	svc := NewReviewService(s.repository(), testLogger())
	buyer := seedActiveUser(t, s, entity.RoleBuyer, "buyer@example.com", "abc1!")
	product := liveProduct(s)

	req := &request.CreateReviewRequest{ProductID: product.ID.String(), Rating: 4}

	t.Run("not received yet", func(t *testing.T) {
		_, err := svc.CreateReview(context.Background(), buyer.ID, req)
		assert.True(t, errors.Is(err, apperr.ErrForbidden))
		assert.Empty(t, s.reviews)
	})

	s.completed[product.ID] = true

	t.Run("first review", func(t *testing.T) {
		res, err := svc.CreateReview(context.Background(), buyer.ID, req)
		require.NoError(t, err)
		assert.Equal(t, 4, res.Rating)
		assert.Equal(t, buyer.FullName, res.FullName)
		assert.Equal(t, 4.0, s.products[product.ID].RatingAverage)
	})

	t.Run("second review", func(t *testing.T) {
		_, err := svc.CreateReview(context.Background(), buyer.ID, &request.CreateReviewRequest{ProductID: product.ID.String(), Rating: 1})
		assert.True(t, errors.Is(err, apperr.ErrConflict))
		assert.Len(t, s.reviews, 1)
		assert.Equal(t, 4.0, s.products[product.ID].RatingAverage)
	})

	t.Run("average over buyers", func(t *testing.T) {
		other := seedActiveUser(t, s, entity.RoleBuyer, "other@example.com", "abc1!")
		_, err := svc.CreateReview(context.Background(), other.ID, &request.CreateReviewRequest{ProductID: product.ID.String(), Rating: 5})
		require.NoError(t, err)
		assert.Equal(t, 4.5, s.products[product.ID].RatingAverage)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.CreateReview(context.Background(), uuid.New(), req)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("bad product id", func(t *testing.T) {
		_, err := svc.CreateReview(context.Background(), buyer.ID, &request.CreateReviewRequest{ProductID: "x", Rating: 3})
		assert.True(t, errors.Is(err, apperr.ErrBadRequest))
	})
}
