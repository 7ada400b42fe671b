package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/internal/domain"
	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/dto/response"
	"github.com/mroy35034/woo-com-server/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	ProductReviews(ctx context.Context, productID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  clock
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
		now:  time.Now,
	}
}

// CreateReview accepts one review per buyer for a product they received.
func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.BadRequest("Invalid product id")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found!")
	}

	bought, err := s.repo.Order.HasCompletedItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !bought {
		return nil, apperr.Forbidden("You can only review products you have received !")
	}

	existing, err := s.repo.Review.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("You already reviewed this product !")
	}

	review := &entity.Review{
		BaseSimple: entity.NewBaseSimple(s.now()),
		UserID:     userID,
		ProductID:  productID,
		FullName:   user.FullName,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review, domain.AddRating); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, apperr.Conflict("You already reviewed this product !")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound(msgProductGone)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("rating", req.Rating),
	)

	res := response.ReviewToResponse(review)
	return &res, nil
}

func (s *reviewService) ProductReviews(ctx context.Context, productID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	limit := req.Limit()

	reviews, err := s.repo.Review.FindByProductID(ctx, productID, limit, req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Review.CountByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.ReviewsToResponse(reviews), req.Page, limit, total), nil
}
