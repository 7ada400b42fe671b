package usecase

import (
	"context"
	"strings"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/internal/domain"
	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/dto/response"
	"github.com/mroy35034/woo-com-server/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	searchLimit    = 20
	relatedLimit   = 5
	carouselLimit  = 6
	maxNewestLimit = 20
	msgProductGone = "Product not found!"
)

type ProductService interface {
	Search(ctx context.Context, text string) ([]query.ProductCard, error)
	ByCategory(ctx context.Context, req *request.CategoryRequest) (*response.PaginatedResponse[query.ProductCard], error)
	// Detail counts a view. viewer is nil for anonymous visitors.
	Detail(ctx context.Context, productID, variationID uuid.UUID, viewer *uuid.UUID) (*response.ProductDetailResponse, error)
	Home(ctx context.Context, newest int) (*response.HomeStoreResponse, error)
	Count(ctx context.Context, sellerUUID string) (*response.ProductCountResponse, error)
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log.With(zap.String("service", "product")),
	}
}

// Search returns no cards, not an error, when nothing matches.
func (s *productService) Search(ctx context.Context, text string) ([]query.ProductCard, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	return s.repo.Product.Search(ctx, text, searchLimit)
}

func (s *productService) ByCategory(ctx context.Context, req *request.CategoryRequest) (*response.PaginatedResponse[query.ProductCard], error) {
	filter := query.CategoryFilter{
		Categories: req.Categories,
		Sort:       query.Sort(req.Sort),
		Limit:      req.Limit(),
		Offset:     req.Offset(),
	}

	cards, err := s.repo.Product.FindByCategory(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Product.CountByCategory(ctx, filter)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(cards, req.Page, filter.Limit, total), nil
}

func (s *productService) Detail(ctx context.Context, productID, variationID uuid.UUID, viewer *uuid.UUID) (*response.ProductDetailResponse, error) {
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.SaveAs != entity.SaveAsFulfilled || product.Status != entity.StatusActive {
		return nil, apperr.NotFound(msgProductGone)
	}

	var variation *entity.Variation
	for i := range product.Variations {
		if product.Variations[i].ID == variationID {
			variation = &product.Variations[i]
			break
		}
	}
	if variation == nil || variation.Status != entity.StatusActive {
		return nil, apperr.NotFound(msgProductGone)
	}

	views, err := s.repo.Product.IncrementViews(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	product.Views = views
	product.Score = domain.PopularityScore(views, product.RatingAverage, product.Sold)
	if err := s.repo.Product.UpdateScore(ctx, product.ID, product.Score); err != nil {
		return nil, err
	}

	related, err := s.repo.Product.FindRelated(ctx, product.Categories, variation.ID, relatedLimit)
	if err != nil {
		return nil, err
	}

	res := &response.ProductDetailResponse{
		Product:   product,
		Variation: variation,
		Swatches:  response.SwatchesOf(product),
		Related:   related,
	}

	if viewer != nil {
		if res.InCart, err = s.repo.Cart.Exists(ctx, *viewer, variation.ID); err != nil {
			return nil, err
		}
		if res.InWishlist, err = s.repo.Wishlist.Exists(ctx, *viewer, variation.ID); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (s *productService) Home(ctx context.Context, newest int) (*response.HomeStoreResponse, error) {
	if newest < 1 {
		newest = carouselLimit
	}
	if newest > maxNewestLimit {
		newest = maxNewestLimit
	}

	var (
		res response.HomeStoreResponse
		err error
	)
	if res.NewestProducts, err = s.repo.Product.FindCarousel(ctx, query.CarouselNewest, newest); err != nil {
		return nil, err
	}
	if res.TopSellingItems, err = s.repo.Product.FindCarousel(ctx, query.CarouselTopSelling, carouselLimit); err != nil {
		return nil, err
	}
	if res.TopRatedItems, err = s.repo.Product.FindCarousel(ctx, query.CarouselTopRated, carouselLimit); err != nil {
		return nil, err
	}

	return &res, nil
}

// Count totals the live listings, of one seller when sellerUUID is set.
func (s *productService) Count(ctx context.Context, sellerUUID string) (*response.ProductCountResponse, error) {
	var filter query.ManageFilter

	if sellerUUID != "" {
		seller, err := s.repo.User.FindByUUID(ctx, sellerUUID)
		if err != nil {
			return nil, err
		}
		if seller == nil || seller.Role != entity.RoleSeller {
			return nil, apperr.NotFound("Seller not found!")
		}
		filter.SellerID = &seller.ID
	}

	total, err := s.repo.Product.CountManaged(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &response.ProductCountResponse{Total: total}, nil
}
