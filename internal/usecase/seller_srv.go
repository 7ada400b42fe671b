package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/dto/response"
	"github.com/mroy35034/woo-com-server/pkg/apperr"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dashboardLimit = 10

type SellerService interface {
	CreateListing(ctx context.Context, sellerID uuid.UUID, req *request.ProductRequest) (*response.QueueProductResponse, error)
	UpdateQueuedListing(ctx context.Context, sellerID uuid.UUID, listingID string, req *request.ProductRequest) (*response.QueueProductResponse, error)

	ManageProducts(ctx context.Context, sellerID uuid.UUID, req *request.ManageProductsRequest) (*response.ManageProductsResponse, error)
	UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, req *request.ProductRequest) error
	PublishProduct(ctx context.Context, sellerID, productID uuid.UUID) error
	DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error

	AddVariation(ctx context.Context, sellerID, productID uuid.UUID, req *request.VariationRequest) (*entity.Variation, error)
	UpdateVariation(ctx context.Context, sellerID, productID, variationID uuid.UUID, req *request.VariationRequest) error
	DeleteVariation(ctx context.Context, sellerID, productID, variationID uuid.UUID) error
	UpdateStock(ctx context.Context, sellerID, productID, variationID uuid.UUID, available int) error

	Dashboard(ctx context.Context, sellerID uuid.UUID) (*response.SellerDashboardResponse, error)
}

type sellerService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  clock
}

func NewSellerService(repo *repository.Repository, log *zap.Logger) SellerService {
	return &sellerService{
		repo: repo,
		log:  log.With(zap.String("service", "seller")),
		now:  time.Now,
	}
}

func newVariation(req *request.VariationRequest, productID uuid.UUID, now time.Time) entity.Variation {
	v := entity.Variation{
		ID:        uuid.New(),
		ProductID: productID,
		CreatedAt: now,
	}
	applyVariation(&v, req, now)
	v.Available = req.Available
	v.Stock = entity.StockFor(req.Available)
	return v
}

func applyVariation(v *entity.Variation, req *request.VariationRequest, now time.Time) {
	v.SKU = req.SKU
	v.Title = req.Title
	v.Slug = utils.Slugify(req.Title)
	v.Price = decimal.NewFromFloat(req.Price).Round(2)
	v.SellingPrice = decimal.NewFromFloat(req.SellingPrice).Round(2)
	v.Status = req.Status
	if v.Status == "" {
		v.Status = entity.StatusActive
	}
	v.Attributes = req.Attributes
	if v.Attributes == nil {
		v.Attributes = map[string]string{}
	}
	v.Images = req.Images
	v.UpdatedAt = now
}

// applyListing copies the descriptive fields of req onto p.
func applyListing(p *entity.Product, req *request.ProductRequest, now time.Time) {
	p.Title = req.Title
	p.Slug = utils.Slugify(req.Title)
	p.Categories = req.Categories
	p.Brand = req.Brand
	p.Manufacturer = entity.Manufacturer(req.Manufacturer)
	p.Packaged = entity.Packaged(req.Packaged)
	p.Shipping = entity.Shipping(req.Shipping)
	p.Keywords = req.Keywords
	p.MetaDescription = req.MetaDescription
	p.Description = req.Description
	p.Highlights = req.Highlights
	p.Specification = req.Specification
	p.Images = req.Images
	p.UpdatedAt = now
}

func (s *sellerService) verifiedSeller(ctx context.Context, sellerID uuid.UUID) (*entity.User, error) {
	seller, err := s.repo.User.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil || seller.Role != entity.RoleSeller {
		return nil, apperr.Forbidden("Forbidden access !")
	}
	if seller.SellerStatus == nil || *seller.SellerStatus != entity.SellerFulfilled {
		return nil, apperr.Forbidden("Your seller account is waiting for verification !")
	}
	return seller, nil
}

func (s *sellerService) CreateListing(ctx context.Context, sellerID uuid.UUID, req *request.ProductRequest) (*response.QueueProductResponse, error) {
	seller, err := s.verifiedSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc := entity.Product{
		Base:      entity.NewBase(now),
		ListingID: utils.GenerateListingID(),
		Rating:    entity.EmptyRating(),
		Supplier: entity.Supplier{
			ID:        seller.ID,
			Email:     seller.Email,
			StoreName: seller.Store.Name,
		},
		SaveAs: entity.SaveAsQueue,
		Status: entity.StatusInactive,
	}
	applyListing(&doc, req, now)
	for i := range req.Variations {
		doc.Variations = append(doc.Variations, newVariation(&req.Variations[i], doc.ID, now))
	}

	item := &entity.QueueProduct{
		ID:        uuid.New(),
		ListingID: doc.ListingID,
		SellerID:  seller.ID,
		Document:  doc,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Queue.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Conflict("Listing %s already exists", item.ListingID)
		}
		return nil, fmt.Errorf("queue listing: %w", err)
	}

	s.log.Info("Listing queued",
		zap.String("listing_id", item.ListingID),
		zap.String("seller_id", seller.ID.String()),
		zap.Int("variations", len(doc.Variations)),
	)

	res := response.QueueToResponse(item)
	return &res, nil
}

func (s *sellerService) UpdateQueuedListing(ctx context.Context, sellerID uuid.UUID, listingID string, req *request.ProductRequest) (*response.QueueProductResponse, error) {
	item, err := s.repo.Queue.FindByListingID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.SellerID != sellerID {
		return nil, apperr.NotFound("Listing %s is not in queue", listingID)
	}

	now := s.now()
	applyListing(&item.Document, req, now)
	item.Document.Variations = item.Document.Variations[:0]
	for i := range req.Variations {
		item.Document.Variations = append(item.Document.Variations, newVariation(&req.Variations[i], item.Document.ID, now))
	}
	item.UpdatedAt = now

	if err := s.repo.Queue.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Listing %s is not in queue", listingID)
		}
		return nil, err
	}

	res := response.QueueToResponse(item)
	return &res, nil
}

func (s *sellerService) ManageProducts(ctx context.Context, sellerID uuid.UUID, req *request.ManageProductsRequest) (*response.ManageProductsResponse, error) {
	filter := query.ManageFilter{
		SellerID: &sellerID,
		Search:   req.Search,
		Category: req.Category,
		Limit:    req.Limit(),
		Offset:   req.Offset(),
	}

	products, err := s.repo.Product.FindManaged(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Product.CountManaged(ctx, filter)
	if err != nil {
		return nil, err
	}

	drafts, err := s.repo.Product.FindDrafts(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	queued, err := s.repo.Queue.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	queue := make([]*entity.Product, len(queued))
	for i, q := range queued {
		queue[i] = &q.Document
	}

	return &response.ManageProductsResponse{
		Products: response.NewPaginatedResponse(products, req.Page, filter.Limit, total),
		Drafts:   drafts,
		Queue:    queue,
	}, nil
}

// UpdateProduct rewrites the listing and drops it from every cart, since the
// lines there were priced against the old listing.
func (s *sellerService) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, req *request.ProductRequest) error {
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil || product.Supplier.ID != sellerID {
		return apperr.NotFound(msgProductGone)
	}

	applyListing(product, req, s.now())

	if err := s.repo.Product.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgProductGone)
		}
		return err
	}

	return s.repo.Product.RemoveFromCarts(ctx, productID)
}

func (s *sellerService) PublishProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	if err := s.repo.Product.Publish(ctx, sellerID, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.BadRequest("Only drafts with at least one variation can be published !")
		}
		return err
	}

	s.log.Info("Product published", zap.String("product_id", productID.String()))
	return nil
}

func (s *sellerService) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	if err := s.repo.Product.Delete(ctx, sellerID, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgProductGone)
		}
		return err
	}

	s.log.Info("Product deleted",
		zap.String("product_id", productID.String()),
		zap.String("seller_id", sellerID.String()),
	)
	return nil
}

func (s *sellerService) AddVariation(ctx context.Context, sellerID, productID uuid.UUID, req *request.VariationRequest) (*entity.Variation, error) {
	v := newVariation(req, productID, s.now())

	if err := s.repo.Product.CreateVariation(ctx, sellerID, &v); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(msgProductGone)
		}
		return nil, err
	}

	return &v, nil
}

func (s *sellerService) UpdateVariation(ctx context.Context, sellerID, productID, variationID uuid.UUID, req *request.VariationRequest) error {
	v := entity.Variation{ID: variationID, ProductID: productID}
	applyVariation(&v, req, s.now())

	if err := s.repo.Product.UpdateVariation(ctx, sellerID, &v); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Variation not found!")
		}
		return err
	}
	return nil
}

func (s *sellerService) DeleteVariation(ctx context.Context, sellerID, productID, variationID uuid.UUID) error {
	if err := s.repo.Product.DeleteVariation(ctx, sellerID, productID, variationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Variation not found!")
		}
		return err
	}
	return nil
}

func (s *sellerService) UpdateStock(ctx context.Context, sellerID, productID, variationID uuid.UUID, available int) error {
	if available < 0 {
		return apperr.BadRequest("Available stock can not be negative !")
	}

	if err := s.repo.Product.UpdateStock(ctx, sellerID, productID, variationID, available); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Variation not found!")
		}
		return err
	}

	s.log.Info("Stock updated",
		zap.String("variation_id", variationID.String()),
		zap.Int("available", available),
	)
	return nil
}

func (s *sellerService) Dashboard(ctx context.Context, sellerID uuid.UUID) (*response.SellerDashboardResponse, error) {
	top, err := s.repo.Product.FindTopSold(ctx, &sellerID, dashboardLimit)
	if err != nil {
		return nil, err
	}

	return &response.SellerDashboardResponse{
		TopSold:     top,
		AverageSold: averageSold(top),
	}, nil
}

// averageSold is the mean of units sold, 0 for no rows.
func averageSold(rows []query.SoldProduct) float64 {
	if len(rows) == 0 {
		return 0
	}

	data := make(stats.Float64Data, len(rows))
	for i, r := range rows {
		data[i] = float64(r.Sold)
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	rounded, _ := stats.Round(mean, 2)
	return rounded
}
