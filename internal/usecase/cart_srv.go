package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/internal/domain"
	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/dto/response"
	"github.com/mroy35034/woo-com-server/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	msgOutOfStock    = "This product out of stock now"
	msgAlreadyInCart = "Product Has Already In Your Cart"
	msgOutOfRange    = "Your selected quantity out of range in available product"
)

type CartService interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (*response.CartResponse, error)
	AddToCart(ctx context.Context, customerID uuid.UUID, email string, req *request.AddToCartRequest) error
	UpdateQuantity(ctx context.Context, customerID, cartItemID uuid.UUID, quantity int) error
	RemoveFromCart(ctx context.Context, customerID, cartItemID uuid.UUID) error

	GetWishlist(ctx context.Context, customerID uuid.UUID) ([]query.ProductCard, error)
	AddToWishlist(ctx context.Context, customerID uuid.UUID, req *request.WishlistRequest) error
	RemoveFromWishlist(ctx context.Context, customerID, variationID uuid.UUID) error
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  clock
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
		now:  time.Now,
	}
}

// shapeLines fills the computed amounts of each line for delivery to areaType
// and returns the payable total.
func shapeLines(lines []query.CartLine, areaType string) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		l := &lines[i]
		l.BaseAmount, l.SavingAmount = domain.LineAmounts(l.Price, l.SellingPrice, l.Quantity)
		l.ShippingCharge = domain.ShippingCharge(l.IsFreeShipping, l.VolumetricWeight, areaType)
		total = total.Add(l.BaseAmount).Add(l.ShippingCharge)
	}
	return total
}

// defaultAreaType is the area of the buyer's default address, or "" when the
// buyer has none.
func defaultAreaType(ctx context.Context, repo *repository.Repository, customerID uuid.UUID) (string, error) {
	address, err := repo.Address.FindDefault(ctx, customerID)
	if err != nil {
		return "", err
	}
	if address == nil {
		return "", nil
	}
	return address.AreaType, nil
}

func (s *cartService) GetCart(ctx context.Context, customerID uuid.UUID) (*response.CartResponse, error) {
	lines, err := s.repo.Cart.FindLines(ctx, customerID, false)
	if err != nil {
		return nil, err
	}

	areaType, err := defaultAreaType(ctx, s.repo, customerID)
	if err != nil {
		return nil, err
	}
	shapeLines(lines, areaType)

	res := response.NewCartResponse(lines)
	return &res, nil
}

func (s *cartService) AddToCart(ctx context.Context, customerID uuid.UUID, email string, req *request.AddToCartRequest) error {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return apperr.BadRequest("Invalid product id")
	}
	variationID, err := uuid.Parse(req.VariationID)
	if err != nil {
		return apperr.BadRequest("Invalid variation id")
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	line, err := s.repo.Cart.FindSingleLine(ctx, productID, variationID, quantity)
	if err != nil {
		return err
	}
	if line == nil || line.ListingID != req.ListingID || !line.Purchasable() {
		return apperr.BadRequest(msgOutOfStock)
	}

	exists, err := s.repo.Cart.Exists(ctx, customerID, variationID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.BadRequest(msgAlreadyInCart)
	}

	now := s.now()
	item := &entity.CartItem{
		ID:            uuid.New(),
		CustomerID:    customerID,
		CustomerEmail: email,
		ProductID:     productID,
		ListingID:     req.ListingID,
		VariationID:   variationID,
		Quantity:      quantity,
		AddedAt:       now,
		UpdatedAt:     now,
	}

	if err := s.repo.Cart.Add(ctx, item); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return apperr.BadRequest(msgAlreadyInCart)
		}
		return fmt.Errorf("add to cart: %w", err)
	}

	s.log.Info("Cart item added",
		zap.String("customer_id", customerID.String()),
		zap.String("variation_id", variationID.String()),
		zap.Int("quantity", quantity),
	)
	return nil
}

// UpdateQuantity accepts quantities strictly below the units on hand.
func (s *cartService) UpdateQuantity(ctx context.Context, customerID, cartItemID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return apperr.BadRequest(msgOutOfRange)
	}

	item, err := s.repo.Cart.FindItem(ctx, customerID, cartItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperr.NotFound("Cart item not found!")
	}

	line, err := s.repo.Cart.FindSingleLine(ctx, item.ProductID, item.VariationID, quantity)
	if err != nil {
		return err
	}
	if line == nil || !line.Listed() {
		return apperr.BadRequest(msgOutOfStock)
	}
	if quantity >= line.Available {
		return apperr.BadRequest(msgOutOfRange)
	}

	if err := s.repo.Cart.UpdateQuantity(ctx, customerID, cartItemID, quantity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Cart item not found!")
		}
		return err
	}
	return nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, customerID, cartItemID uuid.UUID) error {
	if err := s.repo.Cart.Remove(ctx, customerID, cartItemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Cart item not found!")
		}
		return err
	}
	return nil
}

func (s *cartService) GetWishlist(ctx context.Context, customerID uuid.UUID) ([]query.ProductCard, error) {
	return s.repo.Wishlist.FindByCustomer(ctx, customerID)
}

func (s *cartService) AddToWishlist(ctx context.Context, customerID uuid.UUID, req *request.WishlistRequest) error {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return apperr.BadRequest("Invalid product id")
	}
	variationID, err := uuid.Parse(req.VariationID)
	if err != nil {
		return apperr.BadRequest("Invalid variation id")
	}

	item := &entity.WishlistItem{
		ID:          uuid.New(),
		CustomerID:  customerID,
		ProductID:   productID,
		ListingID:   req.ListingID,
		VariationID: variationID,
		AddedAt:     s.now(),
	}

	if err := s.repo.Wishlist.Add(ctx, item); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return apperr.BadRequest("Product is already in your wishlist")
		}
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

func (s *cartService) RemoveFromWishlist(ctx context.Context, customerID, variationID uuid.UUID) error {
	if err := s.repo.Wishlist.Remove(ctx, customerID, variationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Wishlist item not found!")
		}
		return err
	}
	return nil
}
