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
	"github.com/mroy35034/woo-com-server/internal/templates"
	"github.com/mroy35034/woo-com-server/pkg/apperr"
	"github.com/mroy35034/woo-com-server/pkg/mailer"
	"github.com/mroy35034/woo-com-server/pkg/payment"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	msgShippingAddress = "Required shipping address !"
	msgNothingToBuy    = "Nothing for purchase ! Please add product in your cart."
	msgUnauthorized    = "Unauthorized access !"
	msgPaymentNotFound = "Payment not found !"
	msgOrderChanged    = "Your order changed after checkout, please checkout again !"
	msgItemNotFound    = "Order item not found!"
)

// Buyer identifies the session placing an order.
type Buyer struct {
	ID    uuid.UUID
	Email string
}

type OrderService interface {
	// Checkout opens a payment for every purchasable line of the buyer's cart.
	// claimedEmail is the email the client sent in the Authorization header.
	Checkout(ctx context.Context, buyer Buyer, claimedEmail string) (*response.CheckoutResponse, error)
	SingleCheckout(ctx context.Context, buyer Buyer, req *request.SingleCheckoutRequest) (*response.CheckoutResponse, error)
	ConfirmOrder(ctx context.Context, buyer Buyer, req *request.ConfirmOrderRequest) (*response.PlacedOrderResponse, error)
	SinglePurchase(ctx context.Context, buyer Buyer, req *request.SinglePurchaseRequest) (*response.PlacedOrderResponse, error)

	MyOrders(ctx context.Context, customerID uuid.UUID, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderItemResponse], error)
	CancelItem(ctx context.Context, customerID, itemID uuid.UUID) error

	SellerOrders(ctx context.Context, sellerID uuid.UUID, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderItemResponse], error)
	UpdateItemStatus(ctx context.Context, sellerID, itemID uuid.UUID, status entity.ItemStatus) error
}

type orderService struct {
	repo    *repository.Repository
	mail    mailer.Sender
	gateway payment.Gateway
	config  *utils.Config
	log     *zap.Logger
	now     clock
}

func NewOrderService(
	repo *repository.Repository,
	mail mailer.Sender,
	gateway payment.Gateway,
	config *utils.Config,
	log *zap.Logger,
) OrderService {
	return &orderService{
		repo:    repo,
		mail:    mail,
		gateway: gateway,
		config:  config,
		log:     log.With(zap.String("service", "order")),
		now:     time.Now,
	}
}

func (s *orderService) shippingAddress(ctx context.Context, customerID uuid.UUID) (*entity.Address, error) {
	address, err := s.repo.Address.FindDefault(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, apperr.BadRequest(msgShippingAddress)
	}
	return address, nil
}

// singleLine loads one purchase line and rejects it when the variation cannot
// cover the quantity right now.
func (s *orderService) singleLine(ctx context.Context, productID, variationID, listingID string, quantity int) (*query.CartLine, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, apperr.BadRequest("Invalid product id")
	}
	vid, err := uuid.Parse(variationID)
	if err != nil {
		return nil, apperr.BadRequest("Invalid variation id")
	}

	line, err := s.repo.Cart.FindSingleLine(ctx, pid, vid, quantity)
	if err != nil {
		return nil, err
	}
	if line == nil || line.ListingID != listingID {
		return nil, apperr.NotFound("Product not found!")
	}
	if !line.Purchasable() {
		return nil, apperr.BadRequest(msgOutOfStock)
	}
	return line, nil
}

func (s *orderService) Checkout(ctx context.Context, buyer Buyer, claimedEmail string) (*response.CheckoutResponse, error) {
	if claimedEmail != buyer.Email {
		return nil, apperr.Unauthorized(msgUnauthorized)
	}

	address, err := s.shippingAddress(ctx, buyer.ID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.Cart.FindLines(ctx, buyer.ID, true)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperr.BadRequest(msgNothingToBuy)
	}

	total := shapeLines(lines, address.AreaType)
	return s.openPayment(ctx, buyer, entity.OrderStateCart, lines, total)
}

func (s *orderService) SingleCheckout(ctx context.Context, buyer Buyer, req *request.SingleCheckoutRequest) (*response.CheckoutResponse, error) {
	address, err := s.shippingAddress(ctx, buyer.ID)
	if err != nil {
		return nil, err
	}

	line, err := s.singleLine(ctx, req.ProductID, req.VariationID, req.ListingID, req.Quantity)
	if err != nil {
		return nil, err
	}

	lines := []query.CartLine{*line}
	total := shapeLines(lines, address.AreaType)
	return s.openPayment(ctx, buyer, entity.OrderStateSingle, lines, total)
}

// openPayment creates the provider intent for total and records it so the
// order can later be placed against it once.
func (s *orderService) openPayment(
	ctx context.Context,
	buyer Buyer,
	state entity.OrderState,
	lines []query.CartLine,
	total decimal.Decimal,
) (*response.CheckoutResponse, error) {
	orderPaymentID := utils.GenerateOrderPaymentID()

	intent, err := s.gateway.CreateIntent(ctx, payment.IntentParams{
		Amount:         total,
		Currency:       s.config.Stripe.Currency,
		OrderPaymentID: orderPaymentID,
		CustomerEmail:  buyer.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	record := &entity.Payment{
		Base:            entity.NewBase(s.now()),
		OrderPaymentID:  orderPaymentID,
		PaymentIntentID: intent.ID,
		CustomerID:      buyer.ID,
		Amount:          total,
		Currency:        s.config.Stripe.Currency,
		State:           state,
		Status:          entity.PaymentRecordCreated,
	}
	if err := s.repo.Payment.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	s.log.Info("Checkout opened",
		zap.String("customer_id", buyer.ID.String()),
		zap.String("order_payment_id", orderPaymentID),
		zap.String("state", string(state)),
		zap.String("total", total.String()),
	)

	return &response.CheckoutResponse{
		OrderItems:     lines,
		TotalAmount:    total,
		ClientSecret:   intent.ClientSecret,
		OrderPaymentID: orderPaymentID,
	}, nil
}

// verifyPayment matches the finalising request to its checkout record and
// asks the provider how far the payment got.
func (s *orderService) verifyPayment(
	ctx context.Context,
	buyer Buyer,
	state entity.OrderState,
	orderPaymentID, intentID string,
) (*entity.Payment, entity.PaymentStatus, error) {
	record, err := s.repo.Payment.FindByOrderPaymentID(ctx, orderPaymentID)
	if err != nil {
		return nil, "", err
	}
	if record == nil || record.CustomerID != buyer.ID || record.PaymentIntentID != intentID || record.State != state {
		return nil, "", apperr.NotFound(msgPaymentNotFound)
	}
	if record.Status != entity.PaymentRecordCreated {
		return nil, "", apperr.Conflict("Order already placed for this payment !")
	}

	status, err := s.gateway.IntentStatus(ctx, intentID)
	if err != nil {
		return nil, "", fmt.Errorf("payment status: %w", err)
	}

	switch status {
	case payment.StatusSucceeded:
		return record, entity.PaymentPaid, nil
	case payment.StatusProcessing, payment.StatusRequiresCapture:
		return record, entity.PaymentPending, nil
	default:
		s.log.Warn("Payment not completed",
			zap.String("order_payment_id", orderPaymentID),
			zap.String("intent_status", status),
		)
		return nil, "", apperr.PaymentRequired("Payment not completed !")
	}
}

func (s *orderService) ConfirmOrder(ctx context.Context, buyer Buyer, req *request.ConfirmOrderRequest) (*response.PlacedOrderResponse, error) {
	record, paymentStatus, err := s.verifyPayment(ctx, buyer, entity.OrderStateCart, req.OrderPaymentID, req.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	address, err := s.shippingAddress(ctx, buyer.ID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.Cart.FindLines(ctx, buyer.ID, true)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperr.BadRequest(msgNothingToBuy)
	}

	total := shapeLines(lines, address.AreaType)
	if !total.Equal(record.Amount) {
		return nil, apperr.Conflict(msgOrderChanged)
	}

	order := s.buildOrder(buyer, entity.OrderStateCart, address, lines, total)
	order.OrderPaymentID = req.OrderPaymentID
	order.PaymentIntentID = req.PaymentIntentID
	order.PaymentMethodID = req.PaymentMethodID
	order.PaymentStatus = paymentStatus

	return s.place(ctx, order)
}

func (s *orderService) SinglePurchase(ctx context.Context, buyer Buyer, req *request.SinglePurchaseRequest) (*response.PlacedOrderResponse, error) {
	if req.CustomerEmail != buyer.Email {
		return nil, apperr.Unauthorized(msgUnauthorized)
	}

	record, paymentStatus, err := s.verifyPayment(ctx, buyer, entity.OrderStateSingle, req.OrderPaymentID, req.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	address, err := s.shippingAddress(ctx, buyer.ID)
	if err != nil {
		return nil, err
	}

	line, err := s.singleLine(ctx, req.ProductID, req.VariationID, req.ListingID, req.Quantity)
	if err != nil {
		if errors.Is(err, apperr.ErrBadRequest) {
			return nil, apperr.Conflict(msgOutOfStock)
		}
		return nil, err
	}

	lines := []query.CartLine{*line}
	total := shapeLines(lines, address.AreaType)
	if !total.Equal(record.Amount) {
		return nil, apperr.Conflict(msgOrderChanged)
	}

	order := s.buildOrder(buyer, entity.OrderStateSingle, address, lines, total)
	order.OrderPaymentID = req.OrderPaymentID
	order.PaymentIntentID = req.PaymentIntentID
	order.PaymentMethodID = req.PaymentMethodID
	order.PaymentStatus = paymentStatus

	return s.place(ctx, order)
}

func (s *orderService) buildOrder(
	buyer Buyer,
	state entity.OrderState,
	address *entity.Address,
	lines []query.CartLine,
	total decimal.Decimal,
) *entity.Order {
	now := s.now()
	order := &entity.Order{
		Base:            entity.NewBase(now),
		OrderID:         utils.GenerateOrderID(),
		CustomerID:      buyer.ID,
		CustomerEmail:   buyer.Email,
		State:           state,
		PaymentMode:     entity.PaymentModeCard,
		ShippingAddress: *address,
		TotalAmount:     total,
		Items:           make([]entity.OrderItem, 0, len(lines)),
	}

	for _, l := range lines {
		item := entity.OrderItem{
			Base:           entity.NewBase(now),
			TrackingID:     utils.GenerateTrackingID(),
			ProductID:      l.ProductID,
			ListingID:      l.ListingID,
			VariationID:    l.VariationID,
			Title:          l.Title,
			Slug:           l.Slug,
			Image:          l.Image,
			Brand:          l.Brand,
			SKU:            l.SKU,
			SellerID:       l.SellerID,
			SellerEmail:    l.SellerEmail,
			StoreName:      l.StoreName,
			Quantity:       l.Quantity,
			SellingPrice:   domain.ActualSellingPrice(l.Price, l.SellingPrice),
			BaseAmount:     l.BaseAmount,
			ShippingCharge: l.ShippingCharge,
			ItemStatus:     entity.ItemPlaced,
			OrderID:        order.OrderID,
			CustomerID:     buyer.ID,
			CustomerEmail:  buyer.Email,
		}
		if l.CartItemID != uuid.Nil {
			id := l.CartItemID
			item.CartItemID = &id
		}
		order.Items = append(order.Items, item)
	}

	return order
}

func (s *orderService) place(ctx context.Context, order *entity.Order) (*response.PlacedOrderResponse, error) {
	if err := s.repo.Order.Place(ctx, order); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, apperr.Conflict(msgOutOfStock)
		case errors.Is(err, repository.ErrPaymentUsed):
			return nil, apperr.Conflict("Order already placed for this payment !")
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.log.Info("Order placed",
		zap.String("order_id", order.OrderID),
		zap.String("customer_id", order.CustomerID.String()),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalAmount.String()),
	)

	s.notify(ctx, order)

	res := response.PlacedOrderToResponse(order)
	return &res, nil
}

// notify emails the buyer and every seller with lines in the order. The order
// is already stored, so delivery failures are only logged.
func (s *orderService) notify(ctx context.Context, order *entity.Order) {
	bySeller := make(map[string][]entity.OrderItem)
	for _, item := range order.Items {
		bySeller[item.SellerEmail] = append(bySeller[item.SellerEmail], item)
	}

	var g errgroup.Group

	g.Go(func() error {
		html, err := templates.BuyerOrder(order, s.config.Stripe.Currency)
		if err != nil {
			return err
		}
		return s.mail.Send(ctx, order.CustomerEmail, "Thanks for your order !", html)
	})

	for sellerEmail, items := range bySeller {
		if sellerEmail == "" {
			continue
		}
		g.Go(func() error {
			html, err := templates.SellerOrder(order, items)
			if err != nil {
				return err
			}
			return s.mail.Send(ctx, sellerEmail, "New order confirmed", html)
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error("Failed to send order emails",
			zap.Error(err),
			zap.String("order_id", order.OrderID),
		)
	}
}

func (s *orderService) listItems(ctx context.Context, filter query.OrderItemFilter, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderItemResponse], error) {
	filter.Status = req.Status
	filter.Limit = req.Limit()
	filter.Offset = req.Offset()

	items, err := s.repo.Order.FindItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Order.CountItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.OrderItemsToResponse(items), req.Page, filter.Limit, total), nil
}

func (s *orderService) MyOrders(ctx context.Context, customerID uuid.UUID, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderItemResponse], error) {
	return s.listItems(ctx, query.OrderItemFilter{CustomerID: &customerID}, req)
}

func (s *orderService) SellerOrders(ctx context.Context, sellerID uuid.UUID, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderItemResponse], error) {
	return s.listItems(ctx, query.OrderItemFilter{SellerID: &sellerID}, req)
}

// CancelItem lets the buyer cancel a line that has not left the seller yet.
// The units go back to stock in the same transaction.
func (s *orderService) CancelItem(ctx context.Context, customerID, itemID uuid.UUID) error {
	item, err := s.repo.Order.FindItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.CustomerID != customerID {
		return apperr.NotFound(msgItemNotFound)
	}
	if item.ItemStatus != entity.ItemPlaced {
		return apperr.BadRequest("Only placed orders can be canceled !")
	}

	err = s.repo.Order.TransitionItem(ctx, repository.ItemTransition{
		ItemID:       itemID,
		CustomerID:   &customerID,
		From:         []entity.ItemStatus{entity.ItemPlaced},
		To:           entity.ItemCanceled,
		RestoreStock: true,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.Conflict("Order item status changed, please reload !")
	}
	if err != nil {
		return err
	}

	s.log.Info("Order item canceled by buyer",
		zap.String("item_id", itemID.String()),
		zap.String("customer_id", customerID.String()),
	)
	return nil
}

func (s *orderService) UpdateItemStatus(ctx context.Context, sellerID, itemID uuid.UUID, status entity.ItemStatus) error {
	item, err := s.repo.Order.FindItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.SellerID != sellerID {
		return apperr.NotFound(msgItemNotFound)
	}
	if !domain.CanTransition(item.ItemStatus, status) {
		return apperr.BadRequest("Cannot change order status from %s to %s !", item.ItemStatus, status)
	}

	err = s.repo.Order.TransitionItem(ctx, repository.ItemTransition{
		ItemID:       itemID,
		SellerID:     &sellerID,
		From:         domain.PreviousStatuses(status),
		To:           status,
		RestoreStock: domain.RestoresStock(status),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.Conflict("Order item status changed, please reload !")
	}
	if err != nil {
		return err
	}

	s.log.Info("Order item status changed",
		zap.String("item_id", itemID.String()),
		zap.String("from", string(item.ItemStatus)),
		zap.String("to", string(status)),
	)
	return nil
}
