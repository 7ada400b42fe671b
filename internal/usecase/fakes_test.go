package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/pkg/payment"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// store is the in-memory state behind the fake repositories. One mutex
// guards everything so multi-row writes behave like a transaction.
type store struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	addresses map[uuid.UUID]*entity.Address
	codes     []*entity.SecurityCode
	catalog   map[uuid.UUID]query.CartLine // by variation id
	stock     map[uuid.UUID]int
	cart      []*entity.CartItem
	wishlist  []*entity.WishlistItem
	payments  map[string]*entity.Payment
	orders    []*entity.Order
	items     map[uuid.UUID]*entity.OrderItem
	completed map[uuid.UUID]bool // product ids with a completed item
	products  map[uuid.UUID]*entity.Product
	queue     map[string]*entity.QueueProduct
	reviews   []*entity.Review
}

func newStore() *store {
	return &store{
		users:     map[uuid.UUID]*entity.User{},
		addresses: map[uuid.UUID]*entity.Address{},
		catalog:   map[uuid.UUID]query.CartLine{},
		stock:     map[uuid.UUID]int{},
		payments:  map[string]*entity.Payment{},
		items:     map[uuid.UUID]*entity.OrderItem{},
		completed: map[uuid.UUID]bool{},
		products:  map[uuid.UUID]*entity.Product{},
		queue:     map[string]*entity.QueueProduct{},
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		User:         &fakeUsers{s: s},
		Address:      &fakeAddresses{s: s},
		SecurityCode: &fakeCodes{s: s},
		Product:      &fakeProducts{s: s},
		Queue:        &fakeQueue{s: s},
		Cart:         &fakeCart{s: s},
		Wishlist:     &fakeWishlist{s: s},
		Order:        &fakeOrders{s: s},
		Payment:      &fakePayments{s: s},
		Review:       &fakeReviews{s: s},
	}
}

// addLine puts a purchasable variation into the catalog.
func (s *store) addLine(price, sellingPrice string, available int, freeShipping bool, weight float64) query.CartLine {
	line := query.CartLine{
		ProductID:        uuid.New(),
		ListingID:        utils.GenerateListingID(),
		VariationID:      uuid.New(),
		Title:            "Item " + price,
		Slug:             "item",
		SKU:              "SKU-" + price,
		Brand:            "Acme",
		Price:            mustDecimal(price),
		SellingPrice:     mustDecimal(sellingPrice),
		VariationStatus:  entity.StatusActive,
		ProductStatus:    entity.StatusActive,
		IsFreeShipping:   freeShipping,
		VolumetricWeight: weight,
		SellerID:         uuid.New(),
		SellerEmail:      "seller@example.com",
		StoreName:        "Acme Store",
	}
	s.catalog[line.VariationID] = line
	s.stock[line.VariationID] = available
	return line
}

func (s *store) liveLine(vid uuid.UUID, quantity int) (query.CartLine, bool) {
	line, ok := s.catalog[vid]
	if !ok {
		return line, false
	}
	line.Available = s.stock[vid]
	line.Stock = entity.StockFor(line.Available)
	line.Quantity = quantity
	return line, true
}

// ==================== USERS ====================

type fakeUsers struct {
	repository.UserRepository
	s *store
}

func (f *fakeUsers) Create(_ context.Context, user *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Email == user.Email {
			return repository.ErrConflict
		}
	}
	cp := *user
	f.s.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) find(match func(*entity.User) bool) *entity.User {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (f *fakeUsers) FindByUUID(_ context.Context, userUUID string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.UUID == userUUID }), nil
}

func (f *fakeUsers) FindByEmailOrPhone(_ context.Context, value string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool {
		return u.Email == value || (u.Phone != nil && *u.Phone == value)
	}), nil
}

func (f *fakeUsers) ExistsByEmailOrPhone(_ context.Context, email string, phone *string) (bool, error) {
	u := f.find(func(u *entity.User) bool {
		return u.Email == email || (phone != nil && u.Phone != nil && *u.Phone == *phone)
	})
	return u != nil, nil
}

func (f *fakeUsers) update(id uuid.UUID, fn func(*entity.User) bool) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok || !fn(u) {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeUsers) UpdateVerificationCode(_ context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	return f.update(id, func(u *entity.User) bool {
		u.VerificationCode, u.VerificationExpiredAt = &code, &expiresAt
		return true
	})
}

func (f *fakeUsers) Activate(_ context.Context, id uuid.UUID) error {
	return f.update(id, func(u *entity.User) bool {
		u.AccountStatus = entity.AccountActive
		u.VerificationCode, u.VerificationExpiredAt = nil, nil
		return true
	})
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	return f.update(id, func(u *entity.User) bool {
		u.PasswordHash = hash
		return true
	})
}

func (f *fakeUsers) UpdateSellerStatus(_ context.Context, id uuid.UUID, from, to entity.SellerStatus) error {
	return f.update(id, func(u *entity.User) bool {
		if u.SellerStatus == nil || *u.SellerStatus != from {
			return false
		}
		u.SellerStatus = &to
		u.AccountStatus = entity.AccountActive
		return true
	})
}

func (f *fakeUsers) FindTopSellers(context.Context, int) ([]*entity.User, error) {
	return nil, nil
}

// ==================== ADDRESSES ====================

type fakeAddresses struct {
	repository.AddressRepository
	s *store
}

func (f *fakeAddresses) Create(_ context.Context, a *entity.Address) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a.IsDefault = true
	for _, other := range f.s.addresses {
		if other.UserID == a.UserID && other.IsDefault {
			a.IsDefault = false
		}
	}
	cp := *a
	f.s.addresses[a.ID] = &cp
	return nil
}

func (f *fakeAddresses) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Address, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if a, ok := f.s.addresses[id]; ok && a.UserID == userID {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAddresses) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Address
	for _, a := range f.s.addresses {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAddresses) FindDefault(_ context.Context, userID uuid.UUID) (*entity.Address, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, a := range f.s.addresses {
		if a.UserID == userID && a.IsDefault {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAddresses) Update(_ context.Context, a *entity.Address) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cur, ok := f.s.addresses[a.ID]
	if !ok || cur.UserID != a.UserID {
		return repository.ErrNotFound
	}
	cp := *a
	cp.IsDefault = cur.IsDefault
	f.s.addresses[a.ID] = &cp
	return nil
}

func (f *fakeAddresses) Delete(_ context.Context, userID, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if a, ok := f.s.addresses[id]; ok && a.UserID == userID {
		delete(f.s.addresses, id)
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakeAddresses) SetDefault(_ context.Context, userID, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	target, ok := f.s.addresses[id]
	if !ok || target.UserID != userID {
		return repository.ErrNotFound
	}
	for _, a := range f.s.addresses {
		if a.UserID == userID {
			a.IsDefault = a.ID == id
		}
	}
	return nil
}

// ==================== SECURITY CODES ====================

type fakeCodes struct {
	repository.SecurityCodeRepository
	s *store
}

func (f *fakeCodes) Create(_ context.Context, code *entity.SecurityCode) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *code
	f.s.codes = append(f.s.codes, &cp)
	return nil
}

func (f *fakeCodes) FindValid(_ context.Context, email, code string, purpose entity.CodePurpose) (*entity.SecurityCode, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i := len(f.s.codes) - 1; i >= 0; i-- {
		c := f.s.codes[i]
		if c.Email == email && c.Code == code && c.Purpose == purpose && !c.IsUsed && c.ExpiresAt.After(time.Now()) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCodes) MarkAsUsed(_ context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.codes {
		if c.ID == id && !c.IsUsed {
			c.IsUsed = true
			return nil
		}
	}
	return repository.ErrNotFound
}

// ==================== CART ====================

type fakeCart struct {
	repository.CartRepository
	s *store
}

func (f *fakeCart) Add(_ context.Context, item *entity.CartItem) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.cart {
		if c.CustomerID == item.CustomerID && c.VariationID == item.VariationID {
			return repository.ErrConflict
		}
	}
	cp := *item
	f.s.cart = append(f.s.cart, &cp)
	return nil
}

func (f *fakeCart) FindLines(_ context.Context, customerID uuid.UUID, purchasableOnly bool) ([]query.CartLine, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	lines := []query.CartLine{}
	for _, c := range f.s.cart {
		if c.CustomerID != customerID {
			continue
		}
		line, ok := f.s.liveLine(c.VariationID, c.Quantity)
		if !ok || (purchasableOnly && !line.Purchasable()) {
			continue
		}
		line.CartItemID = c.ID
		lines = append(lines, line)
	}
	return lines, nil
}

func (f *fakeCart) FindSingleLine(_ context.Context, productID, variationID uuid.UUID, quantity int) (*query.CartLine, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	line, ok := f.s.liveLine(variationID, quantity)
	if !ok || line.ProductID != productID {
		return nil, nil
	}
	return &line, nil
}

func (f *fakeCart) FindItem(_ context.Context, customerID, id uuid.UUID) (*entity.CartItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.cart {
		if c.ID == id && c.CustomerID == customerID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCart) Exists(_ context.Context, customerID, variationID uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.cart {
		if c.CustomerID == customerID && c.VariationID == variationID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCart) CountByCustomer(_ context.Context, customerID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, c := range f.s.cart {
		if c.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCart) UpdateQuantity(_ context.Context, customerID, id uuid.UUID, quantity int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.cart {
		if c.ID == id && c.CustomerID == customerID {
			c.Quantity = quantity
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCart) Remove(_ context.Context, customerID, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i, c := range f.s.cart {
		if c.ID == id && c.CustomerID == customerID {
			f.s.cart = append(f.s.cart[:i], f.s.cart[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeWishlist struct {
	repository.WishlistRepository
	s *store
}

func (f *fakeWishlist) Add(_ context.Context, item *entity.WishlistItem) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, w := range f.s.wishlist {
		if w.CustomerID == item.CustomerID && w.VariationID == item.VariationID {
			return repository.ErrConflict
		}
	}
	cp := *item
	f.s.wishlist = append(f.s.wishlist, &cp)
	return nil
}

func (f *fakeWishlist) Exists(_ context.Context, customerID, variationID uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, w := range f.s.wishlist {
		if w.CustomerID == customerID && w.VariationID == variationID {
			return true, nil
		}
	}
	return false, nil
}

// ==================== ORDERS ====================

type fakePayments struct {
	repository.PaymentRepository
	s *store
}

func (f *fakePayments) Create(_ context.Context, p *entity.Payment) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *p
	f.s.payments[p.OrderPaymentID] = &cp
	return nil
}

func (f *fakePayments) FindByOrderPaymentID(_ context.Context, id string) (*entity.Payment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if p, ok := f.s.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

type fakeOrders struct {
	repository.OrderRepository
	s *store
}

// Place checks everything before writing anything, like a rolled back
// transaction would leave it.
func (f *fakeOrders) Place(_ context.Context, order *entity.Order) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	p, ok := f.s.payments[order.OrderPaymentID]
	if !ok || p.CustomerID != order.CustomerID || p.Status != entity.PaymentRecordCreated {
		return repository.ErrPaymentUsed
	}
	for _, item := range order.Items {
		if f.s.stock[item.VariationID] < item.Quantity {
			return fmt.Errorf("variation %s: %w", item.VariationID, repository.ErrInsufficientStock)
		}
	}

	p.Status = entity.PaymentRecordConsumed
	for i := range order.Items {
		item := order.Items[i]
		f.s.stock[item.VariationID] -= item.Quantity
		item.OrderRowID = order.ID
		f.s.items[item.ID] = &item
	}
	if order.State == entity.OrderStateCart {
		kept := f.s.cart[:0]
		for _, c := range f.s.cart {
			bought := false
			for _, item := range order.Items {
				if c.CustomerID == order.CustomerID && c.VariationID == item.VariationID {
					bought = true
				}
			}
			if !bought {
				kept = append(kept, c)
			}
		}
		f.s.cart = kept
	}
	f.s.orders = append(f.s.orders, order)
	return nil
}

func (f *fakeOrders) FindItem(_ context.Context, id uuid.UUID) (*entity.OrderItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if item, ok := f.s.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeOrders) TransitionItem(_ context.Context, t repository.ItemTransition) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	item, ok := f.s.items[t.ItemID]
	if !ok {
		return repository.ErrNotFound
	}
	allowed := false
	for _, from := range t.From {
		if item.ItemStatus == from {
			allowed = true
		}
	}
	if !allowed {
		return repository.ErrNotFound
	}
	item.ItemStatus = t.To
	if t.RestoreStock {
		f.s.stock[item.VariationID] += item.Quantity
	}
	return nil
}

func (f *fakeOrders) HasCompletedItem(_ context.Context, _, productID uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.completed[productID], nil
}

// ==================== CATALOG ====================

type fakeProducts struct {
	repository.ProductRepository
	s *store
}

func (f *fakeProducts) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if p, ok := f.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProducts) IncrementViews(_ context.Context, id uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.products[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	p.Views++
	return p.Views, nil
}

func (f *fakeProducts) UpdateScore(_ context.Context, id uuid.UUID, score float64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if p, ok := f.s.products[id]; ok {
		p.Score = score
	}
	return nil
}

func (f *fakeProducts) FindRelated(context.Context, []string, uuid.UUID, int) ([]query.ProductCard, error) {
	return []query.ProductCard{}, nil
}

func (f *fakeProducts) UpdateStock(_ context.Context, _, _, variationID uuid.UUID, available int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.stock[variationID]; !ok {
		return repository.ErrNotFound
	}
	f.s.stock[variationID] = available
	return nil
}

func (f *fakeProducts) FindTopSold(_ context.Context, _ *uuid.UUID, _ int) ([]query.SoldProduct, error) {
	return []query.SoldProduct{{Title: "a", Sold: 4}, {Title: "b", Sold: 2}, {Title: "c", Sold: 1}}, nil
}

// FindCarousel hands back as many cards as the caller asked for.
func (f *fakeProducts) FindCarousel(_ context.Context, kind query.Carousel, limit int) ([]query.ProductCard, error) {
	cards := make([]query.ProductCard, limit)
	for i := range cards {
		cards[i].Title = string(kind)
	}
	return cards, nil
}

type fakeQueue struct {
	repository.QueueRepository
	s *store
}

func (f *fakeQueue) Create(_ context.Context, item *entity.QueueProduct) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.queue[item.ListingID]; ok {
		return repository.ErrConflict
	}
	cp := *item
	f.s.queue[item.ListingID] = &cp
	return nil
}

func (f *fakeQueue) Promote(_ context.Context, listingID string, build func(*entity.QueueProduct) (*entity.Product, error)) (*entity.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	item, ok := f.s.queue[listingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, p := range f.s.products {
		if p.ListingID == listingID {
			return nil, repository.ErrConflict
		}
	}
	product, err := build(item)
	if err != nil {
		return nil, err
	}
	f.s.products[product.ID] = product
	delete(f.s.queue, listingID)
	return product, nil
}

type fakeReviews struct {
	repository.ReviewRepository
	s *store
}

func (f *fakeReviews) Create(_ context.Context, review *entity.Review, rate repository.RateFunc) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.products[review.ProductID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, r := range f.s.reviews {
		if r.UserID == review.UserID && r.ProductID == review.ProductID {
			return repository.ErrConflict
		}
	}
	p.Rating, p.RatingAverage = rate(p.Rating, review.Rating)
	f.s.reviews = append(f.s.reviews, review)
	return nil
}

func (f *fakeReviews) FindByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.reviews {
		if r.UserID == userID && r.ProductID == productID {
			return r, nil
		}
	}
	return nil, nil
}

// ==================== OUTSIDE WORLD ====================

type sentMail struct {
	To, Subject, HTML string
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, html})
	return nil
}

func (m *fakeMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sent))
	for i, s := range m.sent {
		out[i] = s.To
	}
	return out
}

type fakeGateway struct {
	mu      sync.Mutex
	status  string
	n       int
	amounts map[string]int64
}

func (g *fakeGateway) CreateIntent(_ context.Context, p payment.IntentParams) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	id := fmt.Sprintf("pi_%d", g.n)
	if g.amounts == nil {
		g.amounts = map[string]int64{}
	}
	g.amounts[id] = payment.MinorUnits(p.Amount)
	return &payment.Intent{
		ID:             id,
		ClientSecret:   id + "_secret",
		OrderPaymentID: p.OrderPaymentID,
		AmountMinor:    g.amounts[id],
		Status:         "requires_payment_method",
	}, nil
}

func (g *fakeGateway) IntentStatus(_ context.Context, intentID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.amounts[intentID]; !ok {
		return "", errors.New("no such payment intent")
	}
	return g.status, nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{BackendURL: "http://localhost:5000/"},
		JWT: utils.JWTConfig{Secret: "test-secret", CookieName: "token", CookieMaxAge: 57600000},
		Code: utils.CodeConfig{
			Length:                    6,
			VerificationExpiryMinutes: 5,
			SecurityExpiryMinutes:     5,
		},
		Stripe: utils.StripeConfig{Currency: "usd"},
	}
}

func testLogger() *zap.Logger { return zap.NewNop() }

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }
