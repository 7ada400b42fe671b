package repository

import (
	"github.com/mroy35034/woo-com-server/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Address      AddressRepository
	SecurityCode SecurityCodeRepository
	Product      ProductRepository
	Queue        QueueRepository
	Cart         CartRepository
	Wishlist     WishlistRepository
	Order        OrderRepository
	Payment      PaymentRepository
	Review       ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Address:      NewAddressRepository(db, log),
		SecurityCode: NewSecurityCodeRepository(db, log),
		Product:      NewProductRepository(db, log),
		Queue:        NewQueueRepository(db, log),
		Cart:         NewCartRepository(db, log),
		Wishlist:     NewWishlistRepository(db, log),
		Order:        NewOrderRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Review:       NewReviewRepository(db, log),
	}
}
