package usecase

import (
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/pkg/mailer"
	"github.com/mroy35034/woo-com-server/pkg/payment"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Cart    CartService
	Order   OrderService
	Product ProductService
	Seller  SellerService
	Admin   AdminService
	Review  ReviewService
}

func NewService(
	repo *repository.Repository,
	mail mailer.Sender,
	gateway payment.Gateway,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, mail, config, log),
		User:    NewUserService(repo, log),
		Cart:    NewCartService(repo, log),
		Order:   NewOrderService(repo, mail, gateway, config, log),
		Product: NewProductService(repo, log),
		Seller:  NewSellerService(repo, log),
		Admin:   NewAdminService(repo, mail, log),
		Review:  NewReviewService(repo, log),
	}
}

// clock is swapped in tests that depend on expiry.
type clock func() time.Time
