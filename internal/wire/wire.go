// internal/wire/wire.go
package wire

import (
	"net/http"

	"github.com/mroy35034/woo-com-server/internal/adaptor"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/internal/usecase"
	"github.com/mroy35034/woo-com-server/pkg/mailer"
	"github.com/mroy35034/woo-com-server/pkg/middleware"
	"github.com/mroy35034/woo-com-server/pkg/payment"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes
func Wiring(
	repo *repository.Repository,
	mail mailer.Sender,
	gateway payment.Gateway,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, mail, gateway, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.ClientURL))

	wireAuth(r, handler.Auth, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireCart(r, handler.Cart, repo, config, logger)
	wireOrder(r, handler.Order, repo, config, logger)
	wireProduct(r, handler.Product, config)
	wireReview(r, handler.Review, repo, config, logger)
	wireSeller(r, handler.Seller, handler.Order, repo, config, logger)
	wireAdmin(r, handler.Admin, repo, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
