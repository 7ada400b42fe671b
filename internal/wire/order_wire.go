package wire

import (
	"github.com/mroy35034/woo-com-server/internal/adaptor"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/pkg/middleware"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireOrder configures buyer checkout and order history routes
func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/v1/order", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Buyer(repo.User, log))

		r.Post("/set-order", orderHandler.Checkout)
		r.Post("/single-checkout", orderHandler.SingleCheckout)
		r.Post("/confirm-order", orderHandler.ConfirmOrder)
		r.Post("/single-purchase", orderHandler.SinglePurchase)

		r.Get("/my-orders", orderHandler.MyOrders)
		r.Put("/items/{itemID}/cancel", orderHandler.CancelItem)
	})
}
