package wire

import (
	"github.com/mroy35034/woo-com-server/internal/adaptor"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/pkg/middleware"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCart configures cart and wishlist routes, buyers only
func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Buyer(repo.User, log))

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/", cartHandler.AddToCart)
			r.Put("/{cartItemID}", cartHandler.UpdateQuantity)
			r.Delete("/{cartItemID}", cartHandler.RemoveFromCart)
		})

		r.Route("/api/v1/wishlist", func(r chi.Router) {
			r.Get("/", cartHandler.GetWishlist)
			r.Post("/", cartHandler.AddToWishlist)
			r.Delete("/{variationID}", cartHandler.RemoveFromWishlist)
		})
	})
}
