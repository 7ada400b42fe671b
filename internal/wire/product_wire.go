package wire

import (
	"github.com/mroy35034/woo-com-server/internal/adaptor"
	"github.com/mroy35034/woo-com-server/pkg/middleware"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// wireProduct configures the public storefront routes
func wireProduct(r chi.Router, productHandler *adaptor.ProductHandler, config *utils.Config) {
	r.Route("/api/v1/product", func(r chi.Router) {
		r.Get("/search", productHandler.Search)
		r.Get("/category", productHandler.ByCategory)
		r.Get("/store/home", productHandler.Home)
		r.Get("/count", productHandler.Count)
		r.Get("/{productID}/reviews", productHandler.Reviews)

		// inCart and inWishlist need the visitor when one is signed in
		r.With(middleware.OptionalAuth(config.JWT)).
			Get("/{productID}/variation/{variationID}", productHandler.Detail)
	})
}
