package wire

import (
	"github.com/mroy35034/woo-com-server/internal/adaptor"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/pkg/middleware"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireSeller configures catalog management and fulfilment routes
func wireSeller(
	r chi.Router,
	sellerHandler *adaptor.SellerHandler,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/v1/seller", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Seller(repo.User, log))

		r.Get("/dashboard", sellerHandler.Dashboard)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", sellerHandler.ManageProducts)
			r.Post("/", sellerHandler.CreateListing)
			r.Put("/queue/{listingID}", sellerHandler.UpdateQueuedListing)

			r.Route("/{productID}", func(r chi.Router) {
				r.Put("/", sellerHandler.UpdateProduct)
				r.Put("/publish", sellerHandler.PublishProduct)
				r.Delete("/", sellerHandler.DeleteProduct)

				r.Post("/variations", sellerHandler.AddVariation)
				r.Put("/variations/{variationID}", sellerHandler.UpdateVariation)
				r.Delete("/variations/{variationID}", sellerHandler.DeleteVariation)
				r.Put("/variations/{variationID}/stock", sellerHandler.UpdateStock)
			})
		})

		r.Get("/orders", orderHandler.SellerOrders)
		r.Put("/orders/items/{itemID}/status", orderHandler.UpdateItemStatus)
	})
}
