package wire

import (
	"github.com/mroy35034/woo-com-server/internal/adaptor"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/pkg/middleware"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures the session user and address book routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/v1/user", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// Any role
		r.Get("/fetch-auth-user", userHandler.FetchAuthUser)

		// ==================== BUYER ROUTES ====================
		r.With(middleware.Buyer(repo.User, log)).Route("/address", func(r chi.Router) {
			r.Get("/", userHandler.ListAddresses)
			r.Post("/", userHandler.AddAddress)
			r.Put("/{addressID}", userHandler.UpdateAddress)
			r.Delete("/{addressID}", userHandler.DeleteAddress)
			r.Put("/{addressID}/default", userHandler.SelectDefaultAddress)
		})
	})
}
