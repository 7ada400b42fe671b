package wire

import (
	"github.com/mroy35034/woo-com-server/internal/adaptor"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/pkg/middleware"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAdmin configures moderation routes for ADMIN and OWNER accounts
func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log)) // Must be authenticated
		r.Use(middleware.Admin(repo.User, log)) // Must be admin or owner

		r.Get("/dashboard", adminHandler.Dashboard)
		r.Get("/overview", adminHandler.Overview)
		r.Post("/queue/{listingID}/take", adminHandler.TakeProduct)
		r.Put("/sellers/{userID}/verify", adminHandler.VerifySeller)
	})
}
