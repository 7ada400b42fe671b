package wire

import (
	"github.com/mroy35034/woo-com-server/internal/adaptor"
	"github.com/mroy35034/woo-com-server/pkg/middleware"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register-new-user", authHandler.RegisterBuyer)
		r.Post("/register-new-seller", authHandler.RegisterSeller)
		r.Get("/verify-register-user", authHandler.VerifyAccount)
		r.Post("/verify-register-user", authHandler.VerifyAccount)
		r.Post("/resend-verification-code", authHandler.ResendCode)
		r.Post("/login", authHandler.Login)
		r.Post("/sign-out", authHandler.SignOut)
		r.Post("/check-user-authentication", authHandler.ForgotPassword)
		r.Post("/check-user-forgot-pwd-security-key", authHandler.CheckSecurityCode)
		r.Post("/user/set-new-password", authHandler.SetNewPassword)

		// ==================== PROTECTED ROUTES ====================
		r.With(middleware.Auth(config.JWT, log)).Post("/user/changed-password", authHandler.ChangePassword)
	})
}
