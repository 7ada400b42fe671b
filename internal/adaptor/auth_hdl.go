package adaptor

import (
	"net/http"

	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/usecase"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	jwt     utils.JWTConfig
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, jwt utils.JWTConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		jwt:     jwt,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// RegisterBuyer handles POST /api/v1/auth/register-new-user
func (h *AuthHandler) RegisterBuyer(w http.ResponseWriter, r *http.Request) {
	var req request.BuyerRegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.RegisterBuyer(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register buyer")
		return
	}

	utils.ResponseCreated(w, "Thanks for your information. Verification code was send to "+res.ReturnEmail, res)
}

// RegisterSeller handles POST /api/v1/auth/register-new-seller
func (h *AuthHandler) RegisterSeller(w http.ResponseWriter, r *http.Request) {
	var req request.SellerRegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.RegisterSeller(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register seller")
		return
	}

	utils.ResponseCreated(w, "Thanks for your information. Verification code was send to "+res.ReturnEmail, res)
}

// VerifyAccount handles POST /api/v1/auth/verify-register-user and the GET
// link from the verification email (?token=<code>&mailer=<uuid>).
func (h *AuthHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyAccountRequest

	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req.VerificationCode = q.Get("token")
		req.UUID = q.Get("mailer")
		if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
			utils.ResponseBadRequest(w, "Validation failed", validationErrors)
			return
		}
	} else if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.VerifyAccount(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify account")
		return
	}

	utils.ResponseSuccess(w, "Account verified. Please login now.", res)
}

// ResendCode handles POST /api/v1/auth/resend-verification-code
func (h *AuthHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var req request.ResendCodeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.ResendVerificationCode(r.Context(), req.Email)
	if err != nil {
		handleServiceError(w, h.log, err, "resend verification code")
		return
	}

	utils.ResponseSuccess(w, "Verification code was send to "+res.ReturnEmail, res)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	if res.Verification != nil {
		utils.ResponseSuccess(w, "Verification code was send to "+res.Verification.ReturnEmail, res.Verification)
		return
	}

	utils.SetSessionCookie(w, h.jwt.CookieName, res.Login.Token, h.jwt.CookieMaxAge)
	utils.ResponseSuccess(w, "Login success", res.Login)
}

// SignOut handles POST /api/v1/auth/sign-out
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.jwt.CookieName); err != nil || c.Value == "" {
		utils.ResponseBadRequest(w, "You already logged out !", nil)
		return
	}

	utils.ClearSessionCookie(w, h.jwt.CookieName)
	utils.ResponseSuccess(w, "Logged out successfully", nil)
}

// ChangePassword handles POST /api/v1/auth/user/changed-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password updated successfully.", nil)
}

// ForgotPassword handles POST /api/v1/auth/check-user-authentication
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		handleServiceError(w, h.log, err, "forgot password")
		return
	}

	utils.ResponseSuccess(w, "We have just send you a security code on "+res.Email, res)
}

// CheckSecurityCode handles POST /api/v1/auth/check-user-forgot-pwd-security-key
func (h *AuthHandler) CheckSecurityCode(w http.ResponseWriter, r *http.Request) {
	var req request.CheckSecurityCodeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.service.CheckSecurityCode(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check security code")
		return
	}

	utils.ResponseSuccess(w, "Success", res)
}

// SetNewPassword handles POST /api/v1/auth/user/set-new-password
func (h *AuthHandler) SetNewPassword(w http.ResponseWriter, r *http.Request) {
	var req request.SetNewPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.SetNewPassword(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "set new password")
		return
	}

	utils.ResponseSuccess(w, "Password updated successfully.", nil)
}
