package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/repository"
	"github.com/mroy35034/woo-com-server/internal/domain"
	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/internal/dto/response"
	"github.com/mroy35034/woo-com-server/internal/templates"
	"github.com/mroy35034/woo-com-server/pkg/apperr"
	"github.com/mroy35034/woo-com-server/pkg/mailer"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgUserExists     = "User already exists, Please try another phone number or email address !"
	msgSessionExpired = "Session expired ! resend code .."
)

// LoginResult carries either a session or, for accounts still waiting for
// verification, the details of the freshly sent code.
type LoginResult struct {
	Login        *response.LoginResponse
	Verification *response.VerificationResponse
	ExpiresAt    time.Time
}

type AuthService interface {
	RegisterBuyer(ctx context.Context, req *request.BuyerRegisterRequest) (*response.VerificationResponse, error)
	RegisterSeller(ctx context.Context, req *request.SellerRegisterRequest) (*response.VerificationResponse, error)
	VerifyAccount(ctx context.Context, req *request.VerifyAccountRequest) (*response.VerificationResponse, error)
	ResendVerificationCode(ctx context.Context, email string) (*response.VerificationResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*LoginResult, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, email string) (*response.SecurityCodeResponse, error)
	CheckSecurityCode(ctx context.Context, req *request.CheckSecurityCodeRequest) (*response.SecuritySessionResponse, error)
	SetNewPassword(ctx context.Context, req *request.SetNewPasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	mail   mailer.Sender
	config *utils.Config
	log    *zap.Logger
	now    clock
}

func NewAuthService(
	repo *repository.Repository,
	mail mailer.Sender,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		mail:   mail,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

type newAccount struct {
	prefix          string
	role            entity.UserRole
	idFor           string
	fullName        string
	email           string
	phone           *string
	phonePrefixCode string
	password        string
	gender          string
	dob             *string
	sellerStatus    *entity.SellerStatus
	store           entity.StoreInfo
}

func (s *authService) RegisterBuyer(ctx context.Context, req *request.BuyerRegisterRequest) (*response.VerificationResponse, error) {
	return s.register(ctx, newAccount{
		prefix:          "b",
		role:            entity.RoleBuyer,
		idFor:           entity.IDForBuy,
		fullName:        req.FullName,
		email:           req.Email,
		phone:           req.Phone,
		phonePrefixCode: req.PhonePrefixCode,
		password:        req.Password,
		gender:          req.Gender,
		dob:             req.Dob,
	})
}

func (s *authService) RegisterSeller(ctx context.Context, req *request.SellerRegisterRequest) (*response.VerificationResponse, error) {
	pending := entity.SellerPending
	acc := newAccount{
		prefix:          "s",
		role:            entity.RoleSeller,
		idFor:           entity.IDForSell,
		fullName:        req.FullName,
		email:           req.Email,
		phone:           req.Phone,
		phonePrefixCode: req.PhonePrefixCode,
		password:        req.Password,
		gender:          req.Gender,
		dob:             req.Dob,
		sellerStatus:    &pending,
	}
	if req.Store != nil {
		acc.store = entity.StoreInfo{
			Name:     req.Store.Name,
			Category: req.Store.Category,
			License:  req.Store.License,
			Phone:    req.Store.Phone,
			Address:  req.Store.Address,
		}
	}

	return s.register(ctx, acc)
}

// register stores the account only after the verification email went out.
func (s *authService) register(ctx context.Context, acc newAccount) (*response.VerificationResponse, error) {
	// only seller passwords carry the composition rule
	if acc.role == entity.RoleSeller {
		if err := domain.ValidatePassword(acc.password); err != nil {
			return nil, apperr.BadRequest("%s", err.Error())
		}
	} else if acc.password == "" {
		return nil, apperr.BadRequest("%s", domain.ErrPasswordRequired.Error())
	}

	email := strings.ToLower(strings.TrimSpace(acc.email))
	if acc.phone != nil && strings.TrimSpace(*acc.phone) == "" {
		acc.phone = nil
	}

	exists, err := s.repo.User.ExistsByEmailOrPhone(ctx, email, acc.phone)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, apperr.BadRequest(msgUserExists)
	}

	hashed, err := utils.HashPassword(acc.password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	code := utils.GenerateOTP(s.config.Code.Length)
	expiresAt := now.Add(time.Duration(s.config.Code.VerificationExpiryMinutes) * time.Minute)

	user := &entity.User{
		Base:                  entity.NewBase(now),
		UUID:                  utils.GenerateUserUUID(acc.prefix),
		FullName:              acc.fullName,
		Email:                 email,
		Phone:                 acc.phone,
		PhonePrefixCode:       acc.phonePrefixCode,
		PasswordHash:          hashed,
		HasPassword:           true,
		Role:                  acc.role,
		Gender:                acc.gender,
		Dob:                   acc.dob,
		AccountStatus:         entity.AccountInactive,
		ContactEmail:          email,
		AuthProvider:          entity.AuthProviderSystem,
		IDFor:                 acc.idFor,
		VerificationCode:      &code,
		VerificationExpiredAt: &expiresAt,
		SellerStatus:          acc.sellerStatus,
		Store:                 acc.store,
	}

	if err := s.sendVerification(ctx, user.Email, user.UUID, code, expiresAt); err != nil {
		s.log.Error("Registration email failed", zap.Error(err), zap.String("email", user.Email))
		return nil, apperr.Internal("Sorry registration failed !")
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.BadRequest(msgUserExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return &response.VerificationResponse{ReturnEmail: user.Email, VerificationExpiredAt: &expiresAt}, nil
}

func (s *authService) sendVerification(ctx context.Context, email, userUUID, code string, expiresAt time.Time) error {
	link := templates.VerificationLink(s.config.App.BackendURL, code, userUUID)
	html, err := templates.VerifyEmail(link, code, expiresAt)
	if err != nil {
		return err
	}
	return s.mail.Send(ctx, email, "Verify email address", html)
}

func (s *authService) VerifyAccount(ctx context.Context, req *request.VerifyAccountRequest) (*response.VerificationResponse, error) {
	if req.VerificationCode == "" {
		return nil, apperr.BadRequest("Required verification code !")
	}

	var (
		user *entity.User
		err  error
	)
	switch {
	case req.Email != "":
		user, err = s.repo.User.FindByEmail(ctx, strings.ToLower(req.Email))
	case req.UUID != "":
		user, err = s.repo.User.FindByUUID(ctx, req.UUID)
	default:
		return nil, apperr.BadRequest("Required email address !")
	}
	if err != nil {
		return nil, err
	}

	if user == nil || user.VerificationCode == nil || *user.VerificationCode != req.VerificationCode {
		return nil, apperr.BadRequest(msgSessionExpired)
	}
	if user.VerificationExpiredAt == nil || s.now().After(*user.VerificationExpiredAt) {
		return nil, apperr.BadRequest(msgSessionExpired)
	}

	if err := s.repo.User.Activate(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("activate user: %w", err)
	}

	s.log.Info("Account verified", zap.String("user_id", user.ID.String()))
	return &response.VerificationResponse{ReturnEmail: user.Email}, nil
}

func (s *authService) ResendVerificationCode(ctx context.Context, email string) (*response.VerificationResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.BadRequest("Required email address !")
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.BadRequest("Sorry user not found !")
	}
	if user.IsActive() && user.VerificationCode == nil {
		return nil, apperr.BadRequest("Your account with %s already active.", email)
	}

	return s.issueVerificationCode(ctx, user)
}

func (s *authService) issueVerificationCode(ctx context.Context, user *entity.User) (*response.VerificationResponse, error) {
	code := utils.GenerateOTP(s.config.Code.Length)
	expiresAt := s.now().Add(time.Duration(s.config.Code.VerificationExpiryMinutes) * time.Minute)

	if err := s.repo.User.UpdateVerificationCode(ctx, user.ID, code, expiresAt); err != nil {
		return nil, fmt.Errorf("update verification code: %w", err)
	}

	if err := s.sendVerification(ctx, user.Email, user.UUID, code, expiresAt); err != nil {
		s.log.Error("Verification email failed", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("send verification code: %w", err)
	}

	return &response.VerificationResponse{ReturnEmail: user.Email, VerificationExpiredAt: &expiresAt}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*LoginResult, error) {
	identifier := strings.TrimSpace(req.EmailOrPhone)
	if identifier == "" {
		return nil, apperr.BadRequest("Invalid string type !")
	}

	user, err := s.repo.User.FindByEmailOrPhone(ctx, strings.ToLower(identifier))
	if err == nil && user == nil && strings.ToLower(identifier) != identifier {
		user, err = s.repo.User.FindByEmailOrPhone(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.BadRequest("User with %s not found!", identifier)
	}

	if !user.IsActive() || user.VerificationCode != nil {
		verification, err := s.issueVerificationCode(ctx, user)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Verification: verification}, nil
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed - wrong password", zap.String("user_id", user.ID.String()))
		return nil, apperr.BadRequest("Password didn't match !")
	}

	ttl := time.Duration(s.config.JWT.CookieMaxAge) * time.Millisecond
	token, expiresAt, err := utils.GenerateToken(s.config.JWT.Secret, utils.Claims{
		UserID: user.ID.String(),
		UUID:   user.UUID,
		Email:  user.Email,
		Role:   string(user.Role),
	}, ttl)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	data, err := projectUser(ctx, s.repo, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		Login:     &response.LoginResponse{UUID: user.UUID, UData: data, Token: token},
		ExpiresAt: expiresAt,
	}, nil
}

// projectUser loads what the role projection needs and shapes the account.
func projectUser(ctx context.Context, repo *repository.Repository, user *entity.User) (response.UserData, error) {
	if user.Role != entity.RoleBuyer {
		return response.ProjectUser(user, nil, 0), nil
	}

	address, err := repo.Address.FindDefault(ctx, user.ID)
	if err != nil {
		return response.UserData{}, err
	}
	count, err := repo.Cart.CountByCustomer(ctx, user.ID)
	if err != nil {
		return response.UserData{}, err
	}

	return response.ProjectUser(user, address, count), nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperr.BadRequest("Required old password and new password !")
	}
	if err := domain.ValidatePassword(req.NewPassword); err != nil {
		return apperr.BadRequest("%s", err.Error())
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("User not found!")
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperr.BadRequest("Password didn't match !")
	}

	return s.updatePassword(ctx, user.ID, req.NewPassword)
}

func (s *authService) updatePassword(ctx context.Context, userID uuid.UUID, password string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.User.UpdatePassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found!")
		}
		return err
	}

	s.log.Info("Password updated", zap.String("user_id", userID.String()))
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) (*response.SecurityCodeResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("Sorry user not found with this %s", email)
	}

	now := s.now()
	lifeTime := time.Duration(s.config.Code.SecurityExpiryMinutes) * time.Minute
	code := &entity.SecurityCode{
		BaseSimple: entity.NewBaseSimple(now),
		UserID:     user.ID,
		Email:      user.Email,
		Code:       utils.GenerateOTP(s.config.Code.Length),
		Purpose:    entity.CodePasswordReset,
		ExpiresAt:  now.Add(lifeTime),
	}

	html, err := templates.SecurityCode(code.Code, s.config.Code.SecurityExpiryMinutes)
	if err != nil {
		return nil, err
	}
	if err := s.mail.Send(ctx, user.Email, "Reset your WooKart Password", html); err != nil {
		s.log.Error("Security code email failed", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("send security code: %w", err)
	}

	if err := s.repo.SecurityCode.Create(ctx, code); err != nil {
		return nil, err
	}

	return &response.SecurityCodeResponse{Email: user.Email, LifeTime: lifeTime.Milliseconds()}, nil
}

func (s *authService) CheckSecurityCode(ctx context.Context, req *request.CheckSecurityCodeRequest) (*response.SecuritySessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	code, err := s.repo.SecurityCode.FindValid(ctx, email, req.SecurityCode, entity.CodePasswordReset)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, apperr.BadRequest("Invalid security code !")
	}

	return &response.SecuritySessionResponse{
		Email:           code.Email,
		SecurityCode:    code.Code,
		SessionLifeTime: code.ExpiresAt.Sub(s.now()).Milliseconds(),
	}, nil
}

func (s *authService) SetNewPassword(ctx context.Context, req *request.SetNewPasswordRequest) error {
	if err := domain.ValidatePassword(req.Password); err != nil {
		return apperr.BadRequest("%s", err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	code, err := s.repo.SecurityCode.FindValid(ctx, email, req.SecurityCode, entity.CodePasswordReset)
	if err != nil {
		return err
	}
	if code == nil {
		return apperr.BadRequest("Sorry ! your session is expired !")
	}

	if err := s.repo.SecurityCode.MarkAsUsed(ctx, code.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.BadRequest("Sorry ! your session is expired !")
		}
		return err
	}

	return s.updatePassword(ctx, code.UserID, req.Password)
}
