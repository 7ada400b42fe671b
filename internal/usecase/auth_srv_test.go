package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/dto/request"
	"github.com/mroy35034/woo-com-server/pkg/apperr"
	"github.com/mroy35034/woo-com-server/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(s *store, mail *fakeMailer) *authService {
	return NewAuthService(s.repository(), mail, testConfig(), testLogger()).(*authService)
}

func buyerRequest(email string) *request.BuyerRegisterRequest {
	return &request.BuyerRegisterRequest{
		FullName: "Test Buyer",
		Email:    email,
		Password: "abc1!",
		Gender:   "Male",
	}
}

func (s *store) userByEmail(email string) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func TestRegisterBuyer(t *testing.T) {
	s := newStore()
	mail := &fakeMailer{}
	svc := newAuth(s, mail)

	res, err := svc.RegisterBuyer(context.Background(), buyerRequest("Buyer@Example.com"))
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", res.ReturnEmail)
	require.NotNil(t, res.VerificationExpiredAt)

	user := s.userByEmail("buyer@example.com")
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleBuyer, user.Role)
	assert.Equal(t, entity.AccountInactive, user.AccountStatus)
	assert.Equal(t, entity.IDForBuy, user.IDFor)
	assert.Equal(t, entity.AuthProviderSystem, user.AuthProvider)
	assert.Equal(t, user.Email, user.ContactEmail)
	assert.Equal(t, byte('b'), user.UUID[0])
	require.NotNil(t, user.VerificationCode)
	assert.Len(t, *user.VerificationCode, 6)
	assert.NotEqual(t, "abc1!", user.PasswordHash)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "buyer@example.com", mail.sent[0].To)
	assert.Contains(t, mail.sent[0].HTML, *user.VerificationCode)
	assert.Contains(t, mail.sent[0].HTML, "mailer="+user.UUID)
}

func TestRegisterRejections(t *testing.T) {
	tests := []struct {
		name    string
		mailErr error
		seed    bool
		req     *request.BuyerRegisterRequest
		kind    error
		msg     string
	}{
		{
			name: "duplicate email",
			seed: true,
			req:  buyerRequest("taken@example.com"),
			kind: apperr.ErrBadRequest,
			msg:  msgUserExists,
		},
		{
			name: "empty password",
			req: &request.BuyerRegisterRequest{
				FullName: "x", Email: "empty@example.com",
			},
			kind: apperr.ErrBadRequest,
		},
		{
			name:    "email failure stores nothing",
			mailErr: errors.New("smtp down"),
			req:     buyerRequest("new@example.com"),
			kind:    apperr.ErrInternal,
			msg:     "Sorry registration failed !",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			if tt.seed {
				_, err := newAuth(s, &fakeMailer{}).RegisterBuyer(context.Background(), buyerRequest(tt.req.Email))
				require.NoError(t, err)
			}
			before := len(s.users)

			_, err := newAuth(s, &fakeMailer{err: tt.mailErr}).RegisterBuyer(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), err.Error())
			if tt.msg != "" {
				assert.Equal(t, tt.msg, err.Error())
			}
			assert.Len(t, s.users, before)
		})
	}
}

func TestRegisterSellerIsPending(t *testing.T) {
	s := newStore()
	svc := newAuth(s, &fakeMailer{})

	_, err := svc.RegisterSeller(context.Background(), &request.SellerRegisterRequest{
		Email:    "seller@example.com",
		Password: "s3ll#er",
		Store:    &request.StoreRequest{Name: "Gadget Hub"},
	})
	require.NoError(t, err)

	user := s.userByEmail("seller@example.com")
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleSeller, user.Role)
	assert.Equal(t, entity.IDForSell, user.IDFor)
	require.NotNil(t, user.SellerStatus)
	assert.Equal(t, entity.SellerPending, *user.SellerStatus)
	assert.Equal(t, "Gadget Hub", user.Store.Name)
	assert.Equal(t, byte('s'), user.UUID[0])
}

func TestRegisterPasswordRule(t *testing.T) {
	tests := []struct {
		name     string
		seller   bool
		password string
		wantErr  bool
	}{
		{"buyer without composition rule", false, "password123", false},
		{"seller meeting the rule", true, "s3ll#er", false},
		{"seller without special", true, "abcdef", true},
		{"seller too long", true, "password123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			svc := newAuth(s, &fakeMailer{})

			var err error
			if tt.seller {
				_, err = svc.RegisterSeller(context.Background(), &request.SellerRegisterRequest{
					Email:    "rule@example.com",
					Password: tt.password,
					Store:    &request.StoreRequest{Name: "Rule Store"},
				})
			} else {
				req := buyerRequest("rule@example.com")
				req.Password = tt.password
				_, err = svc.RegisterBuyer(context.Background(), req)
			}

			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrBadRequest)
				assert.Nil(t, s.userByEmail("rule@example.com"))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s.userByEmail("rule@example.com"))
		})
	}
}

func TestVerifyAccount(t *testing.T) {
	s := newStore()
	svc := newAuth(s, &fakeMailer{})
	_, err := svc.RegisterBuyer(context.Background(), buyerRequest("v@example.com"))
	require.NoError(t, err)
	user := s.userByEmail("v@example.com")
	code := *user.VerificationCode

	t.Run("wrong code", func(t *testing.T) {
		_, err := svc.VerifyAccount(context.Background(), &request.VerifyAccountRequest{
			Email: "v@example.com", VerificationCode: "000000x",
		})
		assert.EqualError(t, err, msgSessionExpired)
	})

	t.Run("expired code", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(6 * time.Minute) }
		defer func() { svc.now = time.Now }()

		_, err := svc.VerifyAccount(context.Background(), &request.VerifyAccountRequest{
			Email: "v@example.com", VerificationCode: code,
		})
		assert.EqualError(t, err, msgSessionExpired)
		assert.Equal(t, entity.AccountInactive, s.userByEmail("v@example.com").AccountStatus)
	})

	t.Run("link with uuid", func(t *testing.T) {
		res, err := svc.VerifyAccount(context.Background(), &request.VerifyAccountRequest{
			UUID: user.UUID, VerificationCode: code,
		})
		require.NoError(t, err)
		assert.Equal(t, "v@example.com", res.ReturnEmail)

		verified := s.userByEmail("v@example.com")
		assert.Equal(t, entity.AccountActive, verified.AccountStatus)
		assert.Nil(t, verified.VerificationCode)
	})

	t.Run("resend after activation", func(t *testing.T) {
		_, err := svc.ResendVerificationCode(context.Background(), "v@example.com")
		assert.EqualError(t, err, "Your account with v@example.com already active.")
	})
}

func seedActiveUser(t *testing.T, s *store, role entity.UserRole, email, password string) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &entity.User{
		Base:          entity.NewBase(time.Now()),
		UUID:          utils.GenerateUserUUID("b"),
		FullName:      "Seeded " + string(role),
		Email:         email,
		PasswordHash:  hash,
		HasPassword:   true,
		Role:          role,
		AccountStatus: entity.AccountActive,
	}
	if role == entity.RoleSeller {
		status := entity.SellerFulfilled
		user.SellerStatus = &status
		user.IDFor = entity.IDForSell
		user.Store = entity.StoreInfo{Name: "Seeded Store"}
	}
	if role == entity.RoleBuyer {
		user.IDFor = entity.IDForBuy
	}
	s.users[user.ID] = user
	return user
}

func TestLogin(t *testing.T) {
	s := newStore()
	mail := &fakeMailer{}
	svc := newAuth(s, mail)
	buyer := seedActiveUser(t, s, entity.RoleBuyer, "buyer@example.com", "abc1!")

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &request.LoginRequest{EmailOrPhone: "nobody@example.com", Password: "abc1!"})
		assert.EqualError(t, err, "User with nobody@example.com not found!")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &request.LoginRequest{EmailOrPhone: "buyer@example.com", Password: "zzz9!"})
		assert.EqualError(t, err, "Password didn't match !")
	})

	t.Run("success", func(t *testing.T) {
		res, err := svc.Login(context.Background(), &request.LoginRequest{EmailOrPhone: "buyer@example.com", Password: "abc1!"})
		require.NoError(t, err)
		require.NotNil(t, res.Login)
		assert.Nil(t, res.Verification)
		assert.Equal(t, buyer.UUID, res.Login.UUID)
		assert.True(t, res.ExpiresAt.After(time.Now().Add(15*time.Hour)))

		claims, err := utils.ParseToken("test-secret", res.Login.Token)
		require.NoError(t, err)
		assert.Equal(t, buyer.ID.String(), claims.UserID)
		assert.Equal(t, "BUYER", claims.Role)
	})

	t.Run("inactive account gets a new code", func(t *testing.T) {
		pending := seedActiveUser(t, s, entity.RoleBuyer, "pending@example.com", "abc1!")
		pending.AccountStatus = entity.AccountInactive

		res, err := svc.Login(context.Background(), &request.LoginRequest{EmailOrPhone: "pending@example.com", Password: "abc1!"})
		require.NoError(t, err)
		assert.Nil(t, res.Login)
		require.NotNil(t, res.Verification)
		assert.Equal(t, "pending@example.com", res.Verification.ReturnEmail)
		assert.Contains(t, mail.recipients(), "pending@example.com")
	})
}

func TestChangePassword(t *testing.T) {
	s := newStore()
	svc := newAuth(s, &fakeMailer{})
	user := seedActiveUser(t, s, entity.RoleBuyer, "cp@example.com", "abc1!")

	tests := []struct {
		name string
		req  request.ChangePasswordRequest
		msg  string
	}{
		{"missing", request.ChangePasswordRequest{}, "Required old password and new password !"},
		{"old mismatch", request.ChangePasswordRequest{OldPassword: "nope1!", NewPassword: "new2@x"}, "Password didn't match !"},
		{"ok", request.ChangePasswordRequest{OldPassword: "abc1!", NewPassword: "new2@x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ChangePassword(context.Background(), user.ID, &tt.req)
			if tt.msg != "" {
				assert.EqualError(t, err, tt.msg)
				return
			}
			require.NoError(t, err)
			assert.True(t, utils.CheckPasswordHash("new2@x", s.userByEmail("cp@example.com").PasswordHash))
		})
	}

	err := svc.ChangePassword(context.Background(), uuid.New(), &request.ChangePasswordRequest{OldPassword: "abc1!", NewPassword: "new2@x"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestForgotPasswordFlow(t *testing.T) {
	s := newStore()
	mail := &fakeMailer{}
	svc := newAuth(s, mail)
	seedActiveUser(t, s, entity.RoleBuyer, "forgot@example.com", "abc1!")

	_, err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	assert.EqualError(t, err, "Sorry user not found with this ghost@example.com")

	res, err := svc.ForgotPassword(context.Background(), "forgot@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5*60*1000), res.LifeTime)
	require.Len(t, s.codes, 1)
	code := s.codes[0].Code
	assert.Contains(t, mail.sent[len(mail.sent)-1].HTML, code)

	session, err := svc.CheckSecurityCode(context.Background(), &request.CheckSecurityCodeRequest{Email: "forgot@example.com", SecurityCode: code})
	require.NoError(t, err)
	assert.Equal(t, code, session.SecurityCode)
	assert.Positive(t, session.SessionLifeTime)

	set := &request.SetNewPasswordRequest{Email: "forgot@example.com", SecurityCode: code, Password: "new3#pw"}
	require.NoError(t, svc.SetNewPassword(context.Background(), set))
	assert.True(t, utils.CheckPasswordHash("new3#pw", s.userByEmail("forgot@example.com").PasswordHash))

	// a code works once
	err = svc.SetNewPassword(context.Background(), set)
	assert.EqualError(t, err, "Sorry ! your session is expired !")
}
