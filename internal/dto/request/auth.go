package request

type StoreRequest struct {
	Name     string `json:"storeName" validate:"omitempty,max=120"`
	Category string `json:"storeCategory" validate:"omitempty,max=80"`
	License  string `json:"storeLicense" validate:"omitempty,max=80"`
	Phone    string `json:"storePhone" validate:"omitempty,max=20"`
	Address  string `json:"storeAddress" validate:"omitempty,max=255"`
}

type BuyerRegisterRequest struct {
	FullName        string  `json:"fullName" validate:"required,min=2,max=120"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	PhonePrefixCode string  `json:"phonePrefixCode" validate:"omitempty,max=8"`
	Password        string  `json:"password" validate:"required"`
	Gender          string  `json:"gender" validate:"omitempty,oneof=Male Female Others"`
	Dob             *string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type SellerRegisterRequest struct {
	FullName        string        `json:"fullName" validate:"omitempty,max=120"`
	Email           string        `json:"email" validate:"required,email"`
	Phone           *string       `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	PhonePrefixCode string        `json:"phonePrefixCode" validate:"omitempty,max=8"`
	Password        string        `json:"password" validate:"required"`
	Gender          string        `json:"gender" validate:"omitempty,oneof=Male Female Others"`
	Dob             *string       `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Store           *StoreRequest `json:"store,omitempty"`
}

// VerifyAccountRequest is filled from the body, or from the token and mailer
// query parameters of the emailed link.
type VerifyAccountRequest struct {
	Email            string `json:"email" validate:"omitempty,email"`
	UUID             string `json:"mailer"`
	VerificationCode string `json:"verificationCode" validate:"required"`
}

type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckSecurityCodeRequest struct {
	Email        string `json:"email" validate:"required,email"`
	SecurityCode string `json:"securityCode" validate:"required"`
}

type SetNewPasswordRequest struct {
	Email        string `json:"email" validate:"required,email"`
	SecurityCode string `json:"securityCode" validate:"required"`
	Password     string `json:"password" validate:"required"`
}
