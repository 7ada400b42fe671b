package response

import (
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
)

type VerificationResponse struct {
	ReturnEmail           string     `json:"returnEmail"`
	VerificationExpiredAt *time.Time `json:"verificationExpiredAt,omitempty"`
}

type LoginResponse struct {
	UUID  string   `json:"uuid"`
	UData UserData `json:"u_data"`
	Token string   `json:"token"`
}

type SecurityCodeResponse struct {
	Email    string `json:"email"`
	LifeTime int64  `json:"lifeTime"`
}

type SecuritySessionResponse struct {
	Email           string `json:"email"`
	SecurityCode    string `json:"securityCode"`
	SessionLifeTime int64  `json:"sessionLifeTime"`
}

// UserData is the account as the client sees it. Which optional groups are
// present depends on the role.
type UserData struct {
	UUID            string               `json:"_uuid"`
	FullName        string               `json:"fullName"`
	Email           string               `json:"email"`
	Phone           *string              `json:"phone"`
	PhonePrefixCode string               `json:"phonePrefixCode"`
	HasPassword     bool                 `json:"hasPassword"`
	Role            entity.UserRole      `json:"role"`
	Gender          string               `json:"gender"`
	Dob             *string              `json:"dob"`
	AccountStatus   entity.AccountStatus `json:"accountStatus"`
	ContactEmail    string               `json:"contactEmail"`
	AuthProvider    string               `json:"authProvider"`
	IDFor           string               `json:"idFor,omitempty"`
	IsSeller        string               `json:"isSeller,omitempty"`
	Seller          *SellerData          `json:"seller,omitempty"`
	Buyer           *BuyerData           `json:"buyer,omitempty"`
}

type SellerData struct {
	Store     entity.StoreInfo `json:"storeInfos"`
	TotalSold int64            `json:"totalSold"`
}

type BuyerData struct {
	DefaultShippingAddress any   `json:"defaultShippingAddress"`
	ShoppingCartItems      int64 `json:"shoppingCartItems"`
}

// ProjectUser shapes the account for its role. defaultAddress and cartCount
// only apply to buyers.
func ProjectUser(user *entity.User, defaultAddress *entity.Address, cartCount int64) UserData {
	data := UserData{
		UUID:            user.UUID,
		FullName:        user.FullName,
		Email:           user.Email,
		Phone:           user.Phone,
		PhonePrefixCode: user.PhonePrefixCode,
		HasPassword:     user.HasPassword,
		Role:            user.Role,
		Gender:          user.Gender,
		Dob:             user.Dob,
		AccountStatus:   user.AccountStatus,
		ContactEmail:    user.ContactEmail,
		AuthProvider:    user.AuthProvider,
	}

	switch user.Role {
	case entity.RoleSeller:
		data.IDFor = user.IDFor
		if user.SellerStatus != nil {
			data.IsSeller = string(*user.SellerStatus)
		}
		data.Seller = &SellerData{Store: user.Store, TotalSold: user.TotalSold}
	case entity.RoleBuyer:
		data.IDFor = user.IDFor
		buyer := &BuyerData{DefaultShippingAddress: struct{}{}, ShoppingCartItems: cartCount}
		if defaultAddress != nil {
			buyer.DefaultShippingAddress = AddressToResponse(defaultAddress)
		}
		data.Buyer = buyer
	}

	return data
}
