package entity

import "time"

type UserRole string

const (
	RoleBuyer  UserRole = "BUYER"
	RoleSeller UserRole = "SELLER"
	RoleAdmin  UserRole = "ADMIN"
	RoleOwner  UserRole = "OWNER"
)

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

type SellerStatus string

const (
	SellerPending   SellerStatus = "pending"
	SellerFulfilled SellerStatus = "fulfilled"
)

const (
	IDForBuy  = "buy"
	IDForSell = "sell"

	AuthProviderSystem = "system"
)

type User struct {
	Base
	UUID                  string        `db:"uuid"`
	FullName              string        `db:"full_name"`
	Email                 string        `db:"email"`
	Phone                 *string       `db:"phone"`
	PhonePrefixCode       string        `db:"phone_prefix_code"`
	PasswordHash          string        `db:"password"`
	HasPassword           bool          `db:"has_password"`
	Role                  UserRole      `db:"role"`
	Gender                string        `db:"gender"`
	Dob                   *string       `db:"dob"`
	AccountStatus         AccountStatus `db:"account_status"`
	ContactEmail          string        `db:"contact_email"`
	AuthProvider          string        `db:"auth_provider"`
	IDFor                 string        `db:"id_for"`
	VerificationCode      *string       `db:"verification_code"`
	VerificationExpiredAt *time.Time    `db:"verification_expired_at"`

	// seller only
	SellerStatus *SellerStatus `db:"seller_status"`
	Store        StoreInfo     `db:"store"`
	TotalSold    int64         `db:"total_sold"`
}

// StoreInfo is stored as JSONB on the user row.
type StoreInfo struct {
	Name     string `json:"storeName,omitempty"`
	Category string `json:"storeCategory,omitempty"`
	License  string `json:"storeLicense,omitempty"`
	Phone    string `json:"storePhone,omitempty"`
	Address  string `json:"storeAddress,omitempty"`
}

func (u *User) IsActive() bool {
	return u.AccountStatus == AccountActive
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleOwner
}
