package entity

import "github.com/google/uuid"

type Address struct {
	Base
	UserID      uuid.UUID `db:"user_id"`
	Name        string    `db:"name"`
	Division    string    `db:"division"`
	City        string    `db:"city"`
	Area        string    `db:"area"`
	AreaType    string    `db:"area_type"`
	Landmark    string    `db:"landmark"`
	PhoneNumber string    `db:"phone_number"`
	PostalCode  string    `db:"postal_code"`
	IsDefault   bool      `db:"default_shipping_address"`
}
