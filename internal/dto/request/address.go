package request

type AddressRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Division    string `json:"division" validate:"required,max=80"`
	City        string `json:"city" validate:"required,max=80"`
	Area        string `json:"area" validate:"required,max=80"`
	AreaType    string `json:"area_type" validate:"required,oneof=local outside"`
	Landmark    string `json:"landmark" validate:"omitempty,max=160"`
	PhoneNumber string `json:"phone_number" validate:"required,min=6,max=20"`
	PostalCode  string `json:"postal_code" validate:"required,max=16"`
}
