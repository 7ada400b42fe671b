package response

import "github.com/mroy35034/woo-com-server/internal/data/entity"

type AddressResponse struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Division    string `json:"division"`
	City        string `json:"city"`
	Area        string `json:"area"`
	AreaType    string `json:"area_type"`
	Landmark    string `json:"landmark"`
	PhoneNumber string `json:"phone_number"`
	PostalCode  string `json:"postal_code"`
	IsDefault   bool   `json:"default_shipping_address"`
}

func AddressToResponse(a *entity.Address) AddressResponse {
	return AddressResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Division:    a.Division,
		City:        a.City,
		Area:        a.Area,
		AreaType:    a.AreaType,
		Landmark:    a.Landmark,
		PhoneNumber: a.PhoneNumber,
		PostalCode:  a.PostalCode,
		IsDefault:   a.IsDefault,
	}
}

func AddressesToResponse(addresses []*entity.Address) []AddressResponse {
	out := make([]AddressResponse, len(addresses))
	for i, a := range addresses {
		out[i] = AddressToResponse(a)
	}
	return out
}
