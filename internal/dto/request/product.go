package request

type ManufacturerRequest struct {
	Origin  string `json:"origin" validate:"omitempty,max=80"`
	Details string `json:"details" validate:"omitempty,max=500"`
}

type PackagedRequest struct {
	Weight           float64 `json:"weight" validate:"gte=0"`
	WeightUnit       string  `json:"weightUnit" validate:"omitempty,oneof=kg g lb"`
	Dimension        string  `json:"dimension" validate:"omitempty,max=60"`
	VolumetricWeight float64 `json:"volumetricWeight" validate:"gte=0"`
}

type ShippingRequest struct {
	FulfilledBy     string `json:"fulfilledBy" validate:"omitempty,max=40"`
	ProcurementType string `json:"procurementType" validate:"omitempty,max=40"`
	ProcurementSLA  string `json:"procurementSLA" validate:"omitempty,max=40"`
	Provider        string `json:"provider" validate:"omitempty,max=40"`
	IsFree          bool   `json:"isFree"`
}

type VariationRequest struct {
	SKU          string            `json:"sku" validate:"required,max=64"`
	Title        string            `json:"vTitle" validate:"required,max=255"`
	Price        float64           `json:"price" validate:"required,gt=0"`
	SellingPrice float64           `json:"sellingPrice" validate:"gte=0,ltefield=Price"`
	Available    int               `json:"available" validate:"gte=0"`
	Status       string            `json:"status" validate:"omitempty,oneof=active inactive"`
	Attributes   map[string]string `json:"attributes"`
	Images       []string          `json:"images" validate:"omitempty,dive,url"`
}

// ProductRequest is the listing intro a seller submits for moderation.
type ProductRequest struct {
	Title           string              `json:"title" validate:"required,min=3,max=255"`
	Categories      []string            `json:"categories" validate:"required,min=1,dive,required"`
	Brand           string              `json:"brand" validate:"required,max=120"`
	Manufacturer    ManufacturerRequest `json:"manufacturer"`
	Packaged        PackagedRequest     `json:"packaged"`
	Shipping        ShippingRequest     `json:"shipping"`
	Keywords        []string            `json:"keywords"`
	MetaDescription string              `json:"metaDescription" validate:"omitempty,max=500"`
	Description     string              `json:"description"`
	Highlights      []string            `json:"highlights"`
	Specification   map[string]string   `json:"specification"`
	Images          []string            `json:"images" validate:"omitempty,dive,url"`
	Variations      []VariationRequest  `json:"variations" validate:"omitempty,dive"`
}

type StockRequest struct {
	Available int `json:"available" validate:"gte=0"`
}

type CategoryRequest struct {
	PaginatedRequest
	Categories []string `json:"categories"`
	Sort       string   `json:"sort" validate:"omitempty,oneof=lowest highest newest"`
}

type ManageProductsRequest struct {
	PaginatedRequest
	Search   string `json:"search"`
	Category string `json:"category"`
}
