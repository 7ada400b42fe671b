package response

import (
	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/internal/data/query"
)

type Swatch struct {
	VariationID string            `json:"_vrid"`
	Slug        string            `json:"slug"`
	Title       string            `json:"vTitle"`
	Attributes  map[string]string `json:"attributes"`
	Stock       string            `json:"stock"`
}

type ProductDetailResponse struct {
	Product    *entity.Product     `json:"product"`
	Variation  *entity.Variation   `json:"variation"`
	Swatches   []Swatch            `json:"swatch"`
	Related    []query.ProductCard `json:"relatedProducts"`
	InCart     bool                `json:"inCart"`
	InWishlist bool                `json:"inWishlist"`
}

func SwatchesOf(p *entity.Product) []Swatch {
	out := make([]Swatch, 0, len(p.Variations))
	for _, v := range p.Variations {
		if v.Status != entity.StatusActive {
			continue
		}
		out = append(out, Swatch{
			VariationID: v.ID.String(),
			Slug:        v.Slug,
			Title:       v.Title,
			Attributes:  v.Attributes,
			Stock:       v.Stock,
		})
	}
	return out
}

type HomeStoreResponse struct {
	NewestProducts  []query.ProductCard `json:"newestProducts"`
	TopSellingItems []query.ProductCard `json:"topSellingProducts"`
	TopRatedItems   []query.ProductCard `json:"topRatedProducts"`
}

type ProductCountResponse struct {
	Total int64 `json:"totalProducts"`
}

type ManageProductsResponse struct {
	Products *PaginatedResponse[*entity.Product] `json:"products"`
	Drafts   []*entity.Product                   `json:"draftProducts"`
	Queue    []*entity.Product                   `json:"queueProducts"`
}

type QueueProductResponse struct {
	ListingID string          `json:"_lid"`
	SellerID  string          `json:"sellerID"`
	Product   *entity.Product `json:"product"`
}

func QueueToResponse(q *entity.QueueProduct) QueueProductResponse {
	doc := q.Document
	return QueueProductResponse{ListingID: q.ListingID, SellerID: q.SellerID.String(), Product: &doc}
}

type SellerDashboardResponse struct {
	TopSold     []query.SoldProduct `json:"topSoldProducts"`
	AverageSold float64             `json:"averageSold"`
}
