package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaveAs string

const (
	SaveAsQueue     SaveAs = "queue"
	SaveAsDraft     SaveAs = "draft"
	SaveAsFulfilled SaveAs = "fulfilled"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	StockIn  = "in"
	StockOut = "out"
)

type Product struct {
	Base
	ListingID       string            `db:"listing_id" json:"_lid"`
	Title           string            `db:"title" json:"title"`
	Slug            string            `db:"slug" json:"slug"`
	Categories      []string          `db:"categories" json:"categories"`
	Brand           string            `db:"brand" json:"brand"`
	Manufacturer    Manufacturer      `db:"manufacturer" json:"manufacturer"`
	Packaged        Packaged          `db:"packaged" json:"packaged"`
	Shipping        Shipping          `db:"shipping" json:"shipping"`
	Rating          []RatingBucket    `db:"rating" json:"rating"`
	RatingAverage   float64           `db:"rating_average" json:"ratingAverage"`
	Keywords        []string          `db:"keywords" json:"keywords"`
	MetaDescription string            `db:"meta_description" json:"metaDescription"`
	Description     string            `db:"description" json:"description"`
	Highlights      []string          `db:"highlights" json:"highlights"`
	Specification   map[string]string `db:"specification" json:"specification"`
	Images          []string          `db:"images" json:"images"`
	Supplier        Supplier          `db:"-" json:"supplier"`
	SaveAs          SaveAs            `db:"save_as" json:"save_as"`
	Status          string            `db:"status" json:"status"`
	Views           int64             `db:"views" json:"views"`
	Score           float64           `db:"score" json:"score"`
	Sold            int64             `db:"sold" json:"sold"`
	IsVerified      bool              `db:"is_verified" json:"isVerified"`
	VerifyStatus    *VerifyStatus     `db:"-" json:"verifyStatus,omitempty"`
	Variations      []Variation       `db:"-" json:"variations"`
}

type Manufacturer struct {
	Origin  string `json:"origin"`
	Details string `json:"details"`
}

type Packaged struct {
	Weight           float64 `json:"weight"`
	WeightUnit       string  `json:"weightUnit"`
	Dimension        string  `json:"dimension"`
	VolumetricWeight float64 `json:"volumetricWeight"`
}

type Shipping struct {
	FulfilledBy     string `json:"fulfilledBy"`
	ProcurementType string `json:"procurementType"`
	ProcurementSLA  string `json:"procurementSLA"`
	Provider        string `json:"provider"`
	IsFree          bool   `json:"isFree"`
}

type RatingBucket struct {
	Weight int `json:"weight"`
	Count  int `json:"count"`
}

type Supplier struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	StoreName string    `json:"store_name"`
}

type VerifyStatus struct {
	VerifiedBy string    `json:"verifiedBy"`
	Email      string    `json:"email"`
	VerifiedAt time.Time `json:"verifiedAt"`
}

type Variation struct {
	ID           uuid.UUID         `db:"id" json:"_vrid"`
	ProductID    uuid.UUID         `db:"product_id" json:"productID"`
	SKU          string            `db:"sku" json:"sku"`
	Title        string            `db:"title" json:"vTitle"`
	Slug         string            `db:"slug" json:"slug"`
	Price        decimal.Decimal   `db:"price" json:"price"`
	SellingPrice decimal.Decimal   `db:"selling_price" json:"sellingPrice"`
	Available    int               `db:"available" json:"available"`
	Stock        string            `db:"stock" json:"stock"`
	Status       string            `db:"status" json:"status"`
	Attributes   map[string]string `db:"attributes" json:"attributes"`
	Images       []string          `db:"images" json:"images"`
	CreatedAt    time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time         `db:"updated_at" json:"modifiedAt"`
}

// StockFor derives the stock flag from the available count.
func StockFor(available int) string {
	if available <= 0 {
		return StockOut
	}
	return StockIn
}

// EmptyRating is the rating of a listing nobody has rated yet.
func EmptyRating() []RatingBucket {
	return []RatingBucket{
		{Weight: 5}, {Weight: 4}, {Weight: 3}, {Weight: 2}, {Weight: 1},
	}
}

func (p *Product) FindVariation(id uuid.UUID) *Variation {
	for i := range p.Variations {
		if p.Variations[i].ID == id {
			return &p.Variations[i]
		}
	}
	return nil
}
