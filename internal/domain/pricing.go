package domain

import "github.com/shopspring/decimal"

// ActualSellingPrice is the discounted price when one is set, otherwise the list price.
func ActualSellingPrice(price, sellingPrice decimal.Decimal) decimal.Decimal {
	if sellingPrice.IsPositive() {
		return sellingPrice
	}
	return price
}

// LineAmounts computes the base and saving amounts of a cart or order line.
func LineAmounts(price, sellingPrice decimal.Decimal, quantity int) (base, saving decimal.Decimal) {
	qty := decimal.NewFromInt(int64(quantity))
	actual := ActualSellingPrice(price, sellingPrice)

	base = actual.Mul(qty)
	saving = price.Sub(actual).Mul(qty)
	if saving.IsNegative() {
		saving = decimal.Zero
	}
	return base, saving
}

const (
	viewsWeight  = 0.4
	ratingWeight = 0.5
	salesWeight  = 0.3
)

// PopularityScore ranks listings for the storefront.
func PopularityScore(views int64, ratingAverage float64, sales int64) float64 {
	return float64(views)*viewsWeight + ratingAverage*ratingWeight + float64(sales)*salesWeight
}
