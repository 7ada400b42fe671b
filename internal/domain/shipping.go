// Package domain holds the pricing and scoring rules of the marketplace.
package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

const AreaLocal = "local"

type shippingTier struct {
	maxWeight float64
	local     int64
	other     int64
}

// tiers are checked in order; the last one has no upper bound.
var shippingTiers = []shippingTier{
	{maxWeight: 1, local: 10, other: 15},
	{maxWeight: 5, local: 20, other: 25},
	{maxWeight: 10, local: 30, other: 40},
	{maxWeight: math.Inf(1), local: 50, other: 60},
}

// ShippingCost returns the charge for a package of the given volumetric weight
// delivered to areaType. Weight is rounded up to the next whole unit.
func ShippingCost(volumetricWeight float64, areaType string) decimal.Decimal {
	weight := math.Ceil(volumetricWeight)

	for _, tier := range shippingTiers {
		if weight <= tier.maxWeight {
			if areaType == AreaLocal {
				return decimal.NewFromInt(tier.local)
			}
			return decimal.NewFromInt(tier.other)
		}
	}

	return decimal.Zero
}

// ShippingCharge is ShippingCost unless the listing ships free.
func ShippingCharge(isFree bool, volumetricWeight float64, areaType string) decimal.Decimal {
	if isFree {
		return decimal.Zero
	}
	return ShippingCost(volumetricWeight, areaType)
}
