package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		areaType string
		want     int64
	}{
		{"light local", 0.4, "local", 10},
		{"one unit zonal", 1, "zonal", 15},
		{"just over one rounds up", 1.2, "local", 20},
		{"three local", 3, "local", 20},
		{"five other", 5, "", 25},
		{"eight zonal", 8, "zonal", 40},
		{"ten local", 10, "local", 30},
		{"twelve zonal", 12, "zonal", 60},
		{"heavy local", 25, "local", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShippingCost(tt.weight, tt.areaType)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestShippingChargeFree(t *testing.T) {
	assert.True(t, ShippingCharge(true, 12, "zonal").IsZero())
	assert.True(t, ShippingCharge(false, 3, "local").Equal(decimal.NewFromInt(20)))
}
