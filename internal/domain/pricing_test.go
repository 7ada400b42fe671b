package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLineAmounts(t *testing.T) {
	tests := []struct {
		name         string
		price        string
		sellingPrice string
		qty          int
		base         string
		saving       string
	}{
		{"discounted", "12", "10", 2, "20", "4"},
		{"no selling price", "10", "0", 3, "30", "0"},
		{"selling above price", "10", "11", 1, "11", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, saving := LineAmounts(dec(tt.price), dec(tt.sellingPrice), tt.qty)
			assert.True(t, dec(tt.base).Equal(base), "base %s", base)
			assert.True(t, dec(tt.saving).Equal(saving), "saving %s", saving)
		})
	}
}

func TestPopularityScore(t *testing.T) {
	assert.InDelta(t, 100*0.4+4.5*0.5+20*0.3, PopularityScore(100, 4.5, 20), 1e-9)
	assert.Zero(t, PopularityScore(0, 0, 0))
}
