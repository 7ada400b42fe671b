package response

import (
	"github.com/mroy35034/woo-com-server/internal/data/query"

	"github.com/shopspring/decimal"
)

// CartContainer sums the shaped cart lines.
type CartContainer struct {
	TotalQuantity  int             `json:"totalQuantity"`
	BaseAmount     decimal.Decimal `json:"baseAmounts"`
	SavingAmount   decimal.Decimal `json:"savingAmounts"`
	ShippingCharge decimal.Decimal `json:"shippingCharges"`
	FinalAmount    decimal.Decimal `json:"finalAmounts"`
}

type CartResponse struct {
	Products         []query.CartLine `json:"products"`
	Container        CartContainer    `json:"container_p"`
	NumberOfProducts int              `json:"numberOfProducts"`
}

func NewCartResponse(lines []query.CartLine) CartResponse {
	c := CartContainer{
		BaseAmount:     decimal.Zero,
		SavingAmount:   decimal.Zero,
		ShippingCharge: decimal.Zero,
	}
	for _, l := range lines {
		c.TotalQuantity += l.Quantity
		c.BaseAmount = c.BaseAmount.Add(l.BaseAmount)
		c.SavingAmount = c.SavingAmount.Add(l.SavingAmount)
		c.ShippingCharge = c.ShippingCharge.Add(l.ShippingCharge)
	}
	c.FinalAmount = c.BaseAmount.Add(c.ShippingCharge)

	if lines == nil {
		lines = []query.CartLine{}
	}

	return CartResponse{Products: lines, Container: c, NumberOfProducts: len(lines)}
}
