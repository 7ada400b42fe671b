// Package payment creates and inspects payment intents.
package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// Intent statuses reported by the provider.
const (
	StatusSucceeded       = "succeeded"
	StatusProcessing      = "processing"
	StatusRequiresCapture = "requires_capture"
)

type IntentParams struct {
	Amount         decimal.Decimal
	Currency       string
	OrderPaymentID string
	CustomerEmail  string
}

type Intent struct {
	ID             string
	ClientSecret   string
	OrderPaymentID string
	AmountMinor    int64
	Status         string
}

// Gateway is the payment provider seen by the order usecase.
type Gateway interface {
	CreateIntent(ctx context.Context, params IntentParams) (*Intent, error)
	IntentStatus(ctx context.Context, intentID string) (string, error)
}

type stripeGateway struct {
	sc  *client.API
	log *zap.Logger
}

func NewStripeGateway(secretKey string, log *zap.Logger) Gateway {
	return &stripeGateway{
		sc:  client.New(secretKey, nil),
		log: log.With(zap.String("component", "stripe")),
	}
}

// MinorUnits converts a currency amount into cents.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (g *stripeGateway) CreateIntent(ctx context.Context, p IntentParams) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(MinorUnits(p.Amount)),
		Currency:           stripe.String(p.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		ReceiptEmail:       stripe.String(p.CustomerEmail),
	}
	params.Context = ctx
	params.AddMetadata("order_id", p.OrderPaymentID)

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		g.log.Error("Failed to create payment intent",
			zap.Error(err),
			zap.String("order_payment_id", p.OrderPaymentID),
			zap.String("amount", p.Amount.String()),
		)
		return nil, fmt.Errorf("create payment intent %s: %w", p.OrderPaymentID, err)
	}

	return &Intent{
		ID:             pi.ID,
		ClientSecret:   pi.ClientSecret,
		OrderPaymentID: pi.Metadata["order_id"],
		AmountMinor:    pi.Amount,
		Status:         string(pi.Status),
	}, nil
}

func (g *stripeGateway) IntentStatus(ctx context.Context, intentID string) (string, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.sc.PaymentIntents.Get(intentID, params)
	if err != nil {
		g.log.Error("Failed to fetch payment intent", zap.Error(err), zap.String("intent_id", intentID))
		return "", fmt.Errorf("get payment intent %s: %w", intentID, err)
	}

	return string(pi.Status), nil
}
