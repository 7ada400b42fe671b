package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentRecordStatus string

const (
	PaymentRecordCreated  PaymentRecordStatus = "created"
	PaymentRecordConsumed PaymentRecordStatus = "consumed"
)

// Payment records a payment intent created at checkout so the finalising
// request can be matched to it exactly once.
type Payment struct {
	Base
	OrderPaymentID  string              `db:"order_payment_id"`
	PaymentIntentID string              `db:"payment_intent_id"`
	CustomerID      uuid.UUID           `db:"customer_id"`
	Amount          decimal.Decimal     `db:"amount"`
	Currency        string              `db:"currency"`
	State           OrderState          `db:"state"`
	Status          PaymentRecordStatus `db:"status"`
}
