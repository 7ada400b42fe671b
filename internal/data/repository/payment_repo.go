package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PaymentRepository records the payment intents created at checkout. The
// record is consumed by the order placement that it pays for.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByOrderPaymentID(ctx context.Context, orderPaymentID string) (*entity.Payment, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, order_payment_id, payment_intent_id, customer_id, amount,
		                      currency, state, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.OrderPaymentID,
		payment.PaymentIntentID,
		payment.CustomerID,
		payment.Amount,
		payment.Currency,
		payment.State,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("order_payment_id", payment.OrderPaymentID),
			zap.String("customer_id", payment.CustomerID.String()),
		)
		return fmt.Errorf("create payment %s: %w", payment.OrderPaymentID, err)
	}

	return nil
}

func (r *paymentRepository) FindByOrderPaymentID(ctx context.Context, orderPaymentID string) (*entity.Payment, error) {
	query := `
		SELECT id, order_payment_id, payment_intent_id, customer_id, amount, currency,
		       state, status, created_at, updated_at
		FROM payments
		WHERE order_payment_id = $1
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, orderPaymentID).Scan(
		&payment.ID,
		&payment.OrderPaymentID,
		&payment.PaymentIntentID,
		&payment.CustomerID,
		&payment.Amount,
		&payment.Currency,
		&payment.State,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment",
			zap.Error(err),
			zap.String("order_payment_id", orderPaymentID),
		)
		return nil, fmt.Errorf("find payment %s: %w", orderPaymentID, err)
	}

	return &payment, nil
}
