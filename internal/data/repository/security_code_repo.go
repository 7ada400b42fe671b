package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SecurityCodeRepository interface {
	Create(ctx context.Context, code *entity.SecurityCode) error
	FindValid(ctx context.Context, email, code string, purpose entity.CodePurpose) (*entity.SecurityCode, error)
	MarkAsUsed(ctx context.Context, id uuid.UUID) error
}

type securityCodeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSecurityCodeRepository(db database.PgxIface, log *zap.Logger) SecurityCodeRepository {
	return &securityCodeRepository{
		db:  db,
		log: log.With(zap.String("repository", "security_code")),
	}
}

func (r *securityCodeRepository) Create(ctx context.Context, code *entity.SecurityCode) error {
	query := `
		INSERT INTO security_codes (id, user_id, email, code, purpose, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		code.ID,
		code.UserID,
		code.Email,
		code.Code,
		code.Purpose,
		code.ExpiresAt,
		code.IsUsed,
		code.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create security code",
			zap.Error(err),
			zap.String("email", code.Email),
			zap.String("purpose", string(code.Purpose)),
		)
		return fmt.Errorf("create security code for %s: %w", code.Email, err)
	}

	return nil
}

// FindValid returns the newest unused, unexpired code matching email and code.
func (r *securityCodeRepository) FindValid(ctx context.Context, email, code string, purpose entity.CodePurpose) (*entity.SecurityCode, error) {
	query := `
		SELECT id, user_id, email, code, purpose, expires_at, is_used, created_at
		FROM security_codes
		WHERE email = $1
		  AND code = $2
		  AND purpose = $3
		  AND is_used = false
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var sc entity.SecurityCode
	err := r.db.QueryRow(ctx, query, email, code, purpose).Scan(
		&sc.ID,
		&sc.UserID,
		&sc.Email,
		&sc.Code,
		&sc.Purpose,
		&sc.ExpiresAt,
		&sc.IsUsed,
		&sc.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find security code",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find security code for %s: %w", email, err)
	}

	return &sc, nil
}

// MarkAsUsed consumes the code once. A code already used is ErrNotFound.
func (r *securityCodeRepository) MarkAsUsed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE security_codes SET is_used = true WHERE id = $1 AND is_used = false`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark security code as used",
			zap.Error(err),
			zap.String("code_id", id.String()),
		)
		return fmt.Errorf("mark security code %s as used: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
