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

type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Address, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)
	FindDefault(ctx context.Context, userID uuid.UUID) (*entity.Address, error)
	Update(ctx context.Context, address *entity.Address) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetDefault(ctx context.Context, userID, id uuid.UUID) error
}

type addressRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddressRepository(db database.PgxIface, log *zap.Logger) AddressRepository {
	return &addressRepository{
		db:  db,
		log: log.With(zap.String("repository", "address")),
	}
}

const addressColumns = `id, user_id, name, division, city, area, area_type, landmark,
	phone_number, postal_code, default_shipping_address, created_at, updated_at`

func scanAddress(row pgx.Row) (*entity.Address, error) {
	var a entity.Address
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Division,
		&a.City,
		&a.Area,
		&a.AreaType,
		&a.Landmark,
		&a.PhoneNumber,
		&a.PostalCode,
		&a.IsDefault,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the address. The user's first address becomes the default.
func (r *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// serialise address writes per user
		if _, err := tx.Exec(ctx, `SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, address.UserID); err != nil {
			return err
		}

		var hasDefault bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM addresses WHERE user_id = $1 AND default_shipping_address)`,
			address.UserID,
		).Scan(&hasDefault)
		if err != nil {
			return err
		}
		address.IsDefault = !hasDefault

		query := `
			INSERT INTO addresses (id, user_id, name, division, city, area, area_type, landmark,
			                       phone_number, postal_code, default_shipping_address, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`
		_, err = tx.Exec(ctx, query,
			address.ID,
			address.UserID,
			address.Name,
			address.Division,
			address.City,
			address.Area,
			address.AreaType,
			address.Landmark,
			address.PhoneNumber,
			address.PostalCode,
			address.IsDefault,
			address.CreatedAt,
			address.UpdatedAt,
		)
		return err
	})

	if err != nil {
		r.log.Error("Failed to create address",
			zap.Error(err),
			zap.String("user_id", address.UserID.String()),
		)
		return fmt.Errorf("create address for user %s: %w", address.UserID.String(), err)
	}

	return nil
}

func (r *addressRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 AND user_id = $2`

	address, err := scanAddress(r.db.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find address",
			zap.Error(err),
			zap.String("address_id", id.String()),
		)
		return nil, fmt.Errorf("find address %s: %w", id.String(), err)
	}

	return address, nil
}

func (r *addressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY default_shipping_address DESC, created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find addresses",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find addresses of user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var addresses []*entity.Address
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			r.log.Error("Failed to scan address row", zap.Error(err))
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, address)
	}

	return addresses, rows.Err()
}

func (r *addressRepository) FindDefault(ctx context.Context, userID uuid.UUID) (*entity.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 AND default_shipping_address`

	address, err := scanAddress(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find default address",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find default address of user %s: %w", userID.String(), err)
	}

	return address, nil
}

// Update rewrites the address fields. The default flag is only changed by SetDefault.
func (r *addressRepository) Update(ctx context.Context, address *entity.Address) error {
	query := `
		UPDATE addresses
		SET name = $3, division = $4, city = $5, area = $6, area_type = $7, landmark = $8,
		    phone_number = $9, postal_code = $10, updated_at = $11
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.Exec(ctx, query,
		address.ID,
		address.UserID,
		address.Name,
		address.Division,
		address.City,
		address.Area,
		address.AreaType,
		address.Landmark,
		address.PhoneNumber,
		address.PostalCode,
		address.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update address",
			zap.Error(err),
			zap.String("address_id", address.ID.String()),
		)
		return fmt.Errorf("update address %s: %w", address.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *addressRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.log.Error("Failed to delete address",
			zap.Error(err),
			zap.String("address_id", id.String()),
		)
		return fmt.Errorf("delete address %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// SetDefault makes id the user's only default address. Concurrent calls for
// the same user are serialised on the user row, so exactly one default
// remains whichever call commits last.
func (r *addressRepository) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, userID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE addresses SET default_shipping_address = FALSE, updated_at = NOW()
			 WHERE user_id = $1 AND default_shipping_address`, userID); err != nil {
			return err
		}

		result, err := tx.Exec(ctx,
			`UPDATE addresses SET default_shipping_address = TRUE, updated_at = NOW()
			 WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})

	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		r.log.Error("Failed to set default address",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("address_id", id.String()),
		)
		return fmt.Errorf("set default address %s: %w", id.String(), err)
	}

	return nil
}
