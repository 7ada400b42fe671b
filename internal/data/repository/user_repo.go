package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mroy35034/woo-com-server/internal/data/entity"
	"github.com/mroy35034/woo-com-server/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUUID(ctx context.Context, userUUID string) (*entity.User, error)
	FindByEmailOrPhone(ctx context.Context, value string) (*entity.User, error)
	ExistsByEmailOrPhone(ctx context.Context, email string, phone *string) (bool, error)
	UpdateVerificationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	Activate(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Seller moderation
	UpdateSellerStatus(ctx context.Context, id uuid.UUID, from, to entity.SellerStatus) error
	FindPendingSellers(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountPendingSellers(ctx context.Context) (int64, error)
	FindTopSellers(ctx context.Context, limit int) ([]*entity.User, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, uuid, full_name, email, phone, phone_prefix_code, password, has_password,
	role, gender, dob, account_status, contact_email, auth_provider, id_for,
	verification_code, verification_expired_at, seller_status, store, total_sold,
	created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.UUID,
		&user.FullName,
		&user.Email,
		&user.Phone,
		&user.PhonePrefixCode,
		&user.PasswordHash,
		&user.HasPassword,
		&user.Role,
		&user.Gender,
		&user.Dob,
		&user.AccountStatus,
		&user.ContactEmail,
		&user.AuthProvider,
		&user.IDFor,
		&user.VerificationCode,
		&user.VerificationExpiredAt,
		&user.SellerStatus,
		&user.Store,
		&user.TotalSold,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account. A duplicate email, phone or uuid is ErrConflict.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, uuid, full_name, email, phone, phone_prefix_code, password,
		                   has_password, role, gender, dob, account_status, contact_email,
		                   auth_provider, id_for, verification_code, verification_expired_at,
		                   seller_status, store, total_sold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.UUID,
		user.FullName,
		user.Email,
		user.Phone,
		user.PhonePrefixCode,
		user.PasswordHash,
		user.HasPassword,
		user.Role,
		user.Gender,
		user.Dob,
		user.AccountStatus,
		user.ContactEmail,
		user.AuthProvider,
		user.IDFor,
		user.VerificationCode,
		user.VerificationExpiredAt,
		user.SellerStatus,
		user.Store,
		user.TotalSold,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("role", string(user.Role)),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (r *userRepository) FindByUUID(ctx context.Context, userUUID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uuid = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, userUUID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by uuid",
			zap.Error(err),
			zap.String("uuid", userUUID),
		)
		return nil, fmt.Errorf("find user by uuid %s: %w", userUUID, err)
	}

	return user, nil
}

// FindByEmailOrPhone resolves a login identifier.
func (r *userRepository) FindByEmailOrPhone(ctx context.Context, value string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR phone = $1 LIMIT 1`

	user, err := scanUser(r.db.QueryRow(ctx, query, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email or phone",
			zap.Error(err),
			zap.String("identifier", value),
		)
		return nil, fmt.Errorf("find user by email or phone %s: %w", value, err)
	}

	return user, nil
}

func (r *userRepository) ExistsByEmailOrPhone(ctx context.Context, email string, phone *string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR ($2::text IS NOT NULL AND phone = $2))`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email, phone).Scan(&exists); err != nil {
		r.log.Error("Failed to check user existence",
			zap.Error(err),
			zap.String("email", email),
		)
		return false, fmt.Errorf("check user %s exists: %w", email, err)
	}

	return exists, nil
}

func (r *userRepository) UpdateVerificationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET verification_code = $2, verification_expired_at = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, code, expiresAt)
	if err != nil {
		r.log.Error("Failed to update verification code",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update verification code of user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Activate clears the verification code and marks the account active.
func (r *userRepository) Activate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET account_status = 'active', verification_code = NULL,
		    verification_expired_at = NULL, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to activate user",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("activate user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password = $2, has_password = TRUE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		r.log.Error("Failed to update password",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update password of user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateSellerStatus moves a seller from one status to another and activates
// the account. A seller not in the from status is ErrNotFound.
func (r *userRepository) UpdateSellerStatus(ctx context.Context, id uuid.UUID, from, to entity.SellerStatus) error {
	query := `
		UPDATE users
		SET seller_status = $3, account_status = 'active', updated_at = NOW()
		WHERE id = $1 AND role = 'SELLER' AND seller_status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update seller status",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.String("status", string(to)),
		)
		return fmt.Errorf("update seller status of %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) FindPendingSellers(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = 'SELLER' AND seller_status = 'pending'
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`

	users, err := r.findMany(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find pending sellers", zap.Error(err))
		return nil, fmt.Errorf("find pending sellers: %w", err)
	}

	return users, nil
}

func (r *userRepository) CountPendingSellers(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE role = 'SELLER' AND seller_status = 'pending'`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count pending sellers", zap.Error(err))
		return 0, fmt.Errorf("count pending sellers: %w", err)
	}

	return count, nil
}

func (r *userRepository) FindTopSellers(ctx context.Context, limit int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = 'SELLER' AND total_sold > 0
		ORDER BY total_sold DESC
		LIMIT $1
	`

	users, err := r.findMany(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find top sellers", zap.Error(err))
		return nil, fmt.Errorf("find top sellers: %w", err)
	}

	return users, nil
}
