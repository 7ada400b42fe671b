package entity

import (
	"time"

	"github.com/google/uuid"
)

type CodePurpose string

const (
	CodePasswordReset CodePurpose = "password_reset"
)

type SecurityCode struct {
	BaseSimple
	UserID    uuid.UUID   `db:"user_id"`
	Email     string      `db:"email"`
	Code      string      `db:"code"`
	Purpose   CodePurpose `db:"purpose"`
	ExpiresAt time.Time   `db:"expires_at"`
	IsUsed    bool        `db:"is_used"`
}
