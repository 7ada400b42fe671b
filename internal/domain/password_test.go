package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     error
	}{
		{"", ErrPasswordRequired},
		{"a1!", ErrPasswordLength},
		{"abcdef1!x", ErrPasswordLength},
		{"abcdef", ErrPasswordWeak},
		{"abc12", ErrPasswordWeak},
		{"ABC1!", ErrPasswordWeak},
		{"abc1!", nil},
		{"pass#9wd", nil},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.password))
		})
	}
}
