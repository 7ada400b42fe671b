package domain

import (
	"errors"
	"strings"
	"unicode"
)

const passwordSpecials = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

var (
	ErrPasswordRequired = errors.New("Required password !")
	ErrPasswordLength   = errors.New("Password length should be 5 to 8 characters !")
	ErrPasswordWeak     = errors.New("Password should contains at least 1 digit, lowercase letter, special character !")
)

// ValidatePassword enforces 5-8 characters with a digit, a lowercase letter and a special character.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	if n := len([]rune(password)); n < 5 || n > 8 {
		return ErrPasswordLength
	}

	var hasDigit, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	if !hasDigit || !hasLower || !hasSpecial {
		return ErrPasswordWeak
	}

	return nil
}
