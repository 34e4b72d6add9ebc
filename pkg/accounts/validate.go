package accounts

import (
	"errors"
	"unicode"
)

// ValidatePassword enforces the sign-up password policy: at least eight
// characters with one uppercase letter, one lowercase letter, one digit
// and one special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	switch {
	case !upper:
		return errors.New("password must contain at least one uppercase letter")
	case !lower:
		return errors.New("password must contain at least one lowercase letter")
	case !digit:
		return errors.New("password must contain at least one number")
	case !special:
		return errors.New("password must contain at least one special character")
	}
	return nil
}
