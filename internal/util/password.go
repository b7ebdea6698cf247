package util

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordPolicy tags every password-policy violation so handlers can map
// them to a 400 without string matching.
var ErrPasswordPolicy = errors.New("password policy violation")

// passwordSpecials is the punctuation set a password must draw from.
const passwordSpecials = "!@#$%^&*()_+-=[]{}|;:,.<>?"

const (
	passwordMinLen = 8
	passwordMaxLen = 128
)

// ValidatePassword enforces the composite policy: length 8..128, at least one
// uppercase letter, one lowercase letter, one digit and one special character.
func ValidatePassword(pw string) error {
	if len(pw) < passwordMinLen || len(pw) > passwordMaxLen {
		return fmt.Errorf("%w: password must be between %d and %d characters", ErrPasswordPolicy, passwordMinLen, passwordMaxLen)
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("%w: password must contain at least one uppercase letter", ErrPasswordPolicy)
	}
	if !hasLower {
		return fmt.Errorf("%w: password must contain at least one lowercase letter", ErrPasswordPolicy)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", ErrPasswordPolicy)
	}
	if !hasSpecial {
		return fmt.Errorf("%w: password must contain at least one special character", ErrPasswordPolicy)
	}
	return nil
}

// HashPassword returns the bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ComparePassword reports whether pw matches the stored bcrypt hash.
func ComparePassword(hash string, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
