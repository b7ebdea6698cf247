package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// GenerateNumericCode returns a random decimal code of the given length,
// drawn from crypto/rand. Leading zeros are allowed.
func GenerateNumericCode(length int) (string, error) {
	if length < 4 || length > 10 {
		return "", fmt.Errorf("code length must be 4..10")
	}
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

// IsNumeric reports whether s is non-empty and all ASCII decimal digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
