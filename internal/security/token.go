package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var errNonPositiveLength = errors.New("length must be positive")

// TokenID returns a cryptographically secure alphanumeric identifier
// for unlock tokens. Characters are drawn without modulo bias.
func TokenID(length int) (string, error) {
	if length <= 0 {
		return "", errNonPositiveLength
	}

	limit := big.NewInt(int64(len(tokenAlphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = tokenAlphabet[position.Int64()]
	}

	return string(value), nil
}
