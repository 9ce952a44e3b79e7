package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// ==================== TOKEN ====================

// GenerateSessionToken returns a random (version 4) UUID: 122 bits of entropy.
func GenerateSessionToken() (string, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return token.String(), nil
}

func GenerateRequestID() string {
	return uuid.NewString()
}

// ==================== OTP ====================

// GenerateOTP returns a numeric code of exactly length digits, leading zeros kept.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = 6
	}

	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", fmt.Errorf("generate OTP: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n), nil
}
