package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// ==================== PASSWORD ====================

func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ==================== OTP DIGEST ====================

// OTPDigester computes keyed digests of one-time codes. The email is mixed
// into the MAC so a digest cannot be replayed against another identity.
type OTPDigester struct {
	key []byte
}

func NewOTPDigester(secret string) *OTPDigester {
	return &OTPDigester{key: []byte(secret)}
}

func (d *OTPDigester) Digest(email, code string) string {
	return hex.EncodeToString(d.mac(email, code))
}

// Verify compares in constant time; a malformed stored digest never matches.
func (d *OTPDigester) Verify(email, code, digest string) bool {
	stored, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	return hmac.Equal(d.mac(email, code), stored)
}

func (d *OTPDigester) mac(email, code string) []byte {
	h := hmac.New(sha256.New, d.key)
	h.Write([]byte(email))
	h.Write([]byte{':'})
	h.Write([]byte(code))
	return h.Sum(nil)
}
