package entity

import "time"

// OTPChallenge is the single pending code for an email. Only the digest of
// the code is ever stored.
type OTPChallenge struct {
	Email     string    `db:"email"`
	OTPDigest string    `db:"otp_digest"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// ExpiredAt reports whether the challenge is no longer usable at t.
func (c *OTPChallenge) ExpiredAt(t time.Time) bool {
	return !t.Before(c.ExpiresAt)
}
