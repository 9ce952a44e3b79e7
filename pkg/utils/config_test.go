package utils

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		OTP:       OTPConfig{ExpiryMinutes: 5, Length: 6, Secret: "s3cret"},
		Session:   SessionConfig{TTLSeconds: 1800, CookieName: "session_id", CookieSecure: true},
		RateLimit: RateLimitConfig{WindowSeconds: 60, GenerateOTP: 5, VerifyOTP: 10},
		Redis:     RedisConfig{ConnectRetries: 3},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.OTP.Secret = "" }, "OTP_SECRET"},
		{"short otp", func(c *Config) { c.OTP.Length = 3 }, "OTP_LENGTH"},
		{"zero expiry", func(c *Config) { c.OTP.ExpiryMinutes = 0 }, "OTP_EXPIRY_MINUTES"},
		{"zero session ttl", func(c *Config) { c.Session.TTLSeconds = 0 }, "SESSION_TTL_SECONDS"},
		{"no cookie name", func(c *Config) { c.Session.CookieName = "" }, "SESSION_COOKIE_NAME"},
		{"zero verify cap", func(c *Config) { c.RateLimit.VerifyOTP = 0 }, "rate limit"},
		{"no redis retries", func(c *Config) { c.Redis.ConnectRetries = 0 }, "REDIS_CONNECT_RETRIES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigDurations(t *testing.T) {
	c := validConfig()
	if got := c.OTP.Expiry().Minutes(); got != 5 {
		t.Fatalf("otp expiry = %v minutes, want 5", got)
	}
	if got := c.Session.TTL().Seconds(); got != 1800 {
		t.Fatalf("session ttl = %v seconds, want 1800", got)
	}
	if got := c.RateLimit.Window().Seconds(); got != 60 {
		t.Fatalf("window = %v seconds, want 60", got)
	}
}

func TestDatabaseURL(t *testing.T) {
	c := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: "5432", Name: "onboarding", SSLMode: "disable"}
	want := "postgres://u:p@db:5432/onboarding?sslmode=disable"
	if got := c.URL(); got != want {
		t.Fatalf("URL() = %q, want %q", got, want)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.com, ,https://b.com ")
	if len(got) != 2 || got[0] != "https://a.com" || got[1] != "https://b.com" {
		t.Fatalf("unexpected split: %v", got)
	}
}
