package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	OTP       OTPConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Password  PasswordConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

// URL renders the config as a postgres:// connection URL.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	PoolSize       int
	ConnectRetries int
	RetryBackoff   time.Duration
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
	Secret        string
}

// Expiry is how long a generated challenge stays verifiable.
func (c OTPConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryMinutes) * time.Minute
}

type SessionConfig struct {
	TTLSeconds   int
	CookieName   string
	CookieSecure bool
}

func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type RateLimitConfig struct {
	WindowSeconds int
	GenerateOTP   int
	VerifyOTP     int
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

type PasswordConfig struct {
	BcryptCost int
}

// LoadConfig reads .env (when present) and the environment. Callers that
// serve traffic must also call Validate.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "business-onboarding")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_CONNECT_RETRIES", 5)
	v.SetDefault("REDIS_RETRY_BACKOFF_MS", 500)
	v.SetDefault("OTP_EXPIRY_MINUTES", 5)
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("SESSION_TTL_SECONDS", 1800)
	v.SetDefault("SESSION_COOKIE_NAME", "session_id")
	v.SetDefault("SESSION_COOKIE_SECURE", true)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("RATE_LIMIT_GENERATE_OTP", 5)
	v.SetDefault("RATE_LIMIT_VERIFY_OTP", 10)
	v.SetDefault("BCRYPT_COST", 10)

	// .env is optional; the environment alone is enough in containers
	if _, err := os.Stat(".env"); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
			AllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:           v.GetString("REDIS_ADDR"),
			Password:       v.GetString("REDIS_PASSWORD"),
			DB:             v.GetInt("REDIS_DB"),
			PoolSize:       v.GetInt("REDIS_POOL_SIZE"),
			ConnectRetries: v.GetInt("REDIS_CONNECT_RETRIES"),
			RetryBackoff:   time.Duration(v.GetInt("REDIS_RETRY_BACKOFF_MS")) * time.Millisecond,
		},
		OTP: OTPConfig{
			ExpiryMinutes: v.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        v.GetInt("OTP_LENGTH"),
			Secret:        v.GetString("OTP_SECRET"),
		},
		Session: SessionConfig{
			TTLSeconds:   v.GetInt("SESSION_TTL_SECONDS"),
			CookieName:   v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		},
		RateLimit: RateLimitConfig{
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
			GenerateOTP:   v.GetInt("RATE_LIMIT_GENERATE_OTP"),
			VerifyOTP:     v.GetInt("RATE_LIMIT_VERIFY_OTP"),
		},
		Password: PasswordConfig{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
	}

	return config, nil
}

// Validate rejects configurations the OTP and session flows cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.OTP.Secret == "" {
		errs = append(errs, errors.New("OTP_SECRET is required"))
	}
	if c.OTP.Length < 4 || c.OTP.Length > 10 {
		errs = append(errs, fmt.Errorf("OTP_LENGTH must be between 4 and 10, got %d", c.OTP.Length))
	}
	if c.OTP.ExpiryMinutes <= 0 {
		errs = append(errs, errors.New("OTP_EXPIRY_MINUTES must be positive"))
	}
	if c.Session.TTLSeconds <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_SECONDS must be positive"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME is required"))
	}
	if c.RateLimit.WindowSeconds <= 0 || c.RateLimit.GenerateOTP <= 0 || c.RateLimit.VerifyOTP <= 0 {
		errs = append(errs, errors.New("rate limit window and caps must be positive"))
	}
	if c.Redis.ConnectRetries < 1 {
		errs = append(errs, errors.New("REDIS_CONNECT_RETRIES must be at least 1"))
	}

	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
