package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, ErrDuplicateKey},
		{"wrapped unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrDuplicateKey},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrForeignKey},
		{"not null", &pgconn.PgError{Code: "23502"}, ErrConstraint},
		{"check", &pgconn.PgError{Code: "23514"}, ErrConstraint},
		{"other pg error", &pgconn.PgError{Code: "40001"}, nil},
		{"plain error", errors.New("connection reset"), nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyPgError(tt.err); got != tt.want {
				t.Fatalf("classifyPgError() = %v, want %v", got, tt.want)
			}
		})
	}
}
