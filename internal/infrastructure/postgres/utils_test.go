package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/factory-api/internal/domain"
)

func TestClassifyWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"código duplicado", &pgconn.PgError{Code: "23505", ConstraintName: "orders_code_key"}, domain.ErrDuplicateIdentifier},
		{"username", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, domain.ErrUsernameExists},
		{"email", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, domain.ErrEmailExists},
		{"otro único", &pgconn.PgError{Code: "23505", ConstraintName: "algo_key"}, domain.ErrConstraintViolation},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "inventory_items_current_stock_check"}, domain.ErrConstraintViolation},
		{"fk", &pgconn.PgError{Code: "23503"}, domain.ErrConstraintViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyWriteError("insert", tt.err), tt.want)
		})
	}
}

func TestClassifyWriteError_PassThrough(t *testing.T) {
	boom := errors.New("connection reset")
	err := classifyWriteError("insert order", boom)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "x", *nullString("x"))
	assert.Equal(t, "", derefString(nil))

	assert.False(t, nullDecimal(nil).Valid)
	d := decimal.NewFromInt(5)
	assert.True(t, decimalPtr(nullDecimal(&d)).Equal(d))
	assert.Nil(t, decimalPtr(decimal.NullDecimal{}))
}
