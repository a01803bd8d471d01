package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/domain"
)

// Querier es el subconjunto común de *pgxpool.Pool y pgx.Tx que usan los repositorios.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), pgUniqueViolation)
}

// classifyWriteError traduce violaciones de constraints a errores de dominio.
// Una colisión en una columna code (<tabla>_code_key) es ErrDuplicateIdentifier (reintentable).
func classifyWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, domain.ErrConstraintViolation)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		switch {
		case strings.HasSuffix(pgErr.ConstraintName, "_code_key"):
			return fmt.Errorf("%s: %w", op, domain.ErrDuplicateIdentifier)
		case pgErr.ConstraintName == "users_username_key":
			return domain.ErrUsernameExists
		case pgErr.ConstraintName == "users_email_key":
			return domain.ErrEmailExists
		}
		return fmt.Errorf("%s: %w (%s)", op, domain.ErrConstraintViolation, pgErr.ConstraintName)
	case pgForeignKeyViolation, pgCheckViolation:
		return fmt.Errorf("%s: %w (%s)", op, domain.ErrConstraintViolation, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullString convierte "" en NULL (referencias débiles a usuarios).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
