package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/factory-api/internal/domain/identifier"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.IdentifierRepository = (*IdentifierRepo)(nil)

// tablas con columna code, por tipo de identificador.
var codeTables = map[identifier.Kind]string{
	identifier.KindOrder:         "orders",
	identifier.KindInventoryItem: "inventory_items",
	identifier.KindRawMaterial:   "raw_materials",
	identifier.KindPurchaseOrder: "purchase_orders",
	identifier.KindUser:          "users",
}

// IdentifierRepo cuenta y sondea códigos sobre PostgreSQL (usable con pool o tx).
type IdentifierRepo struct {
	q Querier
}

// NewIdentifierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIdentifierRepository(q Querier) *IdentifierRepo {
	return &IdentifierRepo{q: q}
}

func tableFor(kind identifier.Kind) (string, error) {
	table, ok := codeTables[kind]
	if !ok {
		return "", fmt.Errorf("tipo de identificador desconocido: %q", kind)
	}
	return table, nil
}

// CountCodes cuenta las filas existentes del tipo.
func (r *IdentifierRepo) CountCodes(ctx context.Context, kind identifier.Kind) (int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// CodeExists informa si el código ya está en uso.
func (r *IdentifierRepo) CodeExists(ctx context.Context, kind identifier.Kind, code string) (bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return false, err
	}
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE code = $1)`
	if err := r.q.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("probe %s code: %w", table, err)
	}
	return exists, nil
}
