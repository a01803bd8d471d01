package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL (usable con pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const materialColumns = `id, code, name, category, current_stock, min_level, unit, unit_price, supplier,
		description, created_at, updated_at`

func scanMaterial(row pgx.Row) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := row.Scan(
		&m.ID, &m.Code, &m.Name, &m.Category, &m.CurrentStock, &m.MinLevel, &m.Unit, &m.UnitPrice, &m.Supplier,
		&m.Description, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta una materia prima.
func (r *RawMaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Code, m.Name, m.Category, m.CurrentStock, m.MinLevel, m.Unit, m.UnitPrice, m.Supplier,
		m.Description, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return classifyWriteError("insert raw material", err)
	}
	return nil
}

func (r *RawMaterialRepo) getOne(ctx context.Context, where string, arg any) (*entity.RawMaterial, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, `SELECT `+materialColumns+` FROM raw_materials WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return m, nil
}

// GetByID obtiene una materia prima por ID.
func (r *RawMaterialRepo) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetForUpdate obtiene la materia prima y bloquea la fila.
func (r *RawMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.getOne(ctx, "id = $1 FOR UPDATE", id)
}

// GetByNameForUpdate busca por nombre exacto (la más antigua si hay varias) y bloquea la fila.
func (r *RawMaterialRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.RawMaterial, error) {
	return r.getOne(ctx, "name = $1 ORDER BY created_at, code LIMIT 1 FOR UPDATE", name)
}

// LockStock bloquea la fila de la materia prima y devuelve su stock.
func (r *RawMaterialRepo) LockStock(ctx context.Context, id string) (*entity.StockSnapshot, error) {
	query := `SELECT id, code, current_stock, min_level FROM raw_materials WHERE id = $1 FOR UPDATE`
	s := entity.StockSnapshot{EntityType: entity.StockedRawMaterial}
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Code, &s.CurrentStock, &s.MinLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock raw material stock: %w", err)
	}
	return &s, nil
}

// SetStock fija el stock actual de la materia prima.
func (r *RawMaterialRepo) SetStock(ctx context.Context, id string, quantity decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE raw_materials SET current_stock = $2, updated_at = $3 WHERE id = $1`, id, quantity, at)
	if err != nil {
		return classifyWriteError("set raw material stock", err)
	}
	return nil
}

// Update persiste los campos editables (incluido el stock).
func (r *RawMaterialRepo) Update(ctx context.Context, m *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials SET name = $2, category = $3, current_stock = $4, min_level = $5, unit = $6,
			unit_price = $7, supplier = $8, description = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Category, m.CurrentStock, m.MinLevel, m.Unit,
		m.UnitPrice, m.Supplier, m.Description, m.UpdatedAt,
	)
	if err != nil {
		return classifyWriteError("update raw material", err)
	}
	return nil
}

// List lista materias primas por categoría y estado derivado, ordenadas por código.
func (r *RawMaterialRepo) List(ctx context.Context, f repository.StockFilter) ([]*entity.RawMaterial, error) {
	where, args, err := stockFilterWhere(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+materialColumns+` FROM raw_materials`+where+` ORDER BY code`, args...)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina la materia prima; sus movimientos se borran en cascada.
func (r *RawMaterialRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM raw_materials WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete raw material: %w", err)
	}
	return nil
}
