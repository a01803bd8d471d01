package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implementación de ActivityLogRepository sobre PostgreSQL.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create inserta una entrada del registro de actividad.
func (r *ActivityLogRepo) Create(ctx context.Context, l *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, user_id, action, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, nullString(l.UserID), l.Action, l.Details, l.IPAddress, l.CreatedAt)
	if err != nil {
		return classifyWriteError("insert activity log", err)
	}
	return nil
}

// List devuelve una página de entradas (más recientes primero) con el resumen del usuario y el total.
func (r *ActivityLogRepo) List(ctx context.Context, f repository.ActivityLogFilter) ([]*entity.ActivityLogEntry, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("a.user_id = $%d", len(args)))
	}
	if f.Action != "" {
		args = append(args, "%"+f.Action+"%")
		conds = append(conds, fmt.Sprintf("a.action ILIKE $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs a`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	pageArgs := append(append([]any{}, args...), limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT a.id, a.user_id, a.action, a.details, a.ip_address, a.created_at,
			COALESCE(u.username, ''), COALESCE(u.full_name, ''), COALESCE(u.role, '')
		FROM activity_logs a
		LEFT JOIN users u ON u.id = a.user_id%s
		ORDER BY a.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := r.q.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLogEntry
	for rows.Next() {
		var (
			e      entity.ActivityLogEntry
			userID *string
		)
		if err := rows.Scan(&e.ID, &userID, &e.Action, &e.Details, &e.IPAddress, &e.CreatedAt,
			&e.Username, &e.FullName, &e.Role); err != nil {
			return nil, 0, fmt.Errorf("scan activity log: %w", err)
		}
		e.UserID = derefString(userID)
		list = append(list, &e)
	}
	return list, total, rows.Err()
}
