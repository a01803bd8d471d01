package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// ActivityLogRepo registro de actividad en memoria.
type ActivityLogRepo struct {
	h handle
}

func (r *ActivityLogRepo) Create(_ context.Context, l *entity.ActivityLog) error {
	return r.h.write(func(s *state) error {
		s.logs = append(s.logs, *l)
		return nil
	})
}

func (r *ActivityLogRepo) List(_ context.Context, f repository.ActivityLogFilter) ([]*entity.ActivityLogEntry, int, error) {
	var all []*entity.ActivityLogEntry
	r.h.read(func(s *state) {
		for _, l := range s.logs {
			if f.UserID != "" && l.UserID != f.UserID {
				continue
			}
			if f.Action != "" && !containsFold(l.Action, f.Action) {
				continue
			}
			e := &entity.ActivityLogEntry{ActivityLog: l}
			if u, ok := s.users[l.UserID]; ok {
				e.Username, e.FullName, e.Role = u.Username, u.FullName, u.Role
			}
			all = append(all, e)
		}
	})
	// estable: a igual timestamp conserva el orden inverso de inserción
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	start := f.Offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}
