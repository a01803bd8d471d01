package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// UserRepo usuarios en memoria.
type UserRepo struct {
	h handle
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.h.write(func(s *state) error {
		for _, existing := range s.users {
			switch {
			case existing.Code == u.Code:
				return duplicateCode("user", u.Code)
			case existing.Username == u.Username:
				return domain.ErrUsernameExists
			case existing.Email == u.Email:
				return domain.ErrEmailExists
			}
		}
		s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) find(match func(u entity.User) bool) *entity.User {
	var out *entity.User
	r.h.read(func(s *state) {
		for _, u := range s.users {
			if match(u) {
				u := u
				out = &u
				return
			}
		}
	})
	return out
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (r *UserRepo) GetByCode(_ context.Context, code string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Code == code }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email }), nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.h.write(func(s *state) error {
		current, ok := s.users[u.ID]
		if !ok {
			return nil
		}
		for id, existing := range s.users {
			if id != u.ID && existing.Email == u.Email {
				return domain.ErrEmailExists
			}
		}
		// code, username y created_at no son editables.
		u.Code, u.Username, u.CreatedAt = current.Code, current.Username, current.CreatedAt
		s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	return r.h.write(func(s *state) error {
		if u, ok := s.users[id]; ok {
			u.LastLogin = &at
			s.users[id] = u
		}
		return nil
	})
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var list []*entity.User
	r.h.read(func(s *state) {
		for _, u := range s.users {
			u := u
			list = append(list, &u)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

func (r *UserRepo) CountByRole(_ context.Context, role string) (int, error) {
	n := 0
	r.h.read(func(s *state) {
		for _, u := range s.users {
			if u.Role == role {
				n++
			}
		}
	})
	return n, nil
}

// Delete elimina el usuario y deja en blanco sus referencias de auditoría (ON DELETE SET NULL).
func (r *UserRepo) Delete(_ context.Context, id string) error {
	return r.h.write(func(s *state) error {
		delete(s.users, id)
		for k, o := range s.orders {
			if o.CreatedBy == id {
				o.CreatedBy = ""
				s.orders[k] = o
			}
		}
		for k, po := range s.pos {
			if po.CreatedBy == id {
				po.CreatedBy = ""
				s.pos[k] = po
			}
		}
		for i := range s.history {
			if s.history[i].ChangedBy == id {
				s.history[i].ChangedBy = ""
			}
		}
		for i := range s.movements {
			if s.movements[i].MovedBy == id {
				s.movements[i].MovedBy = ""
			}
		}
		for i := range s.logs {
			if s.logs[i].UserID == id {
				s.logs[i].UserID = ""
			}
		}
		return nil
	})
}
