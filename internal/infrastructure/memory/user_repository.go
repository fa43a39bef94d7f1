package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El username se compara sin distinguir mayúsculas.
type UserRepo struct {
	db session
}

func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{db: s.session()}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		if findUsername(st, u.Username) != nil {
			return domain.ErrUsernameAlreadyExists
		}
		clone := *u
		st.Users[u.ID] = &clone
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.db.read(ctx, func(st *state) error {
		if u, ok := st.Users[id]; ok {
			clone := *u
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.db.read(ctx, func(st *state) error {
		if u := findUsername(st, username); u != nil {
			clone := *u
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.Users[u.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if other := findUsername(st, u.Username); other != nil && other.ID != u.ID {
			return domain.ErrUsernameAlreadyExists
		}
		clone := *u
		clone.CreatedAt = cur.CreatedAt
		st.Users[u.ID] = &clone
		return nil
	})
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	var list []*entity.User
	err := r.db.read(ctx, func(st *state) error {
		for _, u := range st.Users {
			clone := *u
			list = append(list, &clone)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, err
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Users[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Users, id)
		return nil
	})
}

func findUsername(st *state, username string) *entity.User {
	for _, u := range st.Users {
		if strings.EqualFold(u.Username, username) {
			return u
		}
	}
	return nil
}
