package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo in-memory UserRepository.
type UserRepo struct {
	h handle
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	defer r.h.write()()
	for _, u := range r.h.d.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.h.d.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.h.read()()
	u, ok := r.h.d.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.h.read()()
	for _, u := range r.h.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	defer r.h.write()()
	u, ok := r.h.d.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLogin = &at
	u.UpdatedAt = at
	r.h.d.users[id] = u
	return nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	defer r.h.read()()
	return len(r.h.d.users), nil
}
