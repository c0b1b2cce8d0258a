package memstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
)

type userRepo struct{ s *Store }

func (r userRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.find(ctx, func(u user.User) bool { return u.ID == id })
}

func (r userRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.find(ctx, func(u user.User) bool { return u.Username == username })
}

func (r userRepo) find(ctx context.Context, match func(user.User) bool) (*user.User, error) {
	var out *user.User
	err := r.s.read(ctx, func(st *state) error {
		for _, existing := range st.users {
			if match(existing) {
				u := existing
				out = &u
				return nil
			}
		}
		return user.ErrNotFound
	})
	return out, err
}

func (r userRepo) Upsert(ctx context.Context, in *user.User) error {
	return r.s.write(ctx, func(st *state) error {
		for i := range st.users {
			if st.users[i].Username == in.Username {
				in.ID = st.users[i].ID
				in.CreatedAt = st.users[i].CreatedAt
				st.users[i] = *in
				return nil
			}
		}
		st.users = append(st.users, *in)
		return nil
	})
}
