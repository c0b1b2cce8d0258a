package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
)

type experienceRepo struct{ s *Store }

func (r experienceRepo) Save(ctx context.Context, in *experience.Experience) error {
	return r.s.write(ctx, func(st *state) error {
		st.experiences = append(st.experiences, *in)
		return nil
	})
}

func (r experienceRepo) Update(ctx context.Context, in *experience.Experience) error {
	return r.s.write(ctx, func(st *state) error {
		for i := range st.experiences {
			if st.experiences[i].ID == in.ID {
				st.experiences[i] = *in
				return nil
			}
		}
		return experience.ErrNotFound
	})
}

func (r experienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		for i := range st.experiences {
			if st.experiences[i].ID == id {
				st.experiences = append(st.experiences[:i], st.experiences[i+1:]...)
				return nil
			}
		}
		return experience.ErrNotFound
	})
}

func (r experienceRepo) DeleteAll(ctx context.Context) error {
	return r.s.write(ctx, func(st *state) error {
		st.experiences = nil
		return nil
	})
}

func (r experienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*experience.Experience, error) {
	var out *experience.Experience
	err := r.s.read(ctx, func(st *state) error {
		for _, existing := range st.experiences {
			if existing.ID == id {
				e := existing
				out = &e
				return nil
			}
		}
		return experience.ErrNotFound
	})
	return out, err
}

func (r experienceRepo) List(ctx context.Context) ([]*experience.Experience, error) {
	var out []*experience.Experience
	err := r.s.read(ctx, func(st *state) error {
		out = make([]*experience.Experience, 0, len(st.experiences))
		for _, existing := range st.experiences {
			e := existing
			out = append(out, &e)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return byOrderNewestFirst(out[i].Order, out[j].Order, out[i].CreatedAt, out[j].CreatedAt)
	})
	return out, err
}
