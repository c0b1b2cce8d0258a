package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
)

type skillRepo struct{ s *Store }

func (r skillRepo) Save(ctx context.Context, in *skill.Skill) error {
	return r.s.write(ctx, func(st *state) error {
		for _, existing := range st.skills {
			if existing.Name == in.Name && existing.Category == in.Category {
				return skill.ErrDuplicate
			}
		}
		st.skills = append(st.skills, *in)
		return nil
	})
}

func (r skillRepo) Update(ctx context.Context, in *skill.Skill) error {
	return r.s.write(ctx, func(st *state) error {
		idx := -1
		for i, existing := range st.skills {
			if existing.ID == in.ID {
				idx = i
				continue
			}
			if existing.Name == in.Name && existing.Category == in.Category {
				return skill.ErrDuplicate
			}
		}
		if idx < 0 {
			return skill.ErrNotFound
		}
		st.skills[idx] = *in
		return nil
	})
}

func (r skillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		for i, existing := range st.skills {
			if existing.ID == id {
				st.skills = append(st.skills[:i], st.skills[i+1:]...)
				return nil
			}
		}
		return skill.ErrNotFound
	})
}

func (r skillRepo) DeleteAll(ctx context.Context) error {
	return r.s.write(ctx, func(st *state) error {
		st.skills = nil
		return nil
	})
}

func (r skillRepo) FindByID(ctx context.Context, id uuid.UUID) (*skill.Skill, error) {
	var out *skill.Skill
	err := r.s.read(ctx, func(st *state) error {
		for _, existing := range st.skills {
			if existing.ID == id {
				s := existing
				out = &s
				return nil
			}
		}
		return skill.ErrNotFound
	})
	return out, err
}

func (r skillRepo) List(ctx context.Context, filter skill.Filter) ([]*skill.Skill, error) {
	var out []*skill.Skill
	err := r.s.read(ctx, func(st *state) error {
		out = make([]*skill.Skill, 0, len(st.skills))
		for _, existing := range st.skills {
			if filter.Category != "" && existing.Category != filter.Category {
				continue
			}
			s := existing
			out = append(out, &s)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, err
}
