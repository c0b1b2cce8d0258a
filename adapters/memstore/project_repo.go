package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
)

type projectRepo struct{ s *Store }

func (r projectRepo) Save(ctx context.Context, in *project.Project) error {
	return r.s.write(ctx, func(st *state) error {
		st.projects = append(st.projects, copyProject(*in))
		return nil
	})
}

func (r projectRepo) Update(ctx context.Context, in *project.Project) error {
	return r.s.write(ctx, func(st *state) error {
		for i := range st.projects {
			if st.projects[i].ID == in.ID {
				st.projects[i] = copyProject(*in)
				return nil
			}
		}
		return project.ErrNotFound
	})
}

func (r projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		for i := range st.projects {
			if st.projects[i].ID == id {
				st.projects = append(st.projects[:i], st.projects[i+1:]...)
				return nil
			}
		}
		return project.ErrNotFound
	})
}

func (r projectRepo) DeleteAll(ctx context.Context) error {
	return r.s.write(ctx, func(st *state) error {
		st.projects = nil
		return nil
	})
}

func (r projectRepo) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var out *project.Project
	err := r.s.read(ctx, func(st *state) error {
		for _, existing := range st.projects {
			if existing.ID == id {
				p := copyProject(existing)
				out = &p
				return nil
			}
		}
		return project.ErrNotFound
	})
	return out, err
}

func (r projectRepo) List(ctx context.Context, filter project.Filter) ([]*project.Project, error) {
	var out []*project.Project
	err := r.s.read(ctx, func(st *state) error {
		out = make([]*project.Project, 0, len(st.projects))
		for _, existing := range st.projects {
			if filter.Featured != nil && existing.IsFeatured != *filter.Featured {
				continue
			}
			p := copyProject(existing)
			out = append(out, &p)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return byOrderNewestFirst(out[i].Order, out[j].Order, out[i].CreatedAt, out[j].CreatedAt)
	})
	return out, err
}
