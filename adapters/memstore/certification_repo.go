package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
)

type certificationRepo struct{ s *Store }

func (r certificationRepo) Save(ctx context.Context, in *certification.Certification) error {
	return r.s.write(ctx, func(st *state) error {
		st.certifications = append(st.certifications, copyCertification(*in))
		return nil
	})
}

func (r certificationRepo) Update(ctx context.Context, in *certification.Certification) error {
	return r.s.write(ctx, func(st *state) error {
		for i := range st.certifications {
			if st.certifications[i].ID == in.ID {
				st.certifications[i] = copyCertification(*in)
				return nil
			}
		}
		return certification.ErrNotFound
	})
}

func (r certificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		for i := range st.certifications {
			if st.certifications[i].ID == id {
				st.certifications = append(st.certifications[:i], st.certifications[i+1:]...)
				return nil
			}
		}
		return certification.ErrNotFound
	})
}

func (r certificationRepo) DeleteAll(ctx context.Context) error {
	return r.s.write(ctx, func(st *state) error {
		st.certifications = nil
		return nil
	})
}

func (r certificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*certification.Certification, error) {
	var out *certification.Certification
	err := r.s.read(ctx, func(st *state) error {
		for _, existing := range st.certifications {
			if existing.ID == id {
				c := copyCertification(existing)
				out = &c
				return nil
			}
		}
		return certification.ErrNotFound
	})
	return out, err
}

func (r certificationRepo) List(ctx context.Context) ([]*certification.Certification, error) {
	var out []*certification.Certification
	err := r.s.read(ctx, func(st *state) error {
		out = make([]*certification.Certification, 0, len(st.certifications))
		for _, existing := range st.certifications {
			c := copyCertification(existing)
			out = append(out, &c)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return byOrderNewestFirst(out[i].Order, out[j].Order, out[i].CreatedAt, out[j].CreatedAt)
	})
	return out, err
}
