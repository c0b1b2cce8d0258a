package memstore

import (
	"context"

	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/internal/domain/settings"
)

type personalInfoRepo struct{ s *Store }

func (r personalInfoRepo) Get(ctx context.Context) (*personalinfo.PersonalInfo, error) {
	var out *personalinfo.PersonalInfo
	err := r.s.read(ctx, func(st *state) error {
		if st.personalInfo == nil {
			return personalinfo.ErrNotFound
		}
		p := *st.personalInfo
		out = &p
		return nil
	})
	return out, err
}

func (r personalInfoRepo) GetOrCreate(ctx context.Context, defaults *personalinfo.PersonalInfo) (*personalinfo.PersonalInfo, error) {
	var out *personalinfo.PersonalInfo
	err := r.s.write(ctx, func(st *state) error {
		if st.personalInfo == nil {
			p := *defaults
			now := r.s.now()
			p.CreatedAt, p.UpdatedAt = now, now
			st.personalInfo = &p
		}
		p := *st.personalInfo
		out = &p
		return nil
	})
	return out, err
}

func (r personalInfoRepo) Upsert(ctx context.Context, info *personalinfo.PersonalInfo) error {
	return r.s.write(ctx, func(st *state) error {
		p := *info
		if st.personalInfo != nil {
			p.CreatedAt = st.personalInfo.CreatedAt
		}
		st.personalInfo = &p
		return nil
	})
}

type settingsRepo struct{ s *Store }

func (r settingsRepo) Get(ctx context.Context) (*settings.Settings, error) {
	var out *settings.Settings
	err := r.s.read(ctx, func(st *state) error {
		if st.settings == nil {
			return settings.ErrNotFound
		}
		out = copySettings(st.settings)
		return nil
	})
	return out, err
}

func (r settingsRepo) Create(ctx context.Context, in *settings.Settings) error {
	return r.s.write(ctx, func(st *state) error {
		if st.settings != nil {
			return settings.ErrAlreadyExists
		}
		st.settings = copySettings(in)
		return nil
	})
}

func (r settingsRepo) GetOrCreate(ctx context.Context, defaults *settings.Settings) (*settings.Settings, error) {
	var out *settings.Settings
	err := r.s.write(ctx, func(st *state) error {
		if st.settings == nil {
			created := copySettings(defaults)
			now := r.s.now()
			created.CreatedAt, created.UpdatedAt = now, now
			st.settings = created
		}
		out = copySettings(st.settings)
		return nil
	})
	return out, err
}

func (r settingsRepo) Update(ctx context.Context, in *settings.Settings) error {
	return r.s.write(ctx, func(st *state) error {
		if st.settings == nil {
			return settings.ErrNotFound
		}
		updated := copySettings(in)
		updated.CreatedAt = st.settings.CreatedAt
		st.settings = updated
		return nil
	})
}
