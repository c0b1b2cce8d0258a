package settings

import (
	"context"
	"errors"
	"time"

	"github.com/khoahotran/portfolio-api/internal/domain/settings"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type SettingsUseCase struct {
	repo   settings.Repository
	logger logger.Logger
}

func NewSettingsUseCase(r settings.Repository, log logger.Logger) *SettingsUseCase {
	return &SettingsUseCase{repo: r, logger: log}
}

func (uc *SettingsUseCase) Get(ctx context.Context) (*settings.Settings, error) {
	defaults := settings.Defaults()
	return uc.repo.GetOrCreate(ctx, &defaults)
}

type Input struct {
	Theme           *settings.Theme
	MaintenanceMode *bool
}

// Create fails once the singleton exists, including when a read already created it.
func (uc *SettingsUseCase) Create(ctx context.Context, in Input) (*settings.Settings, error) {
	s := settings.Defaults()
	apply(&s, in)
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, &s); err != nil {
		if errors.Is(err, settings.ErrAlreadyExists) {
			return nil, apperror.NewSingletonViolation("PortfolioSettings")
		}
		return nil, err
	}
	return &s, nil
}

func (uc *SettingsUseCase) Update(ctx context.Context, in Input) (*settings.Settings, error) {
	s, err := uc.Get(ctx)
	if err != nil {
		return nil, err
	}
	apply(s, in)
	s.UpdatedAt = time.Now().UTC()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func apply(s *settings.Settings, in Input) {
	if in.Theme != nil {
		s.Theme = *in.Theme
	}
	if in.MaintenanceMode != nil {
		s.MaintenanceMode = *in.MaintenanceMode
	}
}
