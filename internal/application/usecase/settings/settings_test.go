package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/memstore"
	"github.com/khoahotran/portfolio-api/internal/domain/settings"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func TestCreateSettingsOnlyOnce(t *testing.T) {
	ctx := context.Background()
	uc := NewSettingsUseCase(memstore.New().Settings(), logger.NewNop())
	dark := settings.ThemeDark

	s, err := uc.Create(ctx, Input{Theme: &dark})
	require.NoError(t, err)
	assert.Equal(t, settings.ThemeDark, s.Theme)

	_, err = uc.Create(ctx, Input{})
	assert.ErrorIs(t, err, apperror.ErrSingletonViolation)

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ThemeDark, got.Theme, "the first instance is untouched")
}

func TestCreateAfterLazyGet(t *testing.T) {
	ctx := context.Background()
	uc := NewSettingsUseCase(memstore.New().Settings(), logger.NewNop())

	s, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ThemeLight, s.Theme)
	assert.Nil(t, s.LastBackup)

	_, err = uc.Create(ctx, Input{})
	assert.ErrorIs(t, err, apperror.ErrSingletonViolation)
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	uc := NewSettingsUseCase(memstore.New().Settings(), logger.NewNop())
	on := true

	s, err := uc.Update(ctx, Input{MaintenanceMode: &on})
	require.NoError(t, err)
	assert.True(t, s.MaintenanceMode)
	assert.Equal(t, settings.ThemeLight, s.Theme)

	bad := settings.Theme("blue")
	_, err = uc.Update(ctx, Input{Theme: &bad})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, apperror.From(err).Fields, "theme")
}
