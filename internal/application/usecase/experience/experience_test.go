package experience

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/memstore"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func TestExperienceLifecycle(t *testing.T) {
	ctx := context.Background()
	uc := NewExperienceUseCase(memstore.New().Experiences(), logger.NewNop())

	second, err := uc.CreateExperience(ctx, CreateExperienceInput{Title: "Intern", Company: "Acme", Duration: "2022", Description: "Tests", Order: 2})
	require.NoError(t, err)
	first, err := uc.CreateExperience(ctx, CreateExperienceInput{Title: "Engineer", Company: "Initech", Duration: "2023 - now", Description: "Services", Order: 1})
	require.NoError(t, err)

	list, err := uc.ListExperience(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	company := "Globex"
	updated, err := uc.UpdateExperience(ctx, UpdateExperienceInput{ID: second.ID, Company: &company})
	require.NoError(t, err)
	assert.Equal(t, "Globex", updated.Company)
	assert.Equal(t, "Intern", updated.Title)

	long := "this duration label is far longer than fifty characters allows"
	_, err = uc.UpdateExperience(ctx, UpdateExperienceInput{ID: second.ID, Duration: &long})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, apperror.From(err).Fields, "duration")

	require.NoError(t, uc.DeleteExperience(ctx, second.ID))
	_, err = uc.GetExperience(ctx, second.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateExperienceRequiresFields(t *testing.T) {
	_, err := NewExperienceUseCase(memstore.New().Experiences(), logger.NewNop()).
		CreateExperience(context.Background(), CreateExperienceInput{Title: "<b></b>"})

	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	fields := apperror.From(err).Fields
	for _, f := range []string{"title", "company", "duration", "description"} {
		assert.Contains(t, fields, f)
	}
}
