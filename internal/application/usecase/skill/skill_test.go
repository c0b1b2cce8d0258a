package skill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/memstore"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func newUseCase() *SkillUseCase {
	return NewSkillUseCase(memstore.New().Skills(), logger.NewNop())
}

func TestCreateSkillDefaultsProficiency(t *testing.T) {
	uc := newUseCase()

	s, err := uc.CreateSkill(context.Background(), CreateSkillInput{Name: "Go", Category: skill.CategoryProgrammingLanguages})
	require.NoError(t, err)
	assert.Equal(t, skill.DefaultProficiency, s.Proficiency)
}

func TestCreateSkillDuplicate(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	in := CreateSkillInput{Name: "Python", Category: skill.CategoryProgrammingLanguages}

	_, err := uc.CreateSkill(ctx, in)
	require.NoError(t, err)
	_, err = uc.CreateSkill(ctx, in)
	assert.ErrorIs(t, err, apperror.ErrDuplicateKey)

	all, err := uc.ListSkills(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateSkillInvalid(t *testing.T) {
	bad := 101
	_, err := newUseCase().CreateSkill(context.Background(), CreateSkillInput{Name: "Go", Category: "languages", Proficiency: &bad})

	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	fields := apperror.From(err).Fields
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "proficiency")
}

func TestUpdateSkillPartial(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	s, err := uc.CreateSkill(ctx, CreateSkillInput{Name: "Docker", Category: skill.CategoryTools})
	require.NoError(t, err)

	p := 65
	updated, err := uc.UpdateSkill(ctx, UpdateSkillInput{ID: s.ID, Proficiency: &p})
	require.NoError(t, err)
	assert.Equal(t, "Docker", updated.Name)
	assert.Equal(t, 65, updated.Proficiency)

	_, err = uc.UpdateSkill(ctx, UpdateSkillInput{ID: [16]byte{1}, Proficiency: &p})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListSkillsByCategory(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	grouped, err := uc.SkillsByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, grouped, len(skill.Categories))
	for _, c := range skill.Categories {
		assert.Equal(t, []string{}, grouped[c])
	}

	for _, name := range []string{"PostgreSQL", "Redis"} {
		_, err := uc.CreateSkill(ctx, CreateSkillInput{Name: name, Category: skill.CategoryDatabases})
		require.NoError(t, err)
	}
	_, err = uc.CreateSkill(ctx, CreateSkillInput{Name: "Git", Category: skill.CategoryTools})
	require.NoError(t, err)

	dbs, err := uc.ListSkills(ctx, string(skill.CategoryDatabases))
	require.NoError(t, err)
	assert.Len(t, dbs, 2)

	_, err = uc.ListSkills(ctx, "nope")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	grouped, err = uc.SkillsByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"PostgreSQL", "Redis"}, grouped[skill.CategoryDatabases])
	assert.Equal(t, []string{"Git"}, grouped[skill.CategoryTools])
}

func TestDeleteSkill(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	s, err := uc.CreateSkill(ctx, CreateSkillInput{Name: "Go", Category: skill.CategoryProgrammingLanguages})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteSkill(ctx, s.ID))
	assert.ErrorIs(t, uc.DeleteSkill(ctx, s.ID), apperror.ErrNotFound)
}
