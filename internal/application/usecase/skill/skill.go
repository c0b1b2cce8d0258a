package skill

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/sanitize"
)

type SkillUseCase struct {
	repo   skill.Repository
	logger logger.Logger
}

func NewSkillUseCase(r skill.Repository, log logger.Logger) *SkillUseCase {
	return &SkillUseCase{repo: r, logger: log}
}

func mapError(err error, id string) error {
	switch {
	case errors.Is(err, skill.ErrNotFound):
		return apperror.NewNotFound("Skill", id)
	case errors.Is(err, skill.ErrDuplicate):
		return apperror.NewDuplicateKey("Skill", "name and category", id)
	}
	return err
}

type CreateSkillInput struct {
	Name        string
	Category    skill.Category
	Proficiency *int
}

func (uc *SkillUseCase) CreateSkill(ctx context.Context, in CreateSkillInput) (*skill.Skill, error) {
	s := &skill.Skill{
		ID:          uuid.New(),
		Name:        sanitize.PlainText(in.Name),
		Category:    in.Category,
		Proficiency: skill.DefaultProficiency,
		CreatedAt:   time.Now().UTC(),
	}
	if in.Proficiency != nil {
		s.Proficiency = *in.Proficiency
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, mapError(err, s.Name+"/"+string(s.Category))
	}
	uc.logger.Info("Skill created", zap.String("skill_id", s.ID.String()), zap.String("category", string(s.Category)))
	return s, nil
}

type UpdateSkillInput struct {
	ID          uuid.UUID
	Name        *string
	Category    *skill.Category
	Proficiency *int
}

func (uc *SkillUseCase) UpdateSkill(ctx context.Context, in UpdateSkillInput) (*skill.Skill, error) {
	s, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, mapError(err, in.ID.String())
	}
	if in.Name != nil {
		s.Name = sanitize.PlainText(*in.Name)
	}
	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.Proficiency != nil {
		s.Proficiency = *in.Proficiency
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, mapError(err, s.Name+"/"+string(s.Category))
	}
	return s, nil
}

func (uc *SkillUseCase) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	return mapError(uc.repo.Delete(ctx, id), id.String())
}

func (uc *SkillUseCase) GetSkill(ctx context.Context, id uuid.UUID) (*skill.Skill, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id.String())
	}
	return s, nil
}

// ListSkills filters by category when one is given; an unknown category is a validation error.
func (uc *SkillUseCase) ListSkills(ctx context.Context, category string) ([]*skill.Skill, error) {
	c := skill.Category(category)
	if category != "" && !c.Valid() {
		return nil, apperror.NewFieldError("category", "Unknown skill category.")
	}
	return uc.repo.List(ctx, skill.Filter{Category: c})
}

func (uc *SkillUseCase) SkillsByCategory(ctx context.Context) (map[skill.Category][]string, error) {
	all, err := uc.repo.List(ctx, skill.Filter{})
	if err != nil {
		return nil, err
	}
	return skill.ByCategory(all), nil
}
