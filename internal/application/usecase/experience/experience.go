package experience

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/sanitize"
)

type ExperienceUseCase struct {
	repo   experience.Repository
	logger logger.Logger
}

func NewExperienceUseCase(r experience.Repository, log logger.Logger) *ExperienceUseCase {
	return &ExperienceUseCase{repo: r, logger: log}
}

func mapError(err error, id string) error {
	if errors.Is(err, experience.ErrNotFound) {
		return apperror.NewNotFound("Experience", id)
	}
	return err
}

type CreateExperienceInput struct {
	Title       string
	Company     string
	Duration    string
	Description string
	Order       int
}

func (uc *ExperienceUseCase) CreateExperience(ctx context.Context, in CreateExperienceInput) (*experience.Experience, error) {
	now := time.Now().UTC()
	e := &experience.Experience{
		ID:          uuid.New(),
		Title:       sanitize.PlainText(in.Title),
		Company:     sanitize.PlainText(in.Company),
		Duration:    sanitize.PlainText(in.Duration),
		Description: sanitize.RichText(in.Description),
		Order:       in.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

type UpdateExperienceInput struct {
	ID          uuid.UUID
	Title       *string
	Company     *string
	Duration    *string
	Description *string
	Order       *int
}

func (uc *ExperienceUseCase) UpdateExperience(ctx context.Context, in UpdateExperienceInput) (*experience.Experience, error) {
	e, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, mapError(err, in.ID.String())
	}
	if in.Title != nil {
		e.Title = sanitize.PlainText(*in.Title)
	}
	if in.Company != nil {
		e.Company = sanitize.PlainText(*in.Company)
	}
	if in.Duration != nil {
		e.Duration = sanitize.PlainText(*in.Duration)
	}
	if in.Description != nil {
		e.Description = sanitize.RichText(*in.Description)
	}
	if in.Order != nil {
		e.Order = *in.Order
	}
	e.UpdatedAt = time.Now().UTC()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, mapError(err, e.ID.String())
	}
	return e, nil
}

func (uc *ExperienceUseCase) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	return mapError(uc.repo.Delete(ctx, id), id.String())
}

func (uc *ExperienceUseCase) GetExperience(ctx context.Context, id uuid.UUID) (*experience.Experience, error) {
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id.String())
	}
	return e, nil
}

func (uc *ExperienceUseCase) ListExperience(ctx context.Context) ([]*experience.Experience, error) {
	return uc.repo.List(ctx)
}
