package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/sanitize"
)

const imageFolder = "portfolio/projects"

type ProjectUseCase struct {
	repo     project.Repository
	uploader service.Uploader
	logger   logger.Logger
}

// NewProjectUseCase accepts a nil uploader; image uploads then fail as unavailable.
func NewProjectUseCase(r project.Repository, uploader service.Uploader, log logger.Logger) *ProjectUseCase {
	return &ProjectUseCase{repo: r, uploader: uploader, logger: log}
}

func mapError(err error, id string) error {
	if errors.Is(err, project.ErrNotFound) {
		return apperror.NewNotFound("Project", id)
	}
	return err
}

type CreateProjectInput struct {
	Title       string
	Description string
	TechStack   []string
	GithubURL   string
	LiveURL     string
	ImageURL    string
	Order       int
	IsFeatured  bool
}

func (uc *ProjectUseCase) CreateProject(ctx context.Context, in CreateProjectInput) (*project.Project, error) {
	now := time.Now().UTC()
	p := &project.Project{
		ID:          uuid.New(),
		Title:       sanitize.PlainText(in.Title),
		Description: sanitize.RichText(in.Description),
		TechStack:   sanitize.PlainTexts(in.TechStack),
		GithubURL:   in.GithubURL,
		LiveURL:     in.LiveURL,
		ImageURL:    in.ImageURL,
		Order:       in.Order,
		IsFeatured:  in.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	uc.logger.Info("Project created", zap.String("project_id", p.ID.String()))
	return p, nil
}

type UpdateProjectInput struct {
	ID          uuid.UUID
	Title       *string
	Description *string
	TechStack   *[]string
	GithubURL   *string
	LiveURL     *string
	ImageURL    *string
	Order       *int
	IsFeatured  *bool
}

func (uc *ProjectUseCase) UpdateProject(ctx context.Context, in UpdateProjectInput) (*project.Project, error) {
	p, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, mapError(err, in.ID.String())
	}
	if in.Title != nil {
		p.Title = sanitize.PlainText(*in.Title)
	}
	if in.Description != nil {
		p.Description = sanitize.RichText(*in.Description)
	}
	if in.TechStack != nil {
		p.TechStack = sanitize.PlainTexts(*in.TechStack)
	}
	if in.GithubURL != nil {
		p.GithubURL = *in.GithubURL
	}
	if in.LiveURL != nil {
		p.LiveURL = *in.LiveURL
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Order != nil {
		p.Order = *in.Order
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	p.UpdatedAt = time.Now().UTC()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, mapError(err, p.ID.String())
	}
	return p, nil
}

func (uc *ProjectUseCase) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return mapError(uc.repo.Delete(ctx, id), id.String())
}

func (uc *ProjectUseCase) GetProject(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id.String())
	}
	return p, nil
}

func (uc *ProjectUseCase) ListProjects(ctx context.Context, featured *bool) ([]*project.Project, error) {
	return uc.repo.List(ctx, project.Filter{Featured: featured})
}

// UploadImage stores the file and points the project's image at it.
func (uc *ProjectUseCase) UploadImage(ctx context.Context, id uuid.UUID, file io.Reader) (*project.Project, error) {
	if uc.uploader == nil {
		return nil, apperror.NewUnavailable("image storage is not configured")
	}
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id.String())
	}

	publicID := fmt.Sprintf("%s/%s", imageFolder, p.ID)
	url, err := uc.uploader.Upload(ctx, file, imageFolder, publicID)
	if err != nil {
		uc.logger.Error("Failed to upload project image", err, zap.String("project_id", p.ID.String()))
		return nil, apperror.NewInternal("upload project image", err)
	}

	p.ImageURL = url
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, mapError(err, p.ID.String())
	}
	return p, nil
}
