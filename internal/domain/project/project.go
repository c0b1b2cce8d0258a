package project

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

var ErrNotFound = errors.New("project not found")

type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TechStack   []string  `json:"tech_stack"`
	GithubURL   string    `json:"github_url"`
	LiveURL     string    `json:"live_url"`
	ImageURL    string    `json:"image"`
	Order       int       `json:"order"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Project) Validate() error {
	fields := map[string]string{}
	if p.Title == "" || utf8.RuneCountInString(p.Title) > 100 {
		fields["title"] = "Title is required and must be at most 100 characters."
	}
	if p.Description == "" {
		fields["description"] = "This field is required."
	}
	if p.GithubURL != "" && !validation.IsHTTPURL(p.GithubURL) {
		fields["github_url"] = "Enter a valid URL starting with http:// or https://."
	}
	if p.LiveURL != "" && !validation.IsHTTPURL(p.LiveURL) {
		fields["live_url"] = "Enter a valid URL starting with http:// or https://."
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields)
	}
	return nil
}

// Filter narrows List. A nil Featured lists everything.
type Filter struct {
	Featured *bool
}

// Repository lists by order ascending, newest first on ties.
type Repository interface {
	Save(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context, filter Filter) ([]*Project, error)
}
