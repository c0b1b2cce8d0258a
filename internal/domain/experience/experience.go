package experience

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

var ErrNotFound = errors.New("experience not found")

type Experience struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Duration    string    `json:"duration"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *Experience) Validate() error {
	fields := map[string]string{}
	if e.Title == "" || utf8.RuneCountInString(e.Title) > 100 {
		fields["title"] = "Title is required and must be at most 100 characters."
	}
	if e.Company == "" || utf8.RuneCountInString(e.Company) > 100 {
		fields["company"] = "Company is required and must be at most 100 characters."
	}
	if e.Duration == "" || utf8.RuneCountInString(e.Duration) > 50 {
		fields["duration"] = "Duration is required and must be at most 50 characters."
	}
	if e.Description == "" {
		fields["description"] = "This field is required."
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields)
	}
	return nil
}

// Repository lists by order ascending, newest first on ties.
type Repository interface {
	Save(ctx context.Context, e *Experience) error
	Update(ctx context.Context, e *Experience) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	FindByID(ctx context.Context, id uuid.UUID) (*Experience, error)
	List(ctx context.Context) ([]*Experience, error)
}
