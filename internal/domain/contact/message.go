package contact

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

var ErrNotFound = errors.New("contact message not found")

// Message content is immutable after creation; only IsRead changes.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	SourceIP  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) Validate() error {
	fields := map[string]string{}
	if !validation.IsSafeName(m.Name) || utf8.RuneCountInString(m.Name) > 100 {
		fields["name"] = "Name must be at least 2 characters and cannot contain special characters like <, >, \", ', &."
	}
	if !validation.IsEmail(m.Email) {
		fields["email"] = "Enter a valid email address."
	}
	if m.Subject == "" || utf8.RuneCountInString(m.Subject) > 200 {
		fields["subject"] = "Subject is required and must be at most 200 characters."
	}
	if m.Body == "" {
		fields["message"] = "This field is required."
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields)
	}
	return nil
}

type Filter struct {
	IsRead *bool
}

// Repository lists newest first.
type Repository interface {
	Save(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)
	List(ctx context.Context, filter Filter) ([]*Message, error)
	SetRead(ctx context.Context, id uuid.UUID, isRead bool) (*Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// CountCreatedSince backs the rate limiter and must read durable state.
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}
