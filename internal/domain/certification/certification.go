package certification

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

var ErrNotFound = errors.New("certification not found")

type Certification struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Issuer        string     `json:"issuer"`
	IssueDate     *time.Time `json:"issue_date"`
	CredentialID  string     `json:"credential_id"`
	CredentialURL string     `json:"credential_url"`
	Order         int        `json:"order"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (c *Certification) Validate() error {
	fields := map[string]string{}
	if c.Title == "" || utf8.RuneCountInString(c.Title) > 200 {
		fields["title"] = "Title is required and must be at most 200 characters."
	}
	if utf8.RuneCountInString(c.Issuer) > 100 {
		fields["issuer"] = "Must be at most 100 characters long."
	}
	if utf8.RuneCountInString(c.CredentialID) > 100 {
		fields["credential_id"] = "Must be at most 100 characters long."
	}
	if c.CredentialURL != "" && !validation.IsHTTPURL(c.CredentialURL) {
		fields["credential_url"] = "Enter a valid URL starting with http:// or https://."
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields)
	}
	return nil
}

func Titles(certs []*Certification) []string {
	out := make([]string, 0, len(certs))
	for _, c := range certs {
		out = append(out, c.Title)
	}
	return out
}

type Repository interface {
	Save(ctx context.Context, c *Certification) error
	Update(ctx context.Context, c *Certification) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	FindByID(ctx context.Context, id uuid.UUID) (*Certification, error)
	List(ctx context.Context) ([]*Certification, error)
}
