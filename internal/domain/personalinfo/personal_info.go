package personalinfo

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

// SingletonID is the fixed key of the only PersonalInfo row.
const SingletonID = 1

var ErrNotFound = errors.New("personal info not found")

type PersonalInfo struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Github    string    `json:"github"`
	Linkedin  string    `json:"linkedin"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Defaults is what a fresh installation shows before the owner edits anything.
func Defaults() PersonalInfo {
	return PersonalInfo{
		Name:     "Mada Nithish Reddy",
		Title:    "Computer Science Engineer",
		Email:    "madanithishreddy@gmail.com",
		Phone:    "+91 9704715088",
		Github:   "https://github.com/Nithish6606",
		Linkedin: "https://linkedin.com/in/nithish-mada",
		Bio:      "Recent BTech Computer Science graduate passionate about web development, machine learning, and creating innovative solutions to real-world problems.",
	}
}

func (p *PersonalInfo) Validate() error {
	fields := map[string]string{}
	if !validation.IsSafeName(p.Name) || utf8.RuneCountInString(p.Name) > 100 {
		fields["name"] = "Enter a valid name of at most 100 characters."
	}
	if p.Title == "" || utf8.RuneCountInString(p.Title) > 100 {
		fields["title"] = "Title is required and must be at most 100 characters."
	}
	if !validation.IsEmail(p.Email) {
		fields["email"] = "Enter a valid email address."
	}
	if p.Phone != "" && !validation.IsPhone(p.Phone) {
		fields["phone"] = "Enter a valid phone number."
	}
	if p.Github != "" && !validation.IsHTTPURL(p.Github) {
		fields["github"] = "Enter a valid URL starting with http:// or https://."
	}
	if p.Linkedin != "" && !validation.IsHTTPURL(p.Linkedin) {
		fields["linkedin"] = "Enter a valid URL starting with http:// or https://."
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields)
	}
	return nil
}

type Repository interface {
	Get(ctx context.Context) (*PersonalInfo, error)
	// GetOrCreate inserts defaults only when the singleton row is absent.
	GetOrCreate(ctx context.Context, defaults *PersonalInfo) (*PersonalInfo, error)
	Upsert(ctx context.Context, info *PersonalInfo) error
}
