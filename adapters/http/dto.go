package http

import (
	"time"

	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

// Auth DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{ID: u.ID.String(), Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}
}

type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	IsAdmin   bool      `json:"isAdmin"`
	User      UserDTO   `json:"user"`
}

// Personal info DTOs

type PersonalInfoRequest struct {
	Name     *string `json:"name" validate:"omitempty,safename,max=100"`
	Title    *string `json:"title" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,emailaddr"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Github   *string `json:"github" validate:"omitempty,httpurl"`
	Linkedin *string `json:"linkedin" validate:"omitempty,httpurl"`
	Bio      *string `json:"bio"`
}

// Skill DTOs

type CreateSkillRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"required"`
	Proficiency *int   `json:"proficiency" validate:"omitempty,min=0,max=100"`
}

type UpdateSkillRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Category    *string `json:"category"`
	Proficiency *int    `json:"proficiency" validate:"omitempty,min=0,max=100"`
}

// Experience DTOs

type CreateExperienceRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Company     string `json:"company" validate:"required,max=100"`
	Duration    string `json:"duration" validate:"required,max=50"`
	Description string `json:"description" validate:"required"`
	Order       int    `json:"order"`
}

type UpdateExperienceRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Company     *string `json:"company" validate:"omitempty,min=1,max=100"`
	Duration    *string `json:"duration" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Order       *int    `json:"order"`
}

// Project DTOs

type CreateProjectRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"required"`
	TechStack   []string `json:"tech_stack"`
	GithubURL   string   `json:"github_url" validate:"omitempty,httpurl"`
	LiveURL     string   `json:"live_url" validate:"omitempty,httpurl"`
	Image       string   `json:"image" validate:"omitempty,httpurl"`
	Order       int      `json:"order"`
	IsFeatured  bool     `json:"is_featured"`
}

type UpdateProjectRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	TechStack   *[]string `json:"tech_stack"`
	GithubURL   *string   `json:"github_url" validate:"omitempty,httpurl"`
	LiveURL     *string   `json:"live_url" validate:"omitempty,httpurl"`
	Image       *string   `json:"image" validate:"omitempty,httpurl"`
	Order       *int      `json:"order"`
	IsFeatured  *bool     `json:"is_featured"`
}

// Certification DTOs

type CreateCertificationRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Issuer        string `json:"issuer" validate:"max=100"`
	IssueDate     string `json:"issue_date"`
	CredentialID  string `json:"credential_id" validate:"max=100"`
	CredentialURL string `json:"credential_url" validate:"omitempty,httpurl"`
	Order         int    `json:"order"`
}

type UpdateCertificationRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=200"`
	Issuer        *string `json:"issuer" validate:"omitempty,max=100"`
	IssueDate     *string `json:"issue_date"`
	CredentialID  *string `json:"credential_id" validate:"omitempty,max=100"`
	CredentialURL *string `json:"credential_url" validate:"omitempty,httpurl"`
	Order         *int    `json:"order"`
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(field, s string) (*time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperror.NewFieldError(field, "Enter a valid date (YYYY-MM-DD).")
}

// Contact DTOs

type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required,safename,max=100"`
	Email   string `json:"email" validate:"required,emailaddr"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
}

// UpdateContactMessageRequest only exposes is_read; content fields are immutable.
type UpdateContactMessageRequest struct {
	IsRead *bool `json:"is_read" validate:"required"`
}

// Settings DTOs

type SettingsRequest struct {
	Theme           *string `json:"theme" validate:"omitempty,oneof=light dark"`
	MaintenanceMode *bool   `json:"maintenance_mode"`
}

// Portfolio DTOs

type ExportResponse struct {
	Filename string              `json:"filename"`
	Data     *portfolio.Document `json:"data"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
