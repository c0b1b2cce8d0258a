package settings

import (
	"context"
	"errors"
	"time"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

// SingletonID is the fixed key of the only settings row.
const SingletonID = 1

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var (
	ErrNotFound      = errors.New("portfolio settings not found")
	ErrAlreadyExists = errors.New("portfolio settings already exist")
)

type Settings struct {
	Theme           Theme      `json:"theme"`
	MaintenanceMode bool       `json:"maintenance_mode"`
	LastBackup      *time.Time `json:"last_backup"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func Defaults() Settings {
	return Settings{Theme: ThemeLight}
}

func (s *Settings) Validate() error {
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return apperror.NewFieldError("theme", "Must be one of: light, dark.")
	}
	return nil
}

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	// Create fails with ErrAlreadyExists when the singleton row is present.
	Create(ctx context.Context, s *Settings) error
	GetOrCreate(ctx context.Context, defaults *Settings) (*Settings, error)
	Update(ctx context.Context, s *Settings) error
}
