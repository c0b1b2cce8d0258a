package skill

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

type Category string

const (
	CategoryProgrammingLanguages Category = "programmingLanguages"
	CategoryWebTechnologies      Category = "webTechnologies"
	CategoryFrameworks           Category = "frameworks"
	CategoryDatabases            Category = "databases"
	CategoryTechnologies         Category = "technologies"
	CategoryTools                Category = "tools"
)

// Categories is the fixed category order used by import and export.
var Categories = []Category{
	CategoryProgrammingLanguages,
	CategoryWebTechnologies,
	CategoryFrameworks,
	CategoryDatabases,
	CategoryTechnologies,
	CategoryTools,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const DefaultProficiency = 80

var (
	ErrNotFound  = errors.New("skill not found")
	ErrDuplicate = errors.New("skill with this name and category already exists")
)

type Skill struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Proficiency int       `json:"proficiency"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Skill) Validate() error {
	fields := map[string]string{}
	if s.Name == "" || utf8.RuneCountInString(s.Name) > 100 {
		fields["name"] = "Name is required and must be at most 100 characters."
	}
	if !s.Category.Valid() {
		fields["category"] = "Unknown skill category."
	}
	if s.Proficiency < 0 || s.Proficiency > 100 {
		fields["proficiency"] = "Proficiency must be between 0 and 100."
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields)
	}
	return nil
}

type Filter struct {
	Category Category
}

// ByCategory groups skill names under every known category, empty categories included.
func ByCategory(skills []*Skill) map[Category][]string {
	out := make(map[Category][]string, len(Categories))
	for _, c := range Categories {
		out[c] = []string{}
	}
	for _, s := range skills {
		if _, ok := out[s.Category]; ok {
			out[s.Category] = append(out[s.Category], s.Name)
		}
	}
	return out
}

// Repository lists skills by category, then insertion order.
type Repository interface {
	// Save returns ErrDuplicate when (name, category) is taken.
	Save(ctx context.Context, s *Skill) error
	Update(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	FindByID(ctx context.Context, id uuid.UUID) (*Skill, error)
	List(ctx context.Context, filter Filter) ([]*Skill, error)
}
