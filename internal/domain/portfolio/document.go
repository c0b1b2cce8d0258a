// Package portfolio holds the whole-dataset document shared by export and import.
package portfolio

import (
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
)

// ExportFilename is the suggested download name of an admin export.
const ExportFilename = "portfolio-data.json"

// Document is the assembled snapshot. Skills always carries every category key.
type Document struct {
	PersonalInfo   *personalinfo.PersonalInfo  `json:"personalInfo"`
	Skills         map[skill.Category][]string `json:"skills"`
	Experience     []*experience.Experience    `json:"experience"`
	Projects       []*project.Project          `json:"projects"`
	Certifications []string                    `json:"certifications"`
}

type ExperienceInput struct {
	Title       string
	Company     string
	Duration    string
	Description string
}

type ProjectInput struct {
	Title       string
	Description string
	TechStack   []string
	GithubURL   string
	LiveURL     string
	ImageURL    string
	IsFeatured  bool
}

// ImportDocument is a structurally valid import payload. Field content rules are
// applied again when the records are built.
type ImportDocument struct {
	PersonalInfo   personalinfo.PersonalInfo
	Skills         map[skill.Category][]string
	Experience     []ExperienceInput
	Projects       []ProjectInput
	Certifications []string
}
