package portfolio

import (
	"encoding/json"
	"fmt"

	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

const msgRequired = "This field is required."

// PersonalInfoFields must all be present in an import document.
var PersonalInfoFields = []string{"name", "title", "email", "phone", "github", "linkedin", "bio"}

type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// ParseImport checks the shape of an import payload without touching any store.
// Every problem found is reported, keyed by its JSON path.
func ParseImport(raw []byte) (*ImportDocument, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return nil, apperror.NewFieldError("body", "Request body must be a JSON object.")
	}

	errs := fieldErrors{}
	doc := &ImportDocument{
		Skills: parseSkills(top["skills"], errs),
	}
	parsePersonalInfo(top["personalInfo"], doc, errs)
	doc.Experience = parseExperience(top["experience"], errs)
	doc.Projects = parseProjects(top["projects"], errs)
	doc.Certifications = parseCertifications(top["certifications"], errs)

	if len(errs) > 0 {
		return nil, apperror.NewValidation(errs)
	}
	return doc, nil
}

func parsePersonalInfo(raw json.RawMessage, doc *ImportDocument, errs fieldErrors) {
	obj, ok := object(raw, "personalInfo", errs)
	if !ok {
		return
	}
	values := make(map[string]string, len(PersonalInfoFields))
	for _, field := range PersonalInfoFields {
		path := "personalInfo." + field
		v, present := obj[field]
		if !present {
			errs.add(path, msgRequired)
			continue
		}
		s, ok := v.(string)
		if !ok {
			errs.add(path, "Must be a string.")
			continue
		}
		values[field] = s
	}
	p := &doc.PersonalInfo
	p.Name = values["name"]
	p.Title = values["title"]
	p.Email = values["email"]
	p.Phone = values["phone"]
	p.Github = values["github"]
	p.Linkedin = values["linkedin"]
	p.Bio = values["bio"]
}

func parseSkills(raw json.RawMessage, errs fieldErrors) map[skill.Category][]string {
	out := make(map[skill.Category][]string, len(skill.Categories))
	for _, c := range skill.Categories {
		out[c] = []string{}
	}
	obj, ok := object(raw, "skills", errs)
	if !ok {
		return out
	}
	for key, v := range obj {
		path := "skills." + key
		category := skill.Category(key)
		if !category.Valid() {
			errs.add(path, "Unknown skill category.")
			continue
		}
		names, ok := stringList(v)
		if !ok {
			errs.add(path, "Must be a list of skill names.")
			continue
		}
		out[category] = names
	}
	return out
}

func parseExperience(raw json.RawMessage, errs fieldErrors) []ExperienceInput {
	items, ok := objectList(raw, "experience", errs)
	if !ok {
		return nil
	}
	out := make([]ExperienceInput, 0, len(items))
	for i, item := range items {
		prefix := fmt.Sprintf("experience[%d].", i)
		out = append(out, ExperienceInput{
			Title:       requiredString(item, prefix, "title", errs),
			Company:     requiredString(item, prefix, "company", errs),
			Duration:    requiredString(item, prefix, "duration", errs),
			Description: requiredString(item, prefix, "description", errs),
		})
	}
	return out
}

func parseProjects(raw json.RawMessage, errs fieldErrors) []ProjectInput {
	items, ok := objectList(raw, "projects", errs)
	if !ok {
		return nil
	}
	out := make([]ProjectInput, 0, len(items))
	for i, item := range items {
		prefix := fmt.Sprintf("projects[%d].", i)
		p := ProjectInput{
			Title:       requiredString(item, prefix, "title", errs),
			Description: requiredString(item, prefix, "description", errs),
			GithubURL:   optionalString(item, prefix, errs, "github_url", "githubUrl"),
			LiveURL:     optionalString(item, prefix, errs, "live_url", "liveUrl"),
			ImageURL:    optionalString(item, prefix, errs, "image"),
			TechStack:   []string{},
		}
		if v, key, found := firstOf(item, "techStack", "tech_stack"); found && v != nil {
			stack, ok := stringList(v)
			if !ok {
				errs.add(prefix+key, "Must be a list of strings.")
			} else {
				p.TechStack = stack
			}
		}
		if v, key, found := firstOf(item, "is_featured", "isFeatured"); found && v != nil {
			b, ok := v.(bool)
			if !ok {
				errs.add(prefix+key, "Must be a boolean.")
			}
			p.IsFeatured = b
		}
		out = append(out, p)
	}
	return out
}

func parseCertifications(raw json.RawMessage, errs fieldErrors) []string {
	if raw == nil {
		errs.add("certifications", msgRequired)
		return nil
	}
	var titles []string
	if err := json.Unmarshal(raw, &titles); err != nil || titles == nil {
		errs.add("certifications", "Must be a list of strings.")
		return nil
	}
	for i, t := range titles {
		if t == "" {
			errs.add(fmt.Sprintf("certifications[%d]", i), "This field may not be blank.")
		}
	}
	return titles
}

func object(raw json.RawMessage, path string, errs fieldErrors) (map[string]any, bool) {
	if raw == nil {
		errs.add(path, msgRequired)
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		errs.add(path, "Must be an object.")
		return nil, false
	}
	return obj, true
}

func objectList(raw json.RawMessage, path string, errs fieldErrors) ([]map[string]any, bool) {
	if raw == nil {
		errs.add(path, msgRequired)
		return nil, false
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		errs.add(path, "Must be a list of objects.")
		return nil, false
	}
	for i, item := range items {
		if item == nil {
			errs.add(fmt.Sprintf("%s[%d]", path, i), "Must be an object.")
			return nil, false
		}
	}
	return items, true
}

func stringList(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func requiredString(obj map[string]any, prefix, key string, errs fieldErrors) string {
	v, ok := obj[key]
	if !ok || v == nil {
		errs.add(prefix+key, msgRequired)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		errs.add(prefix+key, "Must be a string.")
		return ""
	}
	return s
}

// optionalString reads the first present key; absent or null yields "".
func optionalString(obj map[string]any, prefix string, errs fieldErrors, keys ...string) string {
	v, key, found := firstOf(obj, keys...)
	if !found || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		errs.add(prefix+key, "Must be a string.")
		return ""
	}
	return s
}

func firstOf(obj map[string]any, keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v, k, true
		}
	}
	return nil, "", false
}
