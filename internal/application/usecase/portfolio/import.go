package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/sanitize"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

type ImportOutput struct {
	Skills         int
	Experience     int
	Projects       int
	Certifications int
}

// records is a fully built and validated replacement dataset.
type records struct {
	info           *personalinfo.PersonalInfo
	skills         []*skill.Skill
	experience     []*experience.Experience
	projects       []*project.Project
	certifications []*certification.Certification
}

// Import replaces the whole dataset. Nothing is written unless the entire document
// validates, and the replacement itself is one transaction.
func (uc *PortfolioUseCase) Import(ctx context.Context, raw []byte, importedBy uuid.UUID) (*ImportOutput, error) {
	ctx, span := tracer.Start(ctx, "Import")
	defer span.End()

	doc, err := portfolio.ParseImport(raw)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	recs, err := uc.build(doc)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uc.tx.WithinTx(ctx, func(ctx context.Context) error { return uc.replaceAll(ctx, recs) }); err != nil {
		uc.logger.Error("Portfolio import rolled back", err)
		span.RecordError(err)
		return nil, apperror.NewImportFailed(err)
	}

	out := &ImportOutput{
		Skills:         len(recs.skills),
		Experience:     len(recs.experience),
		Projects:       len(recs.projects),
		Certifications: len(recs.certifications),
	}
	span.SetAttributes(
		attribute.Int("skills", out.Skills),
		attribute.Int("projects", out.Projects),
	)
	uc.logger.Info("Portfolio imported",
		zap.String("user_id", importedBy.String()),
		zap.Int("skills", out.Skills),
		zap.Int("experience", out.Experience),
		zap.Int("projects", out.Projects),
		zap.Int("certifications", out.Certifications),
	)

	uc.InvalidateSnapshot(ctx)
	uc.publishImported(ctx, importedBy, out)
	return out, nil
}

func (uc *PortfolioUseCase) replaceAll(ctx context.Context, recs *records) error {
	if err := uc.repos.PersonalInfo.Upsert(ctx, recs.info); err != nil {
		return fmt.Errorf("personal info: %w", err)
	}

	if err := uc.repos.Skills.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear skills: %w", err)
	}
	for _, s := range recs.skills {
		if err := uc.repos.Skills.Save(ctx, s); err != nil {
			return fmt.Errorf("skill %q: %w", s.Name, err)
		}
	}

	if err := uc.repos.Experience.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear experience: %w", err)
	}
	for _, e := range recs.experience {
		if err := uc.repos.Experience.Save(ctx, e); err != nil {
			return fmt.Errorf("experience %d: %w", e.Order, err)
		}
	}

	if err := uc.repos.Projects.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear projects: %w", err)
	}
	for _, p := range recs.projects {
		if err := uc.repos.Projects.Save(ctx, p); err != nil {
			return fmt.Errorf("project %d: %w", p.Order, err)
		}
	}

	if err := uc.repos.Certifications.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear certifications: %w", err)
	}
	for _, c := range recs.certifications {
		if err := uc.repos.Certifications.Save(ctx, c); err != nil {
			return fmt.Errorf("certification %d: %w", c.Order, err)
		}
	}
	return nil
}

// build turns the parsed document into records, assigning order from list position.
func (uc *PortfolioUseCase) build(doc *portfolio.ImportDocument) (*records, error) {
	now := uc.clock.Now()
	fields := map[string]string{}
	recs := &records{}

	info := doc.PersonalInfo
	info.Title = sanitize.PlainText(info.Title)
	info.Email = validation.NormalizeEmail(info.Email)
	info.Bio = sanitize.RichText(info.Bio)
	info.CreatedAt, info.UpdatedAt = now, now
	collect(fields, "personalInfo.", info.Validate())
	recs.info = &info

	for _, category := range skill.Categories {
		seen := map[string]bool{}
		for i, name := range doc.Skills[category] {
			s := &skill.Skill{
				ID:          uuid.New(),
				Name:        sanitize.PlainText(name),
				Category:    category,
				Proficiency: skill.DefaultProficiency,
				CreatedAt:   now,
			}
			prefix := fmt.Sprintf("skills.%s[%d].", category, i)
			if seen[s.Name] {
				fields[prefix+"name"] = "Duplicate skill in this category."
			}
			seen[s.Name] = true
			collect(fields, prefix, s.Validate())
			recs.skills = append(recs.skills, s)
		}
	}

	for i, in := range doc.Experience {
		e := &experience.Experience{
			ID:          uuid.New(),
			Title:       sanitize.PlainText(in.Title),
			Company:     sanitize.PlainText(in.Company),
			Duration:    sanitize.PlainText(in.Duration),
			Description: sanitize.RichText(in.Description),
			Order:       i,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		collect(fields, fmt.Sprintf("experience[%d].", i), e.Validate())
		recs.experience = append(recs.experience, e)
	}

	for i, in := range doc.Projects {
		p := &project.Project{
			ID:          uuid.New(),
			Title:       sanitize.PlainText(in.Title),
			Description: sanitize.RichText(in.Description),
			TechStack:   sanitize.PlainTexts(in.TechStack),
			GithubURL:   in.GithubURL,
			LiveURL:     in.LiveURL,
			ImageURL:    in.ImageURL,
			Order:       i,
			IsFeatured:  in.IsFeatured,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		collect(fields, fmt.Sprintf("projects[%d].", i), p.Validate())
		recs.projects = append(recs.projects, p)
	}

	for i, title := range doc.Certifications {
		c := &certification.Certification{
			ID:        uuid.New(),
			Title:     sanitize.PlainText(title),
			Order:     i,
			CreatedAt: now,
		}
		collect(fields, fmt.Sprintf("certifications[%d].", i), c.Validate())
		recs.certifications = append(recs.certifications, c)
	}

	if len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}
	return recs, nil
}

// collect copies field errors from a Validate result under prefix. Non-validation
// errors are kept under the prefix itself.
func collect(dst map[string]string, prefix string, err error) {
	if err == nil {
		return
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		for k, v := range appErr.Fields {
			dst[prefix+k] = v
		}
		return
	}
	dst[prefix[:len(prefix)-1]] = err.Error()
}

func (uc *PortfolioUseCase) publishImported(ctx context.Context, by uuid.UUID, out *ImportOutput) {
	if uc.publisher == nil {
		return
	}
	evt := service.PortfolioImportedEvent{
		ImportedBy:     by,
		Skills:         out.Skills,
		Experience:     out.Experience,
		Projects:       out.Projects,
		Certifications: out.Certifications,
		ImportedAt:     uc.clock.Now(),
	}
	if err := uc.publisher.PublishPortfolioImported(context.WithoutCancel(ctx), evt); err != nil {
		uc.logger.Error("Failed to publish portfolio imported event", err)
	}
}
