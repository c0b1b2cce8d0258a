package portfolio

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
)

// Export assembles the whole dataset from one consistent read. An empty store exports
// the default personal info without persisting it.
func (uc *PortfolioUseCase) Export(ctx context.Context) (*portfolio.Document, error) {
	ctx, span := tracer.Start(ctx, "Export")
	defer span.End()

	doc := &portfolio.Document{}
	err := uc.tx.WithinReadTx(ctx, func(ctx context.Context) error {
		info, err := uc.repos.PersonalInfo.Get(ctx)
		if isNotFound(err) {
			d := personalinfo.Defaults()
			info, err = &d, nil
		}
		if err != nil {
			return err
		}
		doc.PersonalInfo = info

		skills, err := uc.repos.Skills.List(ctx, skill.Filter{})
		if err != nil {
			return err
		}
		doc.Skills = skill.ByCategory(skills)

		if doc.Experience, err = uc.repos.Experience.List(ctx); err != nil {
			return err
		}
		if doc.Projects, err = uc.repos.Projects.List(ctx, project.Filter{}); err != nil {
			return err
		}

		certs, err := uc.repos.Certifications.List(ctx)
		if err != nil {
			return err
		}
		doc.Certifications = certification.Titles(certs)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return doc, nil
}

// Snapshot serves the public document from the cache when possible. Cache failures
// degrade to a direct export.
func (uc *PortfolioUseCase) Snapshot(ctx context.Context) (*portfolio.Document, error) {
	if uc.cache != nil {
		var cached portfolio.Document
		found, err := uc.cache.GetJSON(ctx, service.SnapshotCacheKey, &cached)
		if err != nil {
			uc.logger.Warn("Snapshot cache read failed", zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	gen := uc.generation.Load()
	doc, err := uc.Export(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache == nil || uc.generation.Load() != gen {
		return doc, nil
	}
	if err := uc.cache.SetJSON(ctx, service.SnapshotCacheKey, doc, uc.snapshotTTL); err != nil {
		uc.logger.Warn("Snapshot cache write failed", zap.Error(err))
		return doc, nil
	}
	// An invalidation that raced the write must not leave this document behind.
	if uc.generation.Load() != gen {
		if err := uc.cache.Del(ctx, service.SnapshotCacheKey); err != nil {
			uc.logger.Warn("Snapshot cache invalidation failed", zap.Error(err))
		}
	}
	return doc, nil
}

func (uc *PortfolioUseCase) InvalidateSnapshot(ctx context.Context) {
	uc.generation.Add(1)
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Del(ctx, service.SnapshotCacheKey); err != nil {
		uc.logger.Warn("Snapshot cache invalidation failed", zap.Error(err))
	}
}
