package main

import (
	"time"

	"github.com/khoahotran/portfolio-api/adapters/cache"
	"github.com/khoahotran/portfolio-api/adapters/memstore"
	"github.com/khoahotran/portfolio-api/adapters/persistence"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/contact"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/settings"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type stores struct {
	tx             service.TxManager
	users          user.Repository
	personalInfo   personalinfo.Repository
	settings       settings.Repository
	skills         skill.Repository
	experience     experience.Repository
	projects       project.Repository
	certifications certification.Repository
	contacts       contact.Repository

	close func()
}

func openStores(cfg config.Config, log logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn("Using in-memory store, data is lost on restart")
		s := memstore.New()
		return &stores{
			tx:             s,
			users:          s.Users(),
			personalInfo:   s.PersonalInfo(),
			settings:       s.Settings(),
			skills:         s.Skills(),
			experience:     s.Experiences(),
			projects:       s.Projects(),
			certifications: s.Certifications(),
			contacts:       s.ContactMessages(),
			close:          func() {},
		}, nil
	}

	if cfg.Store.AutoMigrate {
		if err := persistence.MigrateUp(cfg.Store.DSN, log); err != nil {
			return nil, err
		}
	}
	pool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		return nil, err
	}
	return &stores{
		tx:             persistence.NewTxManager(pool, log),
		users:          persistence.NewPostgresUserRepo(pool),
		personalInfo:   persistence.NewPostgresPersonalInfoRepo(pool, log),
		settings:       persistence.NewPostgresSettingsRepo(pool, log),
		skills:         persistence.NewPostgresSkillRepo(pool, log),
		experience:     persistence.NewPostgresExperienceRepo(pool, log),
		projects:       persistence.NewPostgresProjectRepo(pool, log),
		certifications: persistence.NewPostgresCertificationRepo(pool, log),
		contacts:       persistence.NewPostgresContactRepo(pool, log),
		close:          pool.Close,
	}, nil
}

// openCache prefers Redis and falls back to a process local cache.
func openCache(cfg config.Config, log logger.Logger) (service.Cache, func()) {
	if cfg.Redis.Addr != "" {
		rdb, err := persistence.NewRedisClient(cfg, log)
		if err == nil {
			return cache.NewRedisCache(rdb), func() { _ = rdb.Close() }
		}
		log.Error("Redis unavailable, falling back to in-process cache", err)
	}
	return cache.NewMemoryCache(cfg.Cache.SnapshotTTL, 10*time.Minute), func() {}
}
