package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/adapters/persistence"
	portfolioUC "github.com/khoahotran/portfolio-api/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// Creates or updates the admin account from OWNER_* settings and optionally loads a
// portfolio document: go run ./scripts -import portfolio-data.json
func main() {
	importPath := flag.String("import", "", "portfolio JSON document to import after seeding the owner")
	flag.Parse()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}
	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	if cfg.Owner.Username == "" || cfg.Owner.Password == "" {
		log.Fatal("OWNER_USERNAME and OWNER_PASSWORD are required", os.ErrInvalid)
	}

	hash, err := auth.HashPassword(cfg.Owner.Password)
	if err != nil {
		log.Fatal("Cannot hash password", err)
	}

	if cfg.Store.AutoMigrate {
		if err := persistence.MigrateUp(cfg.Store.DSN, log); err != nil {
			log.Fatal("Cannot migrate", err)
		}
	}
	pool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("Cannot connect DB", err)
	}
	defer pool.Close()

	ctx := context.Background()
	owner := &user.User{
		ID:           uuid.New(),
		Username:     cfg.Owner.Username,
		Email:        cfg.Owner.Email,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := persistence.NewPostgresUserRepo(pool).Upsert(ctx, owner); err != nil {
		log.Fatal("Cannot add owner", err)
	}
	log.Info("Added or updated owner", zap.String("username", owner.Username))

	if *importPath == "" {
		return
	}
	raw, err := os.ReadFile(*importPath)
	if err != nil {
		log.Fatal("Cannot read import document", err)
	}
	uc := portfolioUC.NewPortfolioUseCase(portfolioUC.Repositories{
		PersonalInfo:   persistence.NewPostgresPersonalInfoRepo(pool, log),
		Skills:         persistence.NewPostgresSkillRepo(pool, log),
		Experience:     persistence.NewPostgresExperienceRepo(pool, log),
		Projects:       persistence.NewPostgresProjectRepo(pool, log),
		Certifications: persistence.NewPostgresCertificationRepo(pool, log),
		Settings:       persistence.NewPostgresSettingsRepo(pool, log),
	}, persistence.NewTxManager(pool, log), portfolioUC.Options{}, log)

	// Upsert wrote the stored id back into owner.
	out, err := uc.Import(ctx, raw, owner.ID)
	if err != nil {
		log.Fatal("Import failed", err)
	}
	log.Info("Portfolio seeded",
		zap.Int("skills", out.Skills),
		zap.Int("experience", out.Experience),
		zap.Int("projects", out.Projects),
		zap.Int("certifications", out.Certifications),
	)
}
