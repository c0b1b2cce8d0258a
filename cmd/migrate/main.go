package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/adapters/persistence"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const usage = "usage: migrate [-steps n] up|down|version|force <version>"

func main() {
	steps := flag.Int("steps", 0, "number of migrations to apply for up/down; 0 means all")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.Store.DSN == "" {
		appLogger.Fatal("DB_DSN is required", os.ErrInvalid)
	}
	m, err := persistence.NewMigrator(cfg.Store.DSN)
	if err != nil {
		appLogger.Fatal("Cannot create migrator", err)
	}
	defer m.Close()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = run(m, *steps, m.Up)
	case "down":
		err = run(m, -*steps, m.Down)
	case "force":
		var v int
		if _, scanErr := fmt.Sscanf(flag.Arg(1), "%d", &v); scanErr != nil {
			appLogger.Fatal("force needs a version number", scanErr)
		}
		err = m.Force(v)
	case "version":
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		appLogger.Fatal("Migration failed", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		appLogger.Fatal("Cannot read schema version", err)
	}
	appLogger.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
}

func run(m *migrate.Migrate, steps int, all func() error) error {
	if steps == 0 {
		return all()
	}
	return m.Steps(steps)
}
