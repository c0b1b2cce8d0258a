package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/adapters/event"
	"github.com/khoahotran/portfolio-api/adapters/mail"
	"github.com/khoahotran/portfolio-api/adapters/persistence"
	contactUC "github.com/khoahotran/portfolio-api/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/tracing"
)

// The worker turns contact events into owner notification emails.
func main() {
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Portfolio Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("Worker needs Kafka", os.ErrInvalid)
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		appLogger.Fatal("Worker needs the postgres store", os.ErrInvalid, zap.String("driver", cfg.Store.Driver))
	}

	shutdownTracing, err := tracing.Init(cfg, appLogger, cfg.App.Name+"-worker")
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	mailer, err := mail.NewSMTPMailer(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize mailer", err)
	}

	notifyUC := contactUC.NewNotifyUseCase(
		persistence.NewPostgresContactRepo(dbPool, appLogger),
		mailer,
		recipients(cfg),
		appLogger,
	)

	consumer := event.NewContactConsumer(cfg.Kafka.Brokers, cfg.Kafka.ContactTopic, cfg.Kafka.GroupID, notifyUC.Execute, appLogger)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", cfg.Kafka.ContactTopic), zap.String("group_id", cfg.Kafka.GroupID))
	if err := consumer.Run(ctx); err != nil {
		appLogger.Error("Consumer stopped", err)
	}
	appLogger.Info("Worker exited")
}

func recipients(cfg config.Config) []string {
	var out []string
	for _, addr := range strings.Split(cfg.Mail.NotifyTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	if len(out) == 0 && cfg.Owner.Email != "" {
		out = append(out, cfg.Owner.Email)
	}
	return out
}
