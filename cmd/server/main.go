package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-api/adapters/http"
	"github.com/khoahotran/portfolio-api/adapters/media_storage"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	authUC "github.com/khoahotran/portfolio-api/internal/application/usecase/auth"
	certificationUC "github.com/khoahotran/portfolio-api/internal/application/usecase/certification"
	contactUC "github.com/khoahotran/portfolio-api/internal/application/usecase/contact"
	experienceUC "github.com/khoahotran/portfolio-api/internal/application/usecase/experience"
	personalinfoUC "github.com/khoahotran/portfolio-api/internal/application/usecase/personalinfo"
	portfolioUC "github.com/khoahotran/portfolio-api/internal/application/usecase/portfolio"
	projectUC "github.com/khoahotran/portfolio-api/internal/application/usecase/project"
	settingsUC "github.com/khoahotran/portfolio-api/internal/application/usecase/settings"
	skillUC "github.com/khoahotran/portfolio-api/internal/application/usecase/skill"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/tracing"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", err)
	}
	appLogger.Info("Start Portfolio API Server...", zap.String("env", cfg.App.Env), zap.String("store", cfg.Store.Driver))

	shutdownTracing, err := tracing.Init(cfg, appLogger, cfg.App.Name)
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}

	// Stores
	st, err := openStores(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open store", err)
	}
	defer st.close()

	appCache, closeCache := openCache(cfg, appLogger)
	defer closeCache()

	var publisher service.EventPublisher = event.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := event.NewKafkaPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		appLogger.Info("Kafka brokers not configured, events are dropped")
	}

	var uploader service.Uploader
	if media_storage.Enabled(cfg) {
		uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize uploader", err)
		}
	} else {
		appLogger.Info("Cloudinary not configured, uploads and backups are disabled")
	}

	// Use Cases
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	authUseCase := authUC.NewAuthUseCase(st.users, jwtSvc, appCache, nil, appLogger)
	contactUseCase := contactUC.NewContactUseCase(
		st.contacts, st.tx,
		contactUC.NewRateLimiter(st.contacts, cfg.RateLimit.ContactWindow, cfg.RateLimit.ContactLimit),
		publisher, nil, appLogger,
	)
	portfolioUseCase := portfolioUC.NewPortfolioUseCase(portfolioUC.Repositories{
		PersonalInfo:   st.personalInfo,
		Skills:         st.skills,
		Experience:     st.experience,
		Projects:       st.projects,
		Certifications: st.certifications,
		Settings:       st.settings,
	}, st.tx, portfolioUC.Options{
		Cache:       appCache,
		SnapshotTTL: cfg.Cache.SnapshotTTL,
		Uploader:    uploader,
		Publisher:   publisher,
	}, appLogger)

	// HTTP Handlers
	v := validation.New()
	handlers := httpAdapter.Handlers{
		Auth:         httpAdapter.NewAuthHandler(authUseCase, v),
		PersonalInfo: httpAdapter.NewPersonalInfoHandler(personalinfoUC.NewPersonalInfoUseCase(st.personalInfo, appLogger), v),
		Skill:        httpAdapter.NewSkillHandler(skillUC.NewSkillUseCase(st.skills, appLogger), v),
		Experience:   httpAdapter.NewExperienceHandler(experienceUC.NewExperienceUseCase(st.experience, appLogger), v),
		Project: httpAdapter.NewProjectHandler(
			projectUC.NewProjectUseCase(st.projects, uploader, appLogger),
			projectUC.NewFeedUseCase(st.projects, st.personalInfo, cfg.App.FrontendURL, appLogger),
			v, appLogger,
		),
		Certification: httpAdapter.NewCertificationHandler(certificationUC.NewCertificationUseCase(st.certifications, appLogger), v),
		Contact:       httpAdapter.NewContactHandler(contactUseCase, v),
		Settings:      httpAdapter.NewSettingsHandler(settingsUC.NewSettingsUseCase(st.settings, appLogger), v),
		Portfolio:     httpAdapter.NewPortfolioHandler(portfolioUseCase),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Handlers:           handlers,
		AuthUseCase:        authUseCase,
		InvalidateSnapshot: portfolioUseCase.InvalidateSnapshot,
		Logger:             appLogger,
	})

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-Request-ID"},
		AllowCredentials: !containsWildcard(cfg.CORS.AllowedOrigins),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	contactUseCase.Wait()
	if err := shutdownTracing(ctx); err != nil {
		appLogger.Error("Tracer shutdown failed", err)
	}
	appLogger.Info("Server exited")
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}
