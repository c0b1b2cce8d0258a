package portfolio

import (
	"errors"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/settings"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

var tracer = otel.Tracer("portfolio_usecase")

// Repositories groups every store the whole-dataset operations touch.
type Repositories struct {
	PersonalInfo   personalinfo.Repository
	Skills         skill.Repository
	Experience     experience.Repository
	Projects       project.Repository
	Certifications certification.Repository
	Settings       settings.Repository
}

type PortfolioUseCase struct {
	repos       Repositories
	tx          service.TxManager
	cache       service.Cache
	snapshotTTL time.Duration
	uploader    service.Uploader
	publisher   service.EventPublisher
	clock       service.Clock
	logger      logger.Logger

	// generation changes on every invalidation; a snapshot built under an older one is not cached.
	generation atomic.Uint64
}

type Options struct {
	Cache       service.Cache
	SnapshotTTL time.Duration
	Uploader    service.Uploader
	Publisher   service.EventPublisher
	Clock       service.Clock
}

func NewPortfolioUseCase(repos Repositories, tx service.TxManager, opts Options, log logger.Logger) *PortfolioUseCase {
	if opts.Clock == nil {
		opts.Clock = service.SystemClock{}
	}
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = 5 * time.Minute
	}
	return &PortfolioUseCase{
		repos:       repos,
		tx:          tx,
		cache:       opts.Cache,
		snapshotTTL: opts.SnapshotTTL,
		uploader:    opts.Uploader,
		publisher:   opts.Publisher,
		clock:       opts.Clock,
		logger:      log,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, personalinfo.ErrNotFound) || errors.Is(err, settings.ErrNotFound)
}
