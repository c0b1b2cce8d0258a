package contact

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/contact"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/sanitize"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

var tracer = otel.Tracer("contact_usecase")

type ContactUseCase struct {
	repo      contact.Repository
	tx        service.TxManager
	limiter   *RateLimiter
	publisher service.EventPublisher
	clock     service.Clock
	logger    logger.Logger

	pending sync.WaitGroup
}

func NewContactUseCase(
	repo contact.Repository,
	tx service.TxManager,
	limiter *RateLimiter,
	publisher service.EventPublisher,
	clock service.Clock,
	log logger.Logger,
) *ContactUseCase {
	if clock == nil {
		clock = service.SystemClock{}
	}
	return &ContactUseCase{repo: repo, tx: tx, limiter: limiter, publisher: publisher, clock: clock, logger: log}
}

func mapError(err error, id string) error {
	if errors.Is(err, contact.ErrNotFound) {
		return apperror.NewNotFound("ContactMessage", id)
	}
	return err
}

type CreateMessageInput struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	SourceIP string
}

// CreateMessage validates, then checks the limiter and inserts in one write transaction.
// The returned Decision is filled whenever the limiter ran, including on rejection.
func (uc *ContactUseCase) CreateMessage(ctx context.Context, in CreateMessageInput) (*contact.Message, Decision, error) {
	ctx, span := tracer.Start(ctx, "CreateMessage")
	defer span.End()

	m := &contact.Message{
		ID:       uuid.New(),
		Name:     in.Name,
		Email:    validation.NormalizeEmail(in.Email),
		Subject:  sanitize.PlainText(in.Subject),
		Body:     sanitize.RichText(in.Message),
		SourceIP: in.SourceIP,
	}
	if err := m.Validate(); err != nil {
		return nil, Decision{}, err
	}

	var decision Decision
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()
		d, err := uc.limiter.Check(ctx, now)
		if err != nil {
			return err
		}
		decision = d
		if !d.Allowed {
			return apperror.NewRateLimited(d.RetryAfter)
		}
		m.CreatedAt = now
		return uc.repo.Save(ctx, m)
	})
	if err != nil {
		if errors.Is(err, apperror.ErrRateLimited) {
			uc.logger.Warn("Contact message rate limited",
				zap.Int("count", decision.Count),
				zap.String("source_ip", in.SourceIP),
			)
		}
		span.RecordError(err)
		return nil, decision, err
	}
	span.SetAttributes(attribute.String("message_id", m.ID.String()))
	uc.logger.Info("Contact message received", zap.String("message_id", m.ID.String()), zap.String("source_ip", m.SourceIP))

	uc.publish(m)
	return m, decision, nil
}

func (uc *ContactUseCase) publish(m *contact.Message) {
	if uc.publisher == nil {
		return
	}
	evt := service.ContactMessageCreatedEvent{
		MessageID: m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		CreatedAt: m.CreatedAt,
	}
	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()
		if err := uc.publisher.PublishContactMessageCreated(context.Background(), evt); err != nil {
			uc.logger.Error("Failed to publish contact message event", err, zap.String("message_id", evt.MessageID.String()))
		}
	}()
}

// Wait blocks until in-flight event publications finish.
func (uc *ContactUseCase) Wait() {
	uc.pending.Wait()
}

func (uc *ContactUseCase) ListMessages(ctx context.Context, isRead *bool) ([]*contact.Message, error) {
	return uc.repo.List(ctx, contact.Filter{IsRead: isRead})
}

func (uc *ContactUseCase) GetMessage(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id.String())
	}
	return m, nil
}

func (uc *ContactUseCase) MarkRead(ctx context.Context, id uuid.UUID, isRead bool) (*contact.Message, error) {
	m, err := uc.repo.SetRead(ctx, id, isRead)
	if err != nil {
		return nil, mapError(err, id.String())
	}
	return m, nil
}

func (uc *ContactUseCase) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return mapError(uc.repo.Delete(ctx, id), id.String())
}
