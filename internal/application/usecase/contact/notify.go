package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/contact"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// NotifyUseCase emails the owner about a new contact message. It runs in the worker.
type NotifyUseCase struct {
	repo     contact.Repository
	mailer   service.Mailer
	notifyTo []string
	logger   logger.Logger
}

func NewNotifyUseCase(repo contact.Repository, mailer service.Mailer, notifyTo []string, log logger.Logger) *NotifyUseCase {
	return &NotifyUseCase{repo: repo, mailer: mailer, notifyTo: notifyTo, logger: log}
}

func (uc *NotifyUseCase) Execute(ctx context.Context, evt service.ContactMessageCreatedEvent) error {
	m, err := uc.repo.FindByID(ctx, evt.MessageID)
	if errors.Is(err, contact.ErrNotFound) {
		// Deleted before the worker caught up.
		uc.logger.Warn("Contact message gone before notification", zap.String("message_id", evt.MessageID.String()), zap.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load contact message %s: %w", evt.MessageID, err)
	}
	if len(uc.notifyTo) == 0 {
		uc.logger.Warn("No notification recipient configured")
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "<p><strong>From:</strong> %s &lt;%s&gt;</p>", html.EscapeString(m.Name), html.EscapeString(m.Email))
	fmt.Fprintf(&body, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(m.Subject))
	body.WriteString(m.Body)

	err = uc.mailer.Send(ctx, service.Mail{
		To:      uc.notifyTo,
		ReplyTo: m.Email,
		Subject: "New portfolio message: " + m.Subject,
		Body:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("send notification for %s: %w", m.ID, err)
	}
	uc.logger.Info("Contact notification sent", zap.String("message_id", m.ID.String()))
	return nil
}
