package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ContactMessageCreatedEvent struct {
	MessageID uuid.UUID `json:"message_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}

type PortfolioImportedEvent struct {
	ImportedBy     uuid.UUID `json:"imported_by"`
	Skills         int       `json:"skills"`
	Experience     int       `json:"experience"`
	Projects       int       `json:"projects"`
	Certifications int       `json:"certifications"`
	ImportedAt     time.Time `json:"imported_at"`
}

type EventPublisher interface {
	PublishContactMessageCreated(ctx context.Context, evt ContactMessageCreatedEvent) error
	PublishPortfolioImported(ctx context.Context, evt PortfolioImportedEvent) error
}
