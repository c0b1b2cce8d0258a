package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const (
	TypeContactMessageCreated = "contact.message_created"
	TypePortfolioImported     = "portfolio.imported"

	headerEventType = "event-type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes domain events as JSON. The event type travels in a header so
// consumers can dispatch without decoding the payload first.
type KafkaPublisher struct {
	contactWriter   messageWriter
	portfolioWriter messageWriter
	logger          logger.Logger
}

var _ service.EventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(cfg config.Config, log logger.Logger) (*KafkaPublisher, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		}
	}

	log.Info("Initialize Kafka producers successfully",
		zap.Strings("brokers", brokers),
		zap.String("contact_topic", cfg.Kafka.ContactTopic),
		zap.String("portfolio_topic", cfg.Kafka.PortfolioTopic),
	)
	return &KafkaPublisher{
		contactWriter:   newWriter(cfg.Kafka.ContactTopic),
		portfolioWriter: newWriter(cfg.Kafka.PortfolioTopic),
		logger:          log,
	}, nil
}

func (p *KafkaPublisher) PublishContactMessageCreated(ctx context.Context, evt service.ContactMessageCreatedEvent) error {
	return p.write(ctx, p.contactWriter, TypeContactMessageCreated, evt.MessageID.String(), evt)
}

func (p *KafkaPublisher) PublishPortfolioImported(ctx context.Context, evt service.PortfolioImportedEvent) error {
	return p.write(ctx, p.portfolioWriter, TypePortfolioImported, evt.ImportedBy.String(), evt)
}

func (p *KafkaPublisher) write(ctx context.Context, w messageWriter, eventType, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}
	msg := kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte(eventType)}},
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	err := errors.Join(p.contactWriter.Close(), p.portfolioWriter.Close())
	p.logger.Info("Closed Kafka producers")
	return err
}

// EventType reads the type header written by KafkaPublisher.
func EventType(msg kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == headerEventType {
			return string(h.Value)
		}
	}
	return ""
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishContactMessageCreated(context.Context, service.ContactMessageCreatedEvent) error {
	return nil
}

func (NopPublisher) PublishPortfolioImported(context.Context, service.PortfolioImportedEvent) error {
	return nil
}
