package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ContactEventHandler func(ctx context.Context, evt service.ContactMessageCreatedEvent) error

// ContactConsumer feeds contact events to a handler. A message is committed once it
// was handled or cannot ever be handled; handler failures leave it uncommitted.
type ContactConsumer struct {
	reader  messageReader
	handler ContactEventHandler
	logger  logger.Logger
}

func NewContactConsumer(brokers []string, topic, groupID string, handler ContactEventHandler, log logger.Logger) *ContactConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &ContactConsumer{reader: reader, handler: handler, logger: log}
}

// Run blocks until ctx is cancelled.
func (c *ContactConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			continue
		}
		c.handle(ctx, msg)
	}
}

func (c *ContactConsumer) handle(ctx context.Context, msg kafka.Message) {
	log := c.logger.With(zap.String("topic", msg.Topic), zap.Int64("offset", msg.Offset), zap.String("key", string(msg.Key)))

	if t := EventType(msg); t != TypeContactMessageCreated {
		log.Warn("Skipping event of unexpected type", zap.String("event_type", t))
		c.commit(ctx, msg)
		return
	}

	var evt service.ContactMessageCreatedEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		log.Error("Failed to unmarshal event, skipping", err)
		c.commit(ctx, msg)
		return
	}

	if err := c.handler(ctx, evt); err != nil {
		log.Error("Failed to process contact event", err, zap.String("message_id", evt.MessageID.String()))
		return
	}
	c.commit(ctx, msg)
}

func (c *ContactConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message", err)
	}
}

func (c *ContactConsumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("close kafka reader: %w", err)
	}
	return nil
}
