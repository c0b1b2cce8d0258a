package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	contactW, portfolioW := &fakeWriter{}, &fakeWriter{}
	p := &KafkaPublisher{contactWriter: contactW, portfolioWriter: portfolioW, logger: logger.NewNop()}

	evt := service.ContactMessageCreatedEvent{MessageID: uuid.New(), Name: "Grace", Email: "grace@example.com", Subject: "Hi", CreatedAt: time.Now().UTC()}
	require.NoError(t, p.PublishContactMessageCreated(context.Background(), evt))
	require.NoError(t, p.PublishPortfolioImported(context.Background(), service.PortfolioImportedEvent{ImportedBy: uuid.New(), Skills: 2}))

	require.Len(t, contactW.msgs, 1)
	msg := contactW.msgs[0]
	assert.Equal(t, evt.MessageID.String(), string(msg.Key))
	assert.Equal(t, TypeContactMessageCreated, EventType(msg))

	var decoded service.ContactMessageCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, evt.Email, decoded.Email)

	require.Len(t, portfolioW.msgs, 1)
	assert.Equal(t, TypePortfolioImported, EventType(portfolioW.msgs[0]))

	require.NoError(t, p.Close())
	assert.True(t, contactW.closed)
	assert.True(t, portfolioW.closed)
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	p := &KafkaPublisher{contactWriter: &fakeWriter{err: errors.New("broker down")}, portfolioWriter: &fakeWriter{}, logger: logger.NewNop()}

	err := p.PublishContactMessageCreated(context.Background(), service.ContactMessageCreatedEvent{MessageID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

type fakeReader struct {
	queue     []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.queue) == 0 {
		return kafka.Message{}, context.Canceled
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func contactMessage(t *testing.T, offset int64, evt service.ContactMessageCreatedEvent) kafka.Message {
	t.Helper()
	value, err := json.Marshal(evt)
	require.NoError(t, err)
	return kafka.Message{
		Offset:  offset,
		Value:   value,
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte(TypeContactMessageCreated)}},
	}
}

func TestContactConsumer(t *testing.T) {
	ok := service.ContactMessageCreatedEvent{MessageID: uuid.New()}
	failing := service.ContactMessageCreatedEvent{MessageID: uuid.New()}

	reader := &fakeReader{queue: []kafka.Message{
		contactMessage(t, 1, ok),
		{Offset: 2, Value: []byte("not json"), Headers: []kafka.Header{{Key: headerEventType, Value: []byte(TypeContactMessageCreated)}}},
		{Offset: 3, Value: []byte("{}"), Headers: []kafka.Header{{Key: headerEventType, Value: []byte("other")}}},
		contactMessage(t, 4, failing),
	}}

	var handled []uuid.UUID
	c := &ContactConsumer{
		reader: reader,
		handler: func(_ context.Context, evt service.ContactMessageCreatedEvent) error {
			handled = append(handled, evt.MessageID)
			if evt.MessageID == failing.MessageID {
				return errors.New("smtp down")
			}
			return nil
		},
		logger: logger.NewNop(),
	}

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, []uuid.UUID{ok.MessageID, failing.MessageID}, handled)
	assert.Equal(t, []int64{1, 2, 3}, reader.committed, "failed handling stays uncommitted")
}

func TestNopPublisher(t *testing.T) {
	var p service.EventPublisher = NopPublisher{}
	assert.NoError(t, p.PublishContactMessageCreated(context.Background(), service.ContactMessageCreatedEvent{}))
	assert.NoError(t, p.PublishPortfolioImported(context.Background(), service.PortfolioImportedEvent{}))
}
