package contact

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/memstore"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type recordingPublisher struct {
	mu      sync.Mutex
	created []service.ContactMessageCreatedEvent
}

func (p *recordingPublisher) PublishContactMessageCreated(_ context.Context, evt service.ContactMessageCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, evt)
	return nil
}

func (p *recordingPublisher) PublishPortfolioImported(context.Context, service.PortfolioImportedEvent) error {
	return nil
}

type fixture struct {
	uc    *ContactUseCase
	store *memstore.Store
	pub   *recordingPublisher
	now   time.Time
}

func newFixture() *fixture {
	f := &fixture{store: memstore.New(), pub: &recordingPublisher{}, now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo := f.store.ContactMessages()
	f.uc = NewContactUseCase(
		repo,
		f.store,
		NewRateLimiter(repo, 10*time.Minute, 3),
		f.pub,
		service.ClockFunc(func() time.Time { return f.now }),
		logger.NewNop(),
	)
	return f
}

func validInput() CreateMessageInput {
	return CreateMessageInput{
		Name:     "Grace Hopper",
		Email:    "Grace@Example.com",
		Subject:  "Hello",
		Message:  "<p>Nice work</p><script>alert(1)</script>",
		SourceIP: "203.0.113.9",
	}
}

func TestCreateMessageRateLimited(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for i := 0; i < 3; i++ {
		_, d, err := f.uc.CreateMessage(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, 2-i, d.Remaining)
		f.now = f.now.Add(time.Minute)
	}

	_, d, err := f.uc.CreateMessage(ctx, validInput())
	require.ErrorIs(t, err, apperror.ErrRateLimited)
	assert.False(t, d.Allowed)
	assert.Equal(t, 3, d.Count)
	assert.Equal(t, 10*time.Minute, apperror.From(err).RetryAfter)

	all, err := f.uc.ListMessages(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// The first message leaves the window ten minutes after it was sent.
	f.now = f.now.Add(8 * time.Minute)
	_, _, err = f.uc.CreateMessage(ctx, validInput())
	require.NoError(t, err)
}

func TestCreateMessageSanitizes(t *testing.T) {
	f := newFixture()

	m, _, err := f.uc.CreateMessage(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", m.Email)
	assert.Equal(t, "<p>Nice work</p>", m.Body)
	assert.Equal(t, "203.0.113.9", m.SourceIP)
	assert.False(t, m.IsRead)

	f.uc.Wait()
	require.Len(t, f.pub.created, 1)
	assert.Equal(t, m.ID, f.pub.created[0].MessageID)
}

func TestCreateMessageRejectsMarkupInName(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	in := validInput()
	in.Name = "<script>alert(1)</script>"

	_, _, err := f.uc.CreateMessage(ctx, in)
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, apperror.From(err).Fields, "name")

	all, err := f.uc.ListMessages(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMarkReadAndFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	first, _, err := f.uc.CreateMessage(ctx, validInput())
	require.NoError(t, err)
	f.now = f.now.Add(time.Second)
	second, _, err := f.uc.CreateMessage(ctx, validInput())
	require.NoError(t, err)

	m, err := f.uc.MarkRead(ctx, first.ID, true)
	require.NoError(t, err)
	assert.True(t, m.IsRead)

	unread := false
	list, err := f.uc.ListMessages(ctx, &unread)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	all, err := f.uc.ListMessages(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	require.NoError(t, f.uc.DeleteMessage(ctx, first.ID))
	_, err = f.uc.GetMessage(ctx, first.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

type recordingMailer struct {
	sent []service.Mail
}

func (m *recordingMailer) Send(_ context.Context, mail service.Mail) error {
	m.sent = append(m.sent, mail)
	return nil
}

func TestNotifyUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	msg, _, err := f.uc.CreateMessage(ctx, validInput())
	require.NoError(t, err)

	mailer := &recordingMailer{}
	notify := NewNotifyUseCase(f.store.ContactMessages(), mailer, []string{"owner@example.com"}, logger.NewNop())

	require.NoError(t, notify.Execute(ctx, service.ContactMessageCreatedEvent{MessageID: msg.ID}))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "grace@example.com", mailer.sent[0].ReplyTo)
	assert.Equal(t, "New portfolio message: Hello", mailer.sent[0].Subject)

	require.NoError(t, notify.Execute(ctx, service.ContactMessageCreatedEvent{}), "missing messages are skipped")
	assert.Len(t, mailer.sent, 1)
}

func TestNotifyEscapesPlainFieldsInBody(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	in := validInput()
	in.Subject = "Q&A about <b>work</b> & rates"
	msg, _, err := f.uc.CreateMessage(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Q&A about work & rates", msg.Subject, "stored as plain text, not entity encoded")

	mailer := &recordingMailer{}
	notify := NewNotifyUseCase(f.store.ContactMessages(), mailer, []string{"owner@example.com"}, logger.NewNop())
	require.NoError(t, notify.Execute(ctx, service.ContactMessageCreatedEvent{MessageID: msg.ID}))

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Body, "Q&amp;A about work &amp; rates")
}
