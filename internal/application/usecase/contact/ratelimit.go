package contact

import (
	"context"
	"time"

	"github.com/khoahotran/portfolio-api/internal/domain/contact"
)

const (
	DefaultWindow = 10 * time.Minute
	DefaultLimit  = 3
)

// RateLimiter bounds message creation across all senders. The count is read from the
// repository so the window survives restarts.
type RateLimiter struct {
	repo   contact.Repository
	window time.Duration
	limit  int
}

func NewRateLimiter(repo contact.Repository, window time.Duration, limit int) *RateLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &RateLimiter{repo: repo, window: window, limit: limit}
}

type Decision struct {
	Allowed   bool
	Limit     int
	Count     int
	Remaining int
	// RetryAfter is the wait before the window is guaranteed to have room again.
	RetryAfter time.Duration
}

// Check counts messages in the trailing window ending at now. Callers that go on to
// insert must run Check and the insert in the same write transaction.
func (l *RateLimiter) Check(ctx context.Context, now time.Time) (Decision, error) {
	count, err := l.repo.CountCreatedSince(ctx, now.Add(-l.window))
	if err != nil {
		return Decision{}, err
	}
	d := Decision{Limit: l.limit, Count: count, Allowed: count < l.limit}
	if d.Allowed {
		d.Remaining = l.limit - count - 1
	} else {
		d.RetryAfter = l.window
	}
	return d, nil
}
