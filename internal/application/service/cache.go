package service

import (
	"context"
	"time"
)

type Cache interface {
	// GetJSON decodes the cached value into dest and reports whether the key existed.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const (
	SnapshotCacheKey   = "portfolio:snapshot"
	RevokedTokenPrefix = "auth:revoked:"
)
