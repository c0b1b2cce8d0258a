package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/cache"
	"github.com/khoahotran/portfolio-api/adapters/memstore"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func newAuthUseCase(t *testing.T) *AuthUseCase {
	t.Helper()
	ctx := context.Background()
	users := memstore.New().Users()

	for _, u := range []struct {
		name  string
		admin bool
	}{{"admin", true}, {"viewer", false}} {
		hash, err := auth.HashPassword("s3cret-pass")
		require.NoError(t, err)
		require.NoError(t, users.Upsert(ctx, &user.User{
			ID:           uuid.New(),
			Username:     u.name,
			Email:        u.name + "@example.com",
			PasswordHash: hash,
			IsAdmin:      u.admin,
			CreatedAt:    time.Now().UTC(),
		}))
	}

	jwtSvc := auth.NewJWTService("test-secret-test-secret-test-secret", time.Hour)
	return NewAuthUseCase(users, jwtSvc, cache.NewMemoryCache(time.Hour, time.Minute), nil, logger.NewNop())
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuthUseCase(t)

	out, err := uc.Login(ctx, LoginInput{Username: "admin", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.True(t, out.User.IsAdmin)
	assert.WithinDuration(t, time.Now().Add(time.Hour), out.ExpiresAt, time.Minute)

	cases := map[string]LoginInput{
		"wrong password": {Username: "admin", Password: "nope"},
		"unknown user":   {Username: "ghost", Password: "s3cret-pass"},
		"not an admin":   {Username: "viewer", Password: "s3cret-pass"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Login(ctx, in)
			assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		})
	}
}

func TestAuthenticateAndLogout(t *testing.T) {
	ctx := context.Background()
	uc := newAuthUseCase(t)
	out, err := uc.Login(ctx, LoginInput{Username: "admin", Password: "s3cret-pass"})
	require.NoError(t, err)

	p, claims, err := uc.Authenticate(ctx, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, p.UserID)
	assert.True(t, p.IsAdmin)

	u, err := uc.CurrentUser(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)

	require.NoError(t, uc.Logout(ctx, claims))
	_, _, err = uc.Authenticate(ctx, out.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, _, err = uc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = uc.CurrentUser(ctx, nil)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
