package auth

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/access"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

var tracer = otel.Tracer("auth_usecase")

type AuthUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	revoked  service.Cache
	clock    service.Clock
	logger   logger.Logger
}

func NewAuthUseCase(repo user.Repository, jwtSvc *auth.JWTService, revoked service.Cache, clock service.Clock, log logger.Logger) *AuthUseCase {
	if clock == nil {
		clock = service.SystemClock{}
	}
	return &AuthUseCase{userRepo: repo, jwtSvc: jwtSvc, revoked: revoked, clock: clock, logger: log}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *user.User
}

// Login only admits admins; every failure looks the same to the caller.
func (uc *AuthUseCase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	u, err := uc.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			span.RecordError(err)
			return nil, err
		}
		err = apperror.NewUnauthorized("unknown username", nil)
		span.RecordError(err)
		return nil, err
	}
	if !auth.CheckPasswordHash(in.Password, u.PasswordHash) {
		err := apperror.NewUnauthorized("incorrect password", nil)
		span.RecordError(err)
		return nil, err
	}
	if !u.IsAdmin {
		err := apperror.NewUnauthorized("user is not an admin", nil)
		span.RecordError(err)
		return nil, err
	}

	token, expiresAt, err := uc.jwtSvc.GenerateToken(u.ID, u.Username, u.IsAdmin)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	uc.logger.Info("User logged in", zap.String("user_id", u.ID.String()))
	return &LoginOutput{AccessToken: token, ExpiresAt: expiresAt, User: u}, nil
}

// Authenticate resolves a bearer token to a principal. Revoked and expired tokens fail.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*access.Principal, *auth.CustomClaims, error) {
	claims, err := uc.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, nil, apperror.NewAuthRequired(err.Error())
	}

	var revoked bool
	found, err := uc.revoked.GetJSON(ctx, service.RevokedTokenPrefix+claims.TokenID(), &revoked)
	if err != nil {
		return nil, nil, apperror.NewInternal("check token revocation", err)
	}
	if found && revoked {
		return nil, nil, apperror.NewAuthRequired("token has been revoked")
	}

	u, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil, apperror.NewAuthRequired("token subject no longer exists")
		}
		return nil, nil, err
	}
	return principalOf(u), claims, nil
}

// Logout revokes the token until it would have expired anyway.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *auth.CustomClaims) error {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(uc.clock.Now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := uc.revoked.SetJSON(ctx, service.RevokedTokenPrefix+claims.TokenID(), true, ttl); err != nil {
		return apperror.NewInternal("revoke token", err)
	}
	uc.logger.Info("User logged out", zap.String("user_id", claims.UserID.String()))
	return nil
}

func (uc *AuthUseCase) CurrentUser(ctx context.Context, p *access.Principal) (*user.User, error) {
	if p == nil {
		return nil, apperror.NewAuthRequired("no credential presented")
	}
	u, err := uc.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apperror.NewNotFound("User", p.UserID.String())
		}
		return nil, err
	}
	return u, nil
}

func principalOf(u *user.User) *access.Principal {
	return &access.Principal{UserID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}
}
