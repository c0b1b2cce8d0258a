package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	authUC "github.com/khoahotran/portfolio-api/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio-api/internal/domain/access"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const (
	GinContextKeyPrincipal = "principal"
	GinContextKeyClaims    = "claims"
	GinContextKeyRequestID = "request_id"

	headerRequestID = "X-Request-ID"
)

var httpTracer = otel.Tracer("http_server")

// Authenticate resolves a bearer token when one is presented. Anonymous requests pass
// through; a presented but invalid token is rejected.
func Authenticate(uc *authUC.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			// DRF style clients send "Token <key>".
			tokenString = strings.TrimPrefix(authHeader, "Token ")
		}
		if tokenString == authHeader || tokenString == "" {
			c.Error(apperror.NewAuthRequired("invalid authorization header format"))
			c.Abort()
			return
		}

		principal, claims, err := uc.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(GinContextKeyPrincipal, principal)
		c.Set(GinContextKeyClaims, claims)
		c.Next()
	}
}

// Authorize consults the access policy for res, deriving the operation from the method.
func Authorize(res access.Resource) gin.HandlerFunc {
	return AuthorizeOp("", res)
}

// AuthorizeOp pins the operation class for routes whose method does not express it.
func AuthorizeOp(op access.Operation, res access.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		o := op
		if o == "" {
			o = access.OperationFromMethod(c.Request.Method)
		}
		principal, _ := PrincipalFrom(c)
		if err := access.Check(o, res, principal); err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (*access.Principal, bool) {
	v, ok := c.Get(GinContextKeyPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(*access.Principal)
	return p, ok && p != nil
}

func ClaimsFrom(c *gin.Context) (*auth.CustomClaims, bool) {
	v, ok := c.Get(GinContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.CustomClaims)
	return claims, ok && claims != nil
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(headerRequestID, reqID)
		c.Set(GinContextKeyRequestID, reqID)

		ctx, span := httpTracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("request_id", reqID)),
		)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if p, ok := PrincipalFrom(c); ok {
			fields = append(fields, zap.String("user_id", p.UserID.String()))
		}
		if sc := span.SpanContext(); sc.IsValid() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}

		switch {
		case status >= 500:
			log.Warn("HTTP Server Error", fields...)
		case status >= 400:
			log.Info("HTTP Client Error", fields...)
		default:
			log.Info("HTTP Request", fields...)
		}
	}
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		c.Next()
	}
}

// InvalidateSnapshotOnWrite drops the cached public snapshot after any successful write.
func InvalidateSnapshotOnWrite(invalidate func(ctx context.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		if c.Writer.Status() < http.StatusBadRequest && len(c.Errors) == 0 {
			invalidate(context.WithoutCancel(c.Request.Context()))
		}
	}
}
