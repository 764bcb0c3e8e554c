package backofficeserver

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authports "github.com/Apurer/go-gin-backoffice/internal/domains/auth/ports"
	apierrors "github.com/Apurer/go-gin-backoffice/internal/shared/errors"
)

const (
	// RequestIDHeader is echoed on every response.
	RequestIDHeader = "X-Request-ID"

	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"

	bearerPrefix = "Bearer "
)

// RequestID propagates the caller's X-Request-ID or mints a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequireToken rejects requests without a valid bearer token of the given kind.
// The verified user id is stored under ContextKeyUserID.
func RequireToken(verifier authports.TokenVerifier, kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if verifier == nil || !strings.HasPrefix(header, bearerPrefix) {
			respondProblem(c, apierrors.ErrUnauthorized)
			return
		}
		claims, err := verifier.Verify(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)), kind)
		if err != nil {
			respondProblem(c, apierrors.ErrUnauthorized)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// RequestLogger logs one line per request once the handler chain has finished.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		logger.LogAttrs(c.Request.Context(), level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.String("request_id", c.GetString(ContextKeyRequestID)),
		)
	}
}

// UserID returns the authenticated user id set by RequireToken.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
