package api

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextUserID    = "user_id"
	contextRequestID = "request_id"
	headerRequestID  = "X-Request-ID"
)

type TokenParser interface {
	Parse(token string) (int64, error)
}

var (
	errAuthRequired = domain.NewError(domain.ErrAuthRequired, "AUTH_REQUIRED", "Authentication required")
	errBadScheme    = domain.NewError(domain.ErrInvalidToken, "INVALID_TOKEN", "Invalid or expired token")
)

// RequestID echoes the caller's X-Request-ID or mints one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerRequestID))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(contextRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(contextRequestID),
		}
		if userID, ok := UserIDFrom(c); ok {
			attrs = append(attrs, "user_id", userID)
		}
		logger.InfoContext(c.Request.Context(), "http request", attrs...)
	}
}

// RequireAuth resolves the bearer token to a user id. A missing credential
// is 401; a malformed, forged or expired one is 403.
func RequireAuth(tokens TokenParser, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			writeError(c, logger, errAuthRequired)
			return
		}

		scheme, token, _ := strings.Cut(header, " ")
		if !strings.EqualFold(scheme, "Bearer") {
			writeError(c, logger, errBadScheme)
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.Set(contextUserID, userID)
		c.Next()
	}
}

// UserIDFrom returns the id RequireAuth stored on the context.
func UserIDFrom(c *gin.Context) (int64, bool) {
	v, ok := c.Get(contextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
