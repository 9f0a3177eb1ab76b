package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDContextKey   = "request_id"
	requestIDHeaderName   = "X-Request-ID"
	currentUserContextKey = "current_user"
	maxRequestIDLength    = 128
)

// requestIDFromContext returns the request id or an empty string.
func requestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}

// requestIDMiddleware tags every request with an id, echoes it in the
// response and writes one log line when the request completes.
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(requestIDHeaderName))
		if len(requestID) > maxRequestIDLength {
			requestID = requestID[:maxRequestIDLength]
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(requestIDContextKey, requestID)
		c.Writer.Header().Set(requestIDHeaderName, requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		s.logger.Info(c.Request.Context(), "request",
			"request_id", requestID,
			"method", c.Request.Method,
			"route", route,
			"status", c.Writer.Status(),
			"latency_ms", float64(time.Since(startedAt).Microseconds())/1000.0,
			"client_ip", c.ClientIP(),
		)
	}
}

func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		s.logger.Error(c.Request.Context(), "panic while serving request",
			"request_id", requestIDFromContext(c), "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Detail: "Internal Server Error"})
	})
}

// authMiddleware resolves the bearer token to a user and binds it to the
// context. Requests without a usable token never reach the handler.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := s.logger.With("request_id", requestIDFromContext(c))

		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			log.Info(ctx, "auth rejected", "reason", "missing bearer token")
			writeError(c, s.logger, common.ErrMissingCredentials)
			return
		}

		subject, err := s.tokens.Verify(token, s.now())
		if err != nil {
			reason := "invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				reason = "expired token"
			}
			log.Info(ctx, "auth rejected", "reason", reason, "error", err.Error())
			writeError(c, s.logger, common.ErrInvalidCredentials)
			return
		}

		user, err := s.users.FindByEmail(ctx, subject)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				log.Info(ctx, "auth rejected", "reason", "unknown subject")
				writeError(c, s.logger, common.ErrInvalidCredentials)
				return
			}
			writeError(c, s.logger, err)
			return
		}

		c.Set(currentUserContextKey, user)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// currentUser returns the user bound by authMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserContextKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}
