package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"blogr/internal/domain"
)

const currentUserKey = "currentUser"

// loadCurrentUser resolves the session cookie to a user on every request.
// A missing, malformed, expired, or stale token (a user id that no longer
// exists) all resolve to anonymous; the request proceeds either way.
func (h *Handler) loadCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(sessionCookieName)
		if err != nil {
			c.Next()
			return
		}

		userID, err := userIDFromSessionToken(cookie, h.sessionSecret)
		if err != nil {
			c.Next()
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// currentUser returns the user bound to the request, or nil for anonymous.
func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// requestLogger logs each request with a generated id.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("requestID", requestID)

		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	}
}
