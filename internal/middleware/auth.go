// Package middleware holds the gin middleware: the session gate and the
// redis rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"community-board/internal/service"
)

// SessionCookieName carries the signed session token in browser flows.
const SessionCookieName = "cb_session"

// Context keys set by Auth for downstream handlers.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextSession  = "session"
)

// Auth is the session gate. It resolves the request's token (session cookie,
// or a Bearer header for non-browser clients) to a live session and aborts
// anonymous requests: browser flows are redirected to the entry page, API
// flows get a 401.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	if authService == nil {
		panic("AuthService cannot be nil for Auth middleware")
	}

	return func(c *gin.Context) {
		token, fromHeader := extractToken(c)
		if token == "" {
			logrus.Debug("Auth middleware: no session token on protected route")
			reject(c, fromHeader)
			return
		}

		session, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			logrus.WithError(err).Warn("Auth middleware: invalid or expired session")
			reject(c, fromHeader)
			return
		}

		c.Set(ContextUserID, session.UserID)
		c.Set(ContextUsername, session.Username)
		c.Set(ContextSession, session)
		logrus.WithField("user_id", session.UserID).Debug("Auth middleware: user authenticated")
		c.Next()
	}
}

// extractToken prefers the session cookie and falls back to a Bearer header.
// The second result reports which source supplied the token, which decides
// the rejection style.
func extractToken(c *gin.Context) (string, bool) {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token, false
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return parts[1], true
}

func reject(c *gin.Context, api bool) {
	if api {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	} else {
		c.Redirect(http.StatusSeeOther, "/")
	}
	c.Abort()
}
