// Package http holds the gin handlers for the form-driven HTTP surface.
// POST routes follow Post/Redirect/Get: every outcome, success or business
// error, becomes a flash message plus a redirect.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"community-board/internal/middleware"
	"community-board/internal/service"
)

// AuthHandler serves signup, login and logout.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /signup (username, email, password, confirm_password).
func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	user, err := h.authService.Register(c.Request.Context(), username, email, password, confirm)
	if err != nil {
		logrus.WithField("username", username).WithError(err).Warn("Handler.Signup: registration failed")
		flashServiceError(c, err, "/signup")
		return
	}

	logrus.WithField("user_id", user.ID).Info("Handler.Signup: user registered")
	setFlash(c, "success", "Account created! Please login.")
	redirect(c, "/login")
}

// Login handles POST /login. Success establishes the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.authService.Login(c.Request.Context(), username, password)
	if err != nil {
		logrus.WithField("username", username).WithError(err).Warn("Handler.Login: authentication failed")
		flashServiceError(c, err, "/login")
		return
	}

	maxAge := int(h.authService.SessionTTL().Seconds())
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)
	setFlash(c, "success", "Login successful!")
	redirect(c, "/")
}

// Logout handles GET /logout: the server-side session record is deleted and
// the cookie cleared. An absent or stale token still lands on the entry page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			logrus.WithError(err).Error("Handler.Logout: failed to invalidate session")
		}
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	setFlash(c, "success", "Logged out successfully")
	redirect(c, "/")
}

// Entry handles GET /, the redirect target of the session gate. Rendering is
// the frontend's concern; this reports the session state and pending flash.
func (h *AuthHandler) Entry(c *gin.Context) {
	response := gin.H{"authenticated": false}
	if flash := popFlash(c); flash != nil {
		response["flash"] = flash
	}
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if session, err := h.authService.Authenticate(c.Request.Context(), token); err == nil {
			response["authenticated"] = true
			response["username"] = session.Username
		}
	}
	SuccessResponse(c, http.StatusOK, response)
}
