package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// FlashCookieName holds one-shot status messages across the redirect of the
// Post/Redirect/Get cycle. The renderer pops it on the next GET.
const FlashCookieName = "cb_flash"

// Flash is a one-shot user-visible status message.
type Flash struct {
	Level   string `json:"level"` // "success" or "error"
	Message string `json:"message"`
}

// setFlash stores the message for the next request.
func setFlash(c *gin.Context, level, message string) {
	value := url.QueryEscape(level + "|" + message)
	c.SetCookie(FlashCookieName, value, 60, "/", "", false, true)
}

// popFlash returns the pending flash, if any, and clears it.
func popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(FlashCookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(FlashCookieName, "", -1, "/", "", false, true)
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	level, message, found := strings.Cut(decoded, "|")
	if !found {
		return &Flash{Level: "success", Message: decoded}
	}
	return &Flash{Level: level, Message: message}
}

// redirect finishes a form POST with the Post/Redirect/Get discipline.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
