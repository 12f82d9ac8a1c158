package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"community-board/internal/service"
)

// flashServiceError converts a business error into the flash shown after the
// redirect back to the originating form. Unknown errors are logged and
// flattened to a generic message; no raw fault ever reaches the user.
func flashServiceError(c *gin.Context, err error, backTo string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrDuplicateIdentity),
		errors.Is(err, service.ErrAuthenticationFailed),
		errors.Is(err, service.ErrRejectedUpload):
		setFlash(c, "error", err.Error())
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		setFlash(c, "error", "Something went wrong. Please try again.")
	}
	redirect(c, backTo)
}
