package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"voice-assistant-engine/internal/command"
	"voice-assistant-engine/pkg/response"
)

// respondError translates use-case errors into HTTP responses. Unknown
// errors become an opaque 500.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, command.ErrEmptyCommand),
		errors.Is(err, command.ErrNoPendingConfirmation):
		response.Error(c, err, nil)
	default:
		response.InternalError(c, err)
	}
}
