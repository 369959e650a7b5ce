package http

import (
	"github.com/gin-gonic/gin"

	"voice-assistant-engine/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.POST("/command", mw.RateLimit(), h.Process)
	rg.POST("/command/confirm", mw.RateLimit(), h.Confirm)
	rg.GET("/history", mw.RateLimit(), h.History)
}
