package telegram

import (
	"github.com/gin-gonic/gin"

	"voice-assistant-engine/internal/command"
	pkgLog "voice-assistant-engine/pkg/log"
	pkgTelegram "voice-assistant-engine/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

type handler struct {
	l   pkgLog.Logger
	uc  command.UseCase
	bot *pkgTelegram.Bot
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc command.UseCase, bot *pkgTelegram.Bot) Handler {
	return &handler{l: l, uc: uc, bot: bot}
}
