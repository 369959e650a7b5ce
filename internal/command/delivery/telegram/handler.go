package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"voice-assistant-engine/internal/command"
	"voice-assistant-engine/internal/model"
	pkgResponse "voice-assistant-engine/pkg/response"
	pkgTelegram "voice-assistant-engine/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine: a sensitive step can block on confirmation far
// longer than Telegram's webhook timeout allows.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (edited messages, polls, channel posts).
	if update.Message == nil || update.Message.From == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning the goroutine to avoid data
	// races on the gin context.
	msg := update.Message

	go func() {
		// Detach from the request context, which dies with the response.
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, "Something went wrong handling that. Please try again.")
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	switch text {
	case "/start":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"Hi! I'm your voice assistant bridge.\n\nTell me what to do and I'll route it:\n• *open spotify*\n• *search for flats in berlin*\n• *text deepanshu \"on my way\"*\n\nChain commands with *and* / *then*.",
			"Markdown",
		)
	case "/help":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"*Commands I understand:*\n`open <app>` - launch an application\n`go to <site>` - open a website\n`search for <anything>`\n`play <song>` / `pause` / `next`\n`text <contact> <message>`\n`what time is it`\n\nAnswer *yes* or *no* when I ask you to confirm something.",
			"Markdown",
		)
	}

	sc := model.Scope{
		UserID:  fmt.Sprintf("telegram_%d", msg.From.ID),
		Channel: "telegram",
	}

	// A bare yes/no resolves a pending confirmation instead of becoming
	// an utterance of its own.
	if affirmed, isAnswer := confirmationAnswer(text); isAnswer {
		_, err := h.uc.Confirm(ctx, sc, command.ConfirmInput{Affirmed: affirmed})
		if errors.Is(err, command.ErrNoPendingConfirmation) {
			return h.bot.SendMessage(msg.Chat.ID, "There's nothing waiting for a yes or no right now.")
		}
		if err != nil {
			return err
		}
		return nil
	}

	out, err := h.uc.Process(ctx, sc, command.ProcessInput{
		Text: text,
		Notify: func(prompt string) {
			if sendErr := h.bot.SendMessage(msg.Chat.ID, prompt); sendErr != nil {
				h.l.Warnf(ctx, "telegram handler: failed to send prompt: %v", sendErr)
			}
		},
	})
	if err != nil {
		if errors.Is(err, command.ErrEmptyCommand) {
			return nil
		}
		return err
	}

	return h.bot.SendMessage(msg.Chat.ID, out.Response)
}

// confirmationAnswer maps bare yes/no replies to a confirmation verdict.
func confirmationAnswer(text string) (affirmed, isAnswer bool) {
	switch strings.ToLower(text) {
	case "yes", "y", "yeah", "yep", "sure":
		return true, true
	case "no", "n", "nope", "cancel":
		return false, true
	}
	return false, false
}
