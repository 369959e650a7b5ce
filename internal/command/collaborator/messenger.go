package collaborator

import (
	"context"
	"strings"

	"voice-assistant-engine/pkg/log"
	"voice-assistant-engine/pkg/telegram"
)

// TelegramMessenger delivers message_send steps through the Telegram bot.
// Contacts are resolved against a configured name to chat-ID map.
type TelegramMessenger struct {
	l        log.Logger
	bot      *telegram.Bot
	contacts map[string]int64
}

// NewTelegramMessenger creates a Messenger backed by the Telegram bot.
func NewTelegramMessenger(l log.Logger, bot *telegram.Bot, contacts map[string]int64) *TelegramMessenger {
	normalized := make(map[string]int64, len(contacts))
	for name, chatID := range contacts {
		normalized[strings.ToLower(strings.TrimSpace(name))] = chatID
	}
	return &TelegramMessenger{l: l, bot: bot, contacts: normalized}
}

var _ Messenger = (*TelegramMessenger)(nil)

// Send delivers body to the named contact.
func (m *TelegramMessenger) Send(ctx context.Context, contact, body string) (Result, error) {
	chatID, ok := m.contacts[strings.ToLower(strings.TrimSpace(contact))]
	if !ok {
		return Result{Outcome: OutcomeContactNotFound, Detail: contact}, nil
	}

	if err := m.bot.SendMessage(chatID, body); err != nil {
		m.l.Errorf(ctx, "messenger: send to %s: %v", contact, err)
		return Result{Outcome: OutcomeSendFailed, Detail: contact}, nil
	}

	return Result{Outcome: OutcomeSent, Detail: contact}, nil
}
