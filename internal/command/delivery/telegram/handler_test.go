package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"voice-assistant-engine/internal/command"
	commandTelegram "voice-assistant-engine/internal/command/delivery/telegram"
	"voice-assistant-engine/internal/model"
	"voice-assistant-engine/pkg/log"
	pkgTelegram "voice-assistant-engine/pkg/telegram"
)

type mockUseCase struct {
	mu sync.Mutex

	processOutput command.ProcessOutput
	processErr    error
	confirmErr    error

	processedTexts []string
	confirmCalls   []bool
	lastScope      model.Scope
}

func (m *mockUseCase) Process(ctx context.Context, sc model.Scope, input command.ProcessInput) (command.ProcessOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processedTexts = append(m.processedTexts, input.Text)
	m.lastScope = sc
	return m.processOutput, m.processErr
}

func (m *mockUseCase) Confirm(ctx context.Context, sc model.Scope, input command.ConfirmInput) (command.ConfirmOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmCalls = append(m.confirmCalls, input.Affirmed)
	m.lastScope = sc
	if m.confirmErr != nil {
		return command.ConfirmOutput{}, m.confirmErr
	}
	return command.ConfirmOutput{Resolved: true}, nil
}

func (m *mockUseCase) History(ctx context.Context, sc model.Scope, input command.HistoryInput) (command.HistoryOutput, error) {
	return command.HistoryOutput{}, nil
}

// botRecorder captures messages the bot sends out.
type botRecorder struct {
	mu    sync.Mutex
	texts []string
}

func (b *botRecorder) sent() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.texts...)
}

func (b *botRecorder) waitFor(t *testing.T, substr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, text := range b.sent() {
			if strings.Contains(text, substr) {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("bot never sent a message containing %q; sent: %v", substr, b.sent())
}

func newFixture(t *testing.T, uc command.UseCase) (*gin.Engine, *botRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := &botRecorder{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			var req map[string]interface{}
			json.NewDecoder(r.Body).Decode(&req)
			if text, ok := req["text"].(string); ok {
				rec.mu.Lock()
				rec.texts = append(rec.texts, text)
				rec.mu.Unlock()
			}
			w.Write([]byte(`{"ok": true}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(ts.Close)

	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL)

	h := commandTelegram.New(log.NewNop(), uc, bot)
	r := gin.New()
	r.POST("/webhook/telegram", h.HandleWebhook)
	return r, rec
}

func postUpdate(t *testing.T, r *gin.Engine, text string) *httptest.ResponseRecorder {
	t.Helper()
	update := pkgTelegram.Update{
		UpdateID: 1,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			From:      &pkgTelegram.User{ID: 42, FirstName: "Test"},
			Chat:      &pkgTelegram.Chat{ID: 42, Type: "private"},
			Text:      text,
		},
	}
	body, _ := json.Marshal(update)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body)))
	return w
}

func TestHandleWebhook(t *testing.T) {
	t.Run("Utterance is processed and replied", func(t *testing.T) {
		uc := &mockUseCase{processOutput: command.ProcessOutput{Response: "Opening spotify."}}
		r, rec := newFixture(t, uc)

		w := postUpdate(t, r, "open spotify")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		rec.waitFor(t, "Opening spotify.")

		uc.mu.Lock()
		defer uc.mu.Unlock()
		if len(uc.processedTexts) != 1 || uc.processedTexts[0] != "open spotify" {
			t.Errorf("unexpected processed texts: %v", uc.processedTexts)
		}
		if uc.lastScope.UserID != "telegram_42" || uc.lastScope.Channel != "telegram" {
			t.Errorf("unexpected scope: %+v", uc.lastScope)
		}
	})

	t.Run("Yes resolves a pending confirmation", func(t *testing.T) {
		uc := &mockUseCase{}
		r, _ := newFixture(t, uc)

		postUpdate(t, r, "yes")

		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			uc.mu.Lock()
			n := len(uc.confirmCalls)
			uc.mu.Unlock()
			if n == 1 {
				break
			}
			time.Sleep(5 * time.Millisecond)
		}

		uc.mu.Lock()
		defer uc.mu.Unlock()
		if len(uc.confirmCalls) != 1 || !uc.confirmCalls[0] {
			t.Fatalf("expected one affirmed confirm call, got %v", uc.confirmCalls)
		}
		if len(uc.processedTexts) != 0 {
			t.Errorf("yes must not become an utterance: %v", uc.processedTexts)
		}
	})

	t.Run("No without pending confirmation gets a hint", func(t *testing.T) {
		uc := &mockUseCase{confirmErr: command.ErrNoPendingConfirmation}
		r, rec := newFixture(t, uc)

		postUpdate(t, r, "no")
		rec.waitFor(t, "nothing waiting")
	})

	t.Run("Non-message update is ignored", func(t *testing.T) {
		uc := &mockUseCase{}
		r, _ := newFixture(t, uc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString(`{"update_id": 7}`)))
		if w.Code != http.StatusOK {
			t.Errorf("expected 200 for ignored update, got %d", w.Code)
		}

		time.Sleep(20 * time.Millisecond)
		uc.mu.Lock()
		defer uc.mu.Unlock()
		if len(uc.processedTexts) != 0 {
			t.Errorf("nothing should be processed: %v", uc.processedTexts)
		}
	})

	t.Run("Malformed body is a 400", func(t *testing.T) {
		uc := &mockUseCase{}
		r, _ := newFixture(t, uc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString(`not json`)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Start command sends the intro", func(t *testing.T) {
		uc := &mockUseCase{}
		r, rec := newFixture(t, uc)

		postUpdate(t, r, "/start")
		rec.waitFor(t, "voice assistant")
	})
}
