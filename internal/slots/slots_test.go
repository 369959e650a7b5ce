package slots

import (
	"errors"
	"testing"

	"voice-assistant-engine/internal/model"
)

var testApps = []string{"spotify", "whatsapp", "brave", "brave browser", "chrome", "firefox", "calculator"}

func clause(text string) model.Clause {
	return model.Clause{UtteranceSeq: 1, Index: 0, Text: text}
}

func TestExtract_OpenApplication(t *testing.T) {
	e := New(testApps)

	t.Run("known application name", func(t *testing.T) {
		got, err := e.Extract(clause("open spotify"), model.IntentOpenApplication)
		if err != nil {
			t.Fatal(err)
		}
		if got[model.SlotAppName] != "spotify" {
			t.Fatalf("app_name = %q", got[model.SlotAppName])
		}
	})

	t.Run("multi word vocabulary entry wins over prefix", func(t *testing.T) {
		got, err := e.Extract(clause("open brave browser"), model.IntentOpenApplication)
		if err != nil {
			t.Fatal(err)
		}
		if got[model.SlotAppName] != "brave browser" {
			t.Fatalf("app_name = %q", got[model.SlotAppName])
		}
	})

	t.Run("unknown app falls back to residual", func(t *testing.T) {
		got, err := e.Extract(clause("open obsidian"), model.IntentOpenApplication)
		if err != nil {
			t.Fatal(err)
		}
		if got[model.SlotAppName] != "obsidian" {
			t.Fatalf("app_name = %q", got[model.SlotAppName])
		}
	})

	t.Run("no app name at all", func(t *testing.T) {
		_, err := e.Extract(clause("open"), model.IntentOpenApplication)
		var missing *MissingRequiredSlotError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingRequiredSlotError, got %v", err)
		}
		if missing.Slot != model.SlotAppName {
			t.Fatalf("missing slot = %q", missing.Slot)
		}
	})
}

func TestExtract_MessageSend(t *testing.T) {
	e := New(testApps)

	t.Run("contact, repeat count and body", func(t *testing.T) {
		got, err := e.Extract(clause("text deepanshu 100 times hi"), model.IntentMessageSend)
		if err != nil {
			t.Fatal(err)
		}
		if got[model.SlotContact] != "deepanshu" {
			t.Errorf("contact = %q", got[model.SlotContact])
		}
		if got[model.SlotRepeatCount] != "100" {
			t.Errorf("repeat_count = %q", got[model.SlotRepeatCount])
		}
		if got[model.SlotMessageBody] != "hi" {
			t.Errorf("message_body = %q", got[model.SlotMessageBody])
		}
		if got.RepeatCount() != 100 {
			t.Errorf("RepeatCount() = %d", got.RepeatCount())
		}
	})

	t.Run("quoted body takes priority", func(t *testing.T) {
		got, err := e.Extract(clause(`text mom "running late, start without me"`), model.IntentMessageSend)
		if err != nil {
			t.Fatal(err)
		}
		if got[model.SlotMessageBody] != "running late, start without me" {
			t.Errorf("message_body = %q", got[model.SlotMessageBody])
		}
		if got[model.SlotContact] != "mom" {
			t.Errorf("contact = %q", got[model.SlotContact])
		}
	})

	t.Run("missing body is reported", func(t *testing.T) {
		_, err := e.Extract(clause("text deepanshu"), model.IntentMessageSend)
		var missing *MissingRequiredSlotError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingRequiredSlotError, got %v", err)
		}
		if missing.Slot != model.SlotMessageBody {
			t.Fatalf("missing slot = %q", missing.Slot)
		}
	})

	t.Run("default repeat count is one", func(t *testing.T) {
		got, err := e.Extract(clause("text deepanshu hello"), model.IntentMessageSend)
		if err != nil {
			t.Fatal(err)
		}
		if got.Has(model.SlotRepeatCount) {
			t.Error("repeat_count should be absent")
		}
		if got.RepeatCount() != 1 {
			t.Errorf("RepeatCount() = %d", got.RepeatCount())
		}
	})
}

func TestExtract_Search(t *testing.T) {
	e := New(testApps)

	t.Run("residual becomes query", func(t *testing.T) {
		got, err := e.Extract(clause("search for spotify"), model.IntentBrowserSearch)
		if err != nil {
			t.Fatal(err)
		}
		if got[model.SlotQuery] != "spotify" {
			t.Fatalf("query = %q", got[model.SlotQuery])
		}
	})

	t.Run("interior cue words are kept", func(t *testing.T) {
		got, err := e.Extract(clause("search for how to find a flat"), model.IntentBrowserSearch)
		if err != nil {
			t.Fatal(err)
		}
		if got[model.SlotQuery] != "how to find a flat" {
			t.Fatalf("query = %q", got[model.SlotQuery])
		}
	})

	t.Run("empty query is missing, not empty value", func(t *testing.T) {
		_, err := e.Extract(clause("search"), model.IntentBrowserSearch)
		var missing *MissingRequiredSlotError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingRequiredSlotError, got %v", err)
		}
	})
}

func TestExtract_URLs(t *testing.T) {
	e := New(testApps)

	t.Run("bare domain for navigate", func(t *testing.T) {
		got, err := e.Extract(clause("go to github.com"), model.IntentBrowserNavigate)
		if err != nil {
			t.Fatal(err)
		}
		if got[model.SlotURL] != "github.com" {
			t.Fatalf("url = %q", got[model.SlotURL])
		}
	})

	t.Run("full url for scrape", func(t *testing.T) {
		got, err := e.Extract(clause("summarize https://example.com/post"), model.IntentWebScrape)
		if err != nil {
			t.Fatal(err)
		}
		if got[model.SlotURL] != "https://example.com/post" {
			t.Fatalf("url = %q", got[model.SlotURL])
		}
	})

	t.Run("scrape accepts query instead of url", func(t *testing.T) {
		got, err := e.Extract(clause("summarize the latest go release notes"), model.IntentWebScrape)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Has(model.SlotQuery) {
			t.Fatal("expected query slot")
		}
	})

	t.Run("navigate without url is missing", func(t *testing.T) {
		_, err := e.Extract(clause("go to the thing"), model.IntentBrowserNavigate)
		var missing *MissingRequiredSlotError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingRequiredSlotError, got %v", err)
		}
	})
}

func TestExtract_MediaControl(t *testing.T) {
	e := New(testApps)

	cases := []struct {
		text string
		slot string
		want string
	}{
		{"play some jazz", model.SlotQuery, "jazz"},
		{"pause", model.SlotControl, "pause"},
		{"next song", model.SlotControl, "next"},
		{"volume up", model.SlotControl, "volume_up"},
		{"what's playing", model.SlotControl, "now_playing"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := e.Extract(clause(tc.text), model.IntentMediaControl)
			if err != nil {
				t.Fatal(err)
			}
			if got[tc.slot] != tc.want {
				t.Fatalf("%s = %q, want %q", tc.slot, got[tc.slot], tc.want)
			}
		})
	}

	t.Run("bare control has no required slots", func(t *testing.T) {
		got, err := e.Extract(clause("resume"), model.IntentMediaControl)
		if err != nil {
			t.Fatal(err)
		}
		if got[model.SlotControl] != "play" {
			t.Fatalf("control = %q", got[model.SlotControl])
		}
	})
}

func TestExtract_QuotedSpanNotReconsidered(t *testing.T) {
	e := New(testApps)
	got, err := e.Extract(clause(`play "fire and rain" on spotify`), model.IntentMediaControl)
	if err != nil {
		t.Fatal(err)
	}
	if got[model.SlotQuery] != "fire and rain" {
		t.Fatalf("query = %q", got[model.SlotQuery])
	}
}
