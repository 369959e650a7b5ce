package fallback

import (
	"context"
	"strings"
	"testing"

	"voice-assistant-engine/internal/classifier"
	"voice-assistant-engine/internal/model"
	"voice-assistant-engine/internal/slots"
	"voice-assistant-engine/pkg/log"
)

func newTestResolver() *Resolver {
	extractor := slots.New([]string{"spotify", "whatsapp", "brave browser"})
	return New(log.NewNop(), extractor, classifier.GateConfig{Threshold: 0.6, Margin: 0.1})
}

func clause(text string) model.Clause {
	return model.Clause{UtteranceSeq: 1, Index: 0, Text: text}
}

func TestResolver_ExplicitURLWinsRegardlessOfClassifier(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(context.Background(), clause("hmm maybe https://example.com/a"), nil, nil)
	if res.Kind != KindStep {
		t.Fatalf("kind = %v", res.Kind)
	}
	if res.Step.Intent != model.IntentWebScrape {
		t.Fatalf("intent = %s", res.Step.Intent)
	}
	if res.Step.Slots[model.SlotURL] != "https://example.com/a" {
		t.Fatalf("url = %q, want exact url", res.Step.Slots[model.SlotURL])
	}
}

func TestResolver_ClarificationNamesMissingSlot(t *testing.T) {
	r := newTestResolver()

	cands := []model.Classification{
		{Intent: model.IntentMessageSend, Confidence: 0.8},
		{Intent: model.IntentUnknown, Confidence: 0.2},
	}
	slotErr := &slots.MissingRequiredSlotError{Intent: model.IntentMessageSend, Slot: model.SlotMessageBody}

	res := r.Resolve(context.Background(), clause("text deepanshu"), cands, slotErr)
	if res.Kind != KindClarify {
		t.Fatalf("kind = %v, message %q", res.Kind, res.Message)
	}
	if !strings.Contains(res.Message, "message") {
		t.Fatalf("clarification does not name the slot: %q", res.Message)
	}
}

func TestResolver_ResidualSearch(t *testing.T) {
	r := newTestResolver()

	// The pinned ambiguous scenario: mixed verbs fail the gate, the
	// resolver must deterministically fall back to a residual search.
	res := r.Resolve(context.Background(), clause("search for spotify in brave browser"), nil, nil)
	if res.Kind != KindStep {
		t.Fatalf("kind = %v", res.Kind)
	}
	if res.Step.Intent != model.IntentBrowserSearch {
		t.Fatalf("intent = %s", res.Step.Intent)
	}
	if res.Step.Slots[model.SlotQuery] != "spotify in brave browser" {
		t.Fatalf("query = %q", res.Step.Slots[model.SlotQuery])
	}
}

func TestResolver_NotUnderstood(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(context.Background(), clause("the of in"), nil, nil)
	if res.Kind != KindNotUnderstood {
		t.Fatalf("kind = %v, message %q", res.Kind, res.Message)
	}
	if res.Message != NotUnderstoodMessage {
		t.Fatalf("message = %q", res.Message)
	}
}

