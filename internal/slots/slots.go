// Package slots extracts typed parameters from a clause for a resolved
// intent. Extraction is a fixed priority-ordered rule list over a consumed
// token tracker: a span claimed by one rule is never reconsidered by a
// later rule.
package slots

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"voice-assistant-engine/internal/model"
)

// MissingRequiredSlotError reports a mandatory slot the rules could not
// fill. Recovered by the fallback resolver, never a hard failure.
type MissingRequiredSlotError struct {
	Intent model.Intent
	Slot   string
}

func (e *MissingRequiredSlotError) Error() string {
	return fmt.Sprintf("missing required slot %q for intent %s", e.Slot, e.Intent)
}

// requiredSlots is the per-intent mandatory slot policy. web_scrape accepts
// either url or query; that pair is special-cased in Extract.
var requiredSlots = map[model.Intent][]string{
	model.IntentOpenApplication: {model.SlotAppName},
	model.IntentBrowserNavigate: {model.SlotURL},
	model.IntentBrowserSearch:   {model.SlotQuery},
	model.IntentMessageSend:     {model.SlotContact, model.SlotMessageBody},
}

// quotedPriority lists, per intent, which string slots quoted substrings
// fill first.
var quotedPriority = map[model.Intent][]string{
	model.IntentMessageSend:   {model.SlotMessageBody, model.SlotContact},
	model.IntentMediaControl:  {model.SlotQuery},
	model.IntentBrowserSearch: {model.SlotQuery},
	model.IntentWebScrape:     {model.SlotQuery},
}

// leading cue words consumed before residual extraction, per intent.
var cueWords = map[model.Intent][]string{
	model.IntentOpenApplication: {"open", "launch", "start", "the", "up"},
	model.IntentBrowserNavigate: {"go", "to", "visit", "navigate", "browse", "open"},
	model.IntentBrowserSearch:   {"search", "for", "google", "look", "up", "find"},
	model.IntentMediaControl:    {"play", "some"},
	model.IntentMessageSend:     {"message", "text", "send", "tell"},
	model.IntentWebScrape:       {"scrape", "summarize", "summarise", "fetch", "read"},
}

var (
	quotedRe = regexp.MustCompile(`"([^"]*)"|'([^']*)'`)
	urlRe    = regexp.MustCompile(`^(https?://)?[a-z0-9][a-z0-9.-]*\.[a-z]{2,}(/\S*)?$`)
)

// FindURL reports the first well-formed URL token in text, if any.
func FindURL(text string) (string, bool) {
	for _, tok := range newTracker(text).tokens {
		if urlRe.MatchString(tok) {
			return tok, true
		}
	}
	return "", false
}

// Extractor holds the known application vocabulary.
type Extractor struct {
	apps []string // lowercase, longest first so "brave browser" beats "brave"
}

// New creates an Extractor with the configured application vocabulary.
func New(apps []string) *Extractor {
	sorted := make([]string, len(apps))
	for i, a := range apps {
		sorted[i] = strings.ToLower(strings.TrimSpace(a))
	}
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if len(strings.Fields(sorted[j])) > len(strings.Fields(sorted[i])) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	return &Extractor{apps: sorted}
}

// Extract runs the rule list for the clause and intent. It returns the
// extracted mapping, or a *MissingRequiredSlotError when a mandatory slot
// stays unfilled. A slot present with an empty value is a valid extraction.
func (e *Extractor) Extract(clause model.Clause, intent model.Intent) (model.Slots, error) {
	out := model.Slots{}
	tr := newTracker(clause.Text)

	// Rule a: quoted substrings fill string slots by intent priority.
	for _, quoted := range tr.claimQuoted() {
		for _, slot := range quotedPriority[intent] {
			if !out.Has(slot) {
				out[slot] = quoted
				break
			}
		}
	}

	// Rule b: a well-formed URL claims the url slot, for intents that
	// define one.
	if intent == model.IntentBrowserNavigate || intent == model.IntentWebScrape {
		for i, tok := range tr.tokens {
			if tr.used[i] || !urlRe.MatchString(tok) {
				continue
			}
			if !out.Has(model.SlotURL) {
				out[model.SlotURL] = tok
				tr.consume(i, i+1)
			}
		}
	}

	// Rule c: known application names over remaining tokens.
	if intent == model.IntentOpenApplication {
		if name, ok := tr.claimVocab(e.apps); ok {
			out[model.SlotAppName] = name
		}
	}

	// Rule d: numeric token followed by a repetition cue.
	if intent == model.IntentMessageSend {
		for i := 0; i+1 < len(tr.tokens); i++ {
			if tr.used[i] || tr.used[i+1] || tr.tokens[i+1] != "times" {
				continue
			}
			if n, err := strconv.Atoi(tr.tokens[i]); err == nil && n >= 1 {
				out[model.SlotRepeatCount] = strconv.Itoa(n)
				tr.consume(i, i+2)
				break
			}
		}
	}

	// Rule e: the remaining span, cue words stripped, is intent-specific
	// residual content.
	e.extractResidual(tr, intent, out)

	if err := checkRequired(intent, out); err != nil {
		return out, err
	}
	return out, nil
}

func (e *Extractor) extractResidual(tr *tracker, intent model.Intent, out model.Slots) {
	switch intent {
	case model.IntentBrowserSearch, model.IntentWebScrape:
		if !out.Has(model.SlotQuery) {
			if q := tr.residual(cueWords[intent]); q != "" {
				out[model.SlotQuery] = q
			}
		}

	case model.IntentMessageSend:
		rest := tr.residualTokens(cueWords[intent])
		// Without quotes the first residual token is the contact and the
		// remainder is the body: "text deepanshu hi".
		if !out.Has(model.SlotContact) && len(rest) > 0 {
			out[model.SlotContact] = rest[0]
			rest = rest[1:]
		}
		if !out.Has(model.SlotMessageBody) && len(rest) > 0 {
			out[model.SlotMessageBody] = strings.Join(rest, " ")
		}

	case model.IntentMediaControl:
		if ctrl := controlCommand(tr.text); ctrl != "" {
			out[model.SlotControl] = ctrl
			return
		}
		if !out.Has(model.SlotQuery) {
			if q := tr.residual(cueWords[intent]); q != "" {
				out[model.SlotQuery] = q
			}
		}

	case model.IntentOpenApplication:
		// Fall back to the residual when the vocabulary missed the name;
		// the user may well name an app we have never seen.
		if !out.Has(model.SlotAppName) {
			if name := tr.residual(cueWords[intent]); name != "" {
				out[model.SlotAppName] = name
			}
		}

	case model.IntentBrowserNavigate:
		if !out.Has(model.SlotURL) {
			if rest := tr.residualTokens(cueWords[intent]); len(rest) == 1 && urlRe.MatchString(rest[0]) {
				out[model.SlotURL] = rest[0]
			}
		}
	}
}

// controlCommand maps a media clause to a playback control verb.
func controlCommand(text string) string {
	switch {
	case strings.Contains(text, "pause") || strings.Contains(text, "stop"):
		return "pause"
	case strings.Contains(text, "resume"):
		return "play"
	case strings.Contains(text, "next") || strings.Contains(text, "skip"):
		return "next"
	case strings.Contains(text, "previous"):
		return "previous"
	case strings.Contains(text, "volume up") || strings.Contains(text, "louder"):
		return "volume_up"
	case strings.Contains(text, "volume down") || strings.Contains(text, "quieter"):
		return "volume_down"
	case strings.Contains(text, "playing"):
		return "now_playing"
	}
	return ""
}

func checkRequired(intent model.Intent, out model.Slots) error {
	if intent == model.IntentWebScrape {
		if !out.Has(model.SlotURL) && !out.Has(model.SlotQuery) {
			return &MissingRequiredSlotError{Intent: intent, Slot: model.SlotQuery}
		}
		return nil
	}
	for _, slot := range requiredSlots[intent] {
		if !out.Has(slot) {
			return &MissingRequiredSlotError{Intent: intent, Slot: slot}
		}
	}
	return nil
}
