// Package fallback resolves clauses the confidence gate rejected.
//
// Priority order: an explicit URL is stronger evidence than any classifier
// score; a confident classification missing a slot earns a clarification
// naming exactly that slot; any remaining non-stopword content becomes a
// search rather than silence; only then is a clause not understood.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voice-assistant-engine/internal/classifier"
	"voice-assistant-engine/internal/model"
	"voice-assistant-engine/internal/slots"
	"voice-assistant-engine/pkg/log"
)

// Kind is the outcome variant of a resolution.
type Kind int

const (
	KindStep Kind = iota
	KindClarify
	KindNotUnderstood
)

// Resolution is the resolver's answer for one clause.
type Resolution struct {
	Kind    Kind
	Step    *model.ActionStep // set when Kind == KindStep
	Message string            // set when Kind != KindStep
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "to": {}, "of": {}, "in": {}, "on": {},
	"for": {}, "and": {}, "then": {}, "please": {}, "me": {}, "my": {},
	"it": {}, "is": {}, "this": {}, "that": {}, "with": {}, "some": {},
}

// Resolver turns rejected clauses into search steps, clarifications or a
// terminal not-understood outcome.
type Resolver struct {
	l         log.Logger
	extractor *slots.Extractor
	gate      classifier.GateConfig
}

// New creates a Resolver sharing the extractor and gate config with the
// router.
func New(l log.Logger, extractor *slots.Extractor, gate classifier.GateConfig) *Resolver {
	return &Resolver{l: l, extractor: extractor, gate: gate}
}

// Resolve applies the fallback policy to a clause whose classification
// failed the gate, resolved to unknown, or whose extraction reported
// slotErr.
func (r *Resolver) Resolve(ctx context.Context, clause model.Clause, cands []model.Classification, slotErr error) Resolution {
	// 1. An explicit URL is unambiguous evidence of intent.
	if url, ok := slots.FindURL(clause.Text); ok {
		r.l.Debugf(ctx, "fallback: clause %d has explicit url %s", clause.Index, url)
		return Resolution{Kind: KindStep, Step: &model.ActionStep{
			Intent:      model.IntentWebScrape,
			Slots:       model.Slots{model.SlotURL: url},
			ClauseIndex: clause.Index,
			Status:      model.StepPending,
		}}
	}

	// 2. Confident intent, missing slot: ask for exactly that slot.
	var missing *slots.MissingRequiredSlotError
	if errors.As(slotErr, &missing) && len(cands) > 0 &&
		cands[0].Intent == missing.Intent && cands[0].Confidence >= r.gate.Threshold {
		return Resolution{
			Kind:    KindClarify,
			Message: fmt.Sprintf("I need a %s to %s. Which %s did you mean?", slotName(missing.Slot), actionName(missing.Intent), slotName(missing.Slot)),
		}
	}

	// 3. Silently defaulting to search beats silence whenever there is
	// anything left to search for.
	if q := r.residualQuery(clause); q != "" {
		return Resolution{Kind: KindStep, Step: &model.ActionStep{
			Intent:      model.IntentBrowserSearch,
			Slots:       model.Slots{model.SlotQuery: q},
			ClauseIndex: clause.Index,
			Status:      model.StepPending,
		}}
	}

	// 4. Nothing to work with.
	return Resolution{Kind: KindNotUnderstood, Message: NotUnderstoodMessage}
}

// NotUnderstoodMessage is the canonical response for an unrouted clause.
const NotUnderstoodMessage = "Sorry, I didn't understand that."

// residualQuery extracts the searchable residual of the clause, or "" when
// only stopwords remain.
func (r *Resolver) residualQuery(clause model.Clause) string {
	extracted, _ := r.extractor.Extract(clause, model.IntentBrowserSearch)
	q, ok := extracted[model.SlotQuery]
	if !ok {
		return ""
	}
	for _, tok := range strings.Fields(q) {
		if _, stop := stopwords[tok]; !stop {
			return q
		}
	}
	return ""
}

func slotName(slot string) string {
	switch slot {
	case model.SlotAppName:
		return "application name"
	case model.SlotMessageBody:
		return "message"
	case model.SlotRepeatCount:
		return "repeat count"
	default:
		return strings.ReplaceAll(slot, "_", " ")
	}
}

func actionName(intent model.Intent) string {
	switch intent {
	case model.IntentOpenApplication:
		return "open an application"
	case model.IntentBrowserNavigate:
		return "navigate"
	case model.IntentBrowserSearch:
		return "search"
	case model.IntentMediaControl:
		return "control playback"
	case model.IntentMessageSend:
		return "send a message"
	case model.IntentWebScrape:
		return "read a page"
	default:
		return "do that"
	}
}
