package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot keys. Slot sets are intent-specific; a key absent from the map is
// distinct from a key present with an empty value.
const (
	SlotAppName     = "app_name"
	SlotURL         = "url"
	SlotContact     = "contact"
	SlotMessageBody = "message_body"
	SlotRepeatCount = "repeat_count"
	SlotQuery       = "query"
	SlotControl     = "control"
)

// Slots maps slot name to extracted value.
type Slots map[string]string

// Has reports whether the slot key was extracted at all.
func (s Slots) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// RepeatCount returns the repeat_count slot as an integer, defaulting to 1.
func (s Slots) RepeatCount() int {
	v, ok := s[SlotRepeatCount]
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// StepStatus is the dispatch state of one plan step.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepConfirmed  StepStatus = "confirmed"
	StepDispatched StepStatus = "dispatched"
	StepFailed     StepStatus = "failed"
	StepSkipped    StepStatus = "skipped"
)

// ActionStep is one unit of the plan. Mutated in place as confirmation and
// dispatch proceed.
type ActionStep struct {
	Intent               Intent     `json:"intent"`
	Slots                Slots      `json:"slots"`
	ClauseIndex          int        `json:"clause_index"`
	RequiresConfirmation bool       `json:"requires_confirmation"`
	Status               StepStatus `json:"status"`
	Message              string     `json:"message"` // per-step user-facing result
}

// ActionPlan is the ordered plan built from one utterance.
type ActionPlan struct {
	ID           string        `json:"id"`
	UtteranceSeq uint64        `json:"utterance_seq"`
	Steps        []*ActionStep `json:"steps"`
}

// Summary renders a compact one-line plan description for the interaction
// log, e.g. "open_application[dispatched] message_send[skipped]".
func (p *ActionPlan) Summary() string {
	if p == nil || len(p.Steps) == 0 {
		return "no_steps"
	}
	parts := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		parts = append(parts, fmt.Sprintf("%s[%s]", s.Intent, s.Status))
	}
	return strings.Join(parts, " ")
}

// InteractionRecord is one append-only entry of the interaction memory.
type InteractionRecord struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	UtteranceText string      `json:"utterance_text"`
	PlanSummary   string      `json:"plan_summary"`
	Response      string      `json:"response"`
	LastStep      *ActionStep `json:"last_step,omitempty"` // last dispatched step, for co-reference
	Timestamp     time.Time   `json:"timestamp"`
}
