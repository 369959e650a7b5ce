package command

import (
	"voice-assistant-engine/internal/model"
)

// ProcessInput carries one raw utterance through the engine.
type ProcessInput struct {
	// Text is the raw utterance as received from the channel.
	Text string

	// Notify, when set, receives confirmation prompts for sensitive steps
	// so the delivery channel can push them to the user. Optional.
	Notify func(text string)
}

// ProcessOutput is the engine's reply for one utterance.
type ProcessOutput struct {
	PlanID   string              `json:"plan_id"`
	Response string              `json:"response"`
	Steps    []*model.ActionStep `json:"steps"`
}

// ConfirmInput resolves a pending confirmation. When ConfirmationID is
// empty the oldest pending confirmation for the scope's user is resolved.
type ConfirmInput struct {
	ConfirmationID string
	Affirmed       bool
}

// ConfirmOutput reports whether a pending confirmation was resolved.
type ConfirmOutput struct {
	Resolved bool `json:"resolved"`
}

// HistoryInput limits how many interaction records are returned.
type HistoryInput struct {
	Limit int
}

// HistoryOutput lists interaction records, newest first.
type HistoryOutput struct {
	Records []model.InteractionRecord `json:"records"`
}
