package command

import (
	"context"

	"voice-assistant-engine/internal/model"
)

// UseCase defines the business logic interface for the command domain.
type UseCase interface {
	// Process runs one utterance through the full pipeline: normalize,
	// classify, extract, gate, fall back, confirm and dispatch.
	Process(ctx context.Context, sc model.Scope, input ProcessInput) (ProcessOutput, error)

	// Confirm resolves a pending sensitive-step confirmation.
	Confirm(ctx context.Context, sc model.Scope, input ConfirmInput) (ConfirmOutput, error)

	// History returns the user's recent interaction records, newest first.
	History(ctx context.Context, sc model.Scope, input HistoryInput) (HistoryOutput, error)
}
