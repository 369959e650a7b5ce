package usecase

import (
	"context"

	"voice-assistant-engine/internal/command"
	"voice-assistant-engine/internal/model"
)

// defaultHistoryLimit caps History when the caller does not set one.
const defaultHistoryLimit = 10

// Confirm resolves a pending sensitive-step confirmation. An empty
// ConfirmationID resolves the user's oldest pending confirmation.
func (uc *implUseCase) Confirm(ctx context.Context, sc model.Scope, input command.ConfirmInput) (command.ConfirmOutput, error) {
	var resolved bool
	if input.ConfirmationID != "" {
		resolved = uc.broker.Resolve(input.ConfirmationID, input.Affirmed)
	} else {
		resolved = uc.broker.ResolveForUser(sc.UserID, input.Affirmed)
	}

	if !resolved {
		return command.ConfirmOutput{}, command.ErrNoPendingConfirmation
	}

	uc.l.Infof(ctx, "command: confirmation resolved for %s (affirmed=%v)", sc.UserID, input.Affirmed)
	return command.ConfirmOutput{Resolved: true}, nil
}

// History returns the user's recent interaction records, newest first.
func (uc *implUseCase) History(ctx context.Context, sc model.Scope, input command.HistoryInput) (command.HistoryOutput, error) {
	limit := input.Limit
	if limit < 1 {
		limit = defaultHistoryLimit
	}

	records := make([]model.InteractionRecord, 0, limit)
	for _, rec := range uc.mem.Recent(uc.mem.Len()) {
		if sc.UserID != "" && rec.UserID != sc.UserID {
			continue
		}
		records = append(records, rec)
		if len(records) == limit {
			break
		}
	}

	return command.HistoryOutput{Records: records}, nil
}
