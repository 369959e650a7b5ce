package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"voice-assistant-engine/internal/classifier"
	"voice-assistant-engine/internal/command"
	"voice-assistant-engine/internal/fallback"
	"voice-assistant-engine/internal/model"
)

// clauseOutcome pairs one clause with either a dispatchable step or a
// terminal message (clarification, not understood).
type clauseOutcome struct {
	step    *model.ActionStep
	message string
}

// repeatRequests are the co-reference phrasings that re-dispatch the last
// dispatched step instead of going through classification.
var repeatRequests = map[string]struct{}{
	"do it again":   {},
	"do that again": {},
	"again":         {},
	"repeat that":   {},
	"one more time": {},
}

// Process runs one utterance through the full pipeline. Steps fail
// independently; the response concatenates per-clause results in order.
func (uc *implUseCase) Process(ctx context.Context, sc model.Scope, input command.ProcessInput) (command.ProcessOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return command.ProcessOutput{}, command.ErrEmptyCommand
	}

	seq := uc.seq.Add(1)
	clauses := uc.norm.Normalize(seq, text)

	plan := &model.ActionPlan{ID: uuid.NewString(), UtteranceSeq: seq}
	outcomes := make([]clauseOutcome, 0, len(clauses))
	for _, clause := range clauses {
		oc := uc.routeClause(ctx, sc, clause)
		if oc.step != nil {
			plan.Steps = append(plan.Steps, oc.step)
		}
		outcomes = append(outcomes, oc)
	}

	// Unconfirmed steps dispatch in clause order so side effects happen
	// in the order the user spoke them. A confirmation-gated step
	// suspends only itself: it awaits its answer on its own goroutine
	// while later independent steps keep dispatching.
	var gated sync.WaitGroup
	for _, oc := range outcomes {
		if oc.step == nil {
			continue
		}
		step := oc.step
		if _, ok := uc.sensitive[step.Intent]; ok {
			step.RequiresConfirmation = true
		}
		if step.RequiresConfirmation {
			gated.Add(1)
			go func() {
				defer gated.Done()
				uc.confirmAndDispatch(ctx, sc, plan.ID, step, input.Notify)
			}()
			continue
		}
		uc.dispatch(ctx, step)
	}
	gated.Wait()

	response := buildResponse(outcomes)
	uc.l.Infof(ctx, "command: processed utterance %d for %s: %s", seq, sc.UserID, plan.Summary())

	uc.mem.Append(ctx, model.InteractionRecord{
		ID:            uuid.NewString(),
		UserID:        sc.UserID,
		UtteranceText: text,
		PlanSummary:   plan.Summary(),
		Response:      response,
		LastStep:      lastDispatched(plan),
		Timestamp:     time.Now(),
	})

	return command.ProcessOutput{
		PlanID:   plan.ID,
		Response: response,
		Steps:    plan.Steps,
	}, nil
}

// routeClause turns one clause into a pending step or a terminal message.
func (uc *implUseCase) routeClause(ctx context.Context, sc model.Scope, clause model.Clause) clauseOutcome {
	if _, ok := repeatRequests[clause.Text]; ok {
		return uc.repeatLast(sc, clause)
	}

	cands := uc.cls.Classify(ctx, clause)

	if err := uc.gate(cands); err == nil {
		top := cands[0]
		extracted, slotErr := uc.ext.Extract(clause, top.Intent)
		if slotErr == nil {
			return clauseOutcome{step: &model.ActionStep{
				Intent:      top.Intent,
				Slots:       extracted,
				ClauseIndex: clause.Index,
				Status:      model.StepPending,
			}}
		}
		return uc.fallbackOutcome(ctx, clause, cands, slotErr)
	}

	return uc.fallbackOutcome(ctx, clause, cands, nil)
}

// gate applies the two-part confidence gate, mapping failure to the
// ambiguity sentinel.
func (uc *implUseCase) gate(cands []model.Classification) error {
	if len(cands) == 0 || cands[0].Intent == model.IntentUnknown {
		return command.ErrParseAmbiguous
	}
	if !classifier.Gate(cands, uc.cfg.Gate) {
		return command.ErrParseAmbiguous
	}
	return nil
}

func (uc *implUseCase) fallbackOutcome(ctx context.Context, clause model.Clause, cands []model.Classification, slotErr error) clauseOutcome {
	res := uc.fb.Resolve(ctx, clause, cands, slotErr)
	switch res.Kind {
	case fallback.KindStep:
		res.Step.Status = model.StepPending
		return clauseOutcome{step: res.Step}
	default:
		return clauseOutcome{message: res.Message}
	}
}

// repeatLast re-creates the most recently dispatched step for this user.
func (uc *implUseCase) repeatLast(sc model.Scope, clause model.Clause) clauseOutcome {
	rec, ok := uc.mem.LastDispatched(sc.UserID)
	if !ok || rec.LastStep == nil {
		return clauseOutcome{message: "There's nothing to repeat yet."}
	}

	slots := make(model.Slots, len(rec.LastStep.Slots))
	for k, v := range rec.LastStep.Slots {
		slots[k] = v
	}
	return clauseOutcome{step: &model.ActionStep{
		Intent:               rec.LastStep.Intent,
		Slots:                slots,
		ClauseIndex:          clause.Index,
		RequiresConfirmation: rec.LastStep.RequiresConfirmation,
		Status:               model.StepPending,
	}}
}

// buildResponse concatenates per-clause results in clause order. A wholly
// unrouted utterance collapses to the canonical not-understood reply.
func buildResponse(outcomes []clauseOutcome) string {
	if len(outcomes) == 0 {
		return fallback.NotUnderstoodMessage
	}

	parts := make([]string, 0, len(outcomes))
	allNotUnderstood := true
	for _, oc := range outcomes {
		msg := oc.message
		if oc.step != nil {
			msg = oc.step.Message
		}
		if msg != fallback.NotUnderstoodMessage {
			allNotUnderstood = false
		}
		if msg != "" {
			parts = append(parts, msg)
		}
	}
	if allNotUnderstood {
		return fallback.NotUnderstoodMessage
	}
	return strings.Join(parts, " ")
}

// lastDispatched returns the plan's last successfully dispatched step.
func lastDispatched(plan *model.ActionPlan) *model.ActionStep {
	for i := len(plan.Steps) - 1; i >= 0; i-- {
		if plan.Steps[i].Status == model.StepDispatched {
			return plan.Steps[i]
		}
	}
	return nil
}
