package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"voice-assistant-engine/internal/command"
	"voice-assistant-engine/internal/command/collaborator"
	"voice-assistant-engine/internal/confirm"
	"voice-assistant-engine/internal/model"
)

// confirmAndDispatch gates a confirmation-required step behind a blocking
// confirmation, then executes it. A denied or timed-out confirmation skips
// the step; it never fails the plan.
func (uc *implUseCase) confirmAndDispatch(ctx context.Context, sc model.Scope, planID string, step *model.ActionStep, notify func(string)) {
	prompt := confirmPrompt(step)
	if notify != nil {
		notify(prompt)
	}

	result := uc.broker.Await(ctx, confirm.Request{
		ID:     planID + "/" + uuid.NewString(),
		UserID: sc.UserID,
		Prompt: prompt,
	})
	switch result {
	case confirm.ResultAffirmed:
		step.Status = model.StepConfirmed
	case confirm.ResultDenied:
		step.Status = model.StepSkipped
		step.Message = "Okay, I won't do that."
		return
	case confirm.ResultTimedOut:
		step.Status = model.StepSkipped
		step.Message = "No confirmation received, so I skipped that."
		return
	}

	uc.dispatch(ctx, step)
}

// dispatch routes the step to its collaborator and records the outcome on
// the step itself.
func (uc *implUseCase) dispatch(ctx context.Context, step *model.ActionStep) {
	res, err := uc.execute(ctx, step)
	if err != nil {
		uc.l.Errorf(ctx, "command: dispatch %s: %v", step.Intent, err)
		step.Status = model.StepFailed
		step.Message = failureMessage(step.Intent)
		return
	}

	step.Status = model.StepDispatched
	step.Message = outcomeMessage(step, res)
	if res.Outcome == collaborator.OutcomeNavigationError ||
		res.Outcome == collaborator.OutcomeSendFailed ||
		res.Outcome == collaborator.OutcomeControlFailed {
		step.Status = model.StepFailed
	}
}

// execute runs the collaborator for the step's intent. A hard collaborator
// error is tagged ErrCollaboratorUnavailable; a missing route stays
// ErrUnsupportedIntent.
func (uc *implUseCase) execute(ctx context.Context, step *model.ActionStep) (collaborator.Result, error) {
	res, err := uc.routeStep(ctx, step)
	if err != nil && !errors.Is(err, command.ErrUnsupportedIntent) {
		err = fmt.Errorf("%w: %v", command.ErrCollaboratorUnavailable, err)
	}
	return res, err
}

func (uc *implUseCase) routeStep(ctx context.Context, step *model.ActionStep) (collaborator.Result, error) {
	switch step.Intent {
	case model.IntentOpenApplication:
		if uc.collabs.Launcher == nil {
			return collaborator.Result{}, command.ErrUnsupportedIntent
		}
		return uc.collabs.Launcher.Open(ctx, step.Slots[model.SlotAppName])

	case model.IntentBrowserNavigate:
		if uc.collabs.Browser == nil {
			return collaborator.Result{}, command.ErrUnsupportedIntent
		}
		return uc.collabs.Browser.Navigate(ctx, step.Slots[model.SlotURL])

	case model.IntentBrowserSearch:
		if uc.collabs.Browser == nil {
			return collaborator.Result{}, command.ErrUnsupportedIntent
		}
		return uc.collabs.Browser.Search(ctx, step.Slots[model.SlotQuery])

	case model.IntentMediaControl:
		if uc.collabs.Media == nil {
			return collaborator.Result{}, command.ErrUnsupportedIntent
		}
		return uc.collabs.Media.Control(ctx, step.Slots[model.SlotControl], step.Slots[model.SlotQuery])

	case model.IntentMessageSend:
		return uc.sendMessage(ctx, step)

	case model.IntentWebScrape:
		if uc.collabs.Scraper == nil {
			return collaborator.Result{}, command.ErrUnsupportedIntent
		}
		target := step.Slots[model.SlotURL]
		if target == "" {
			target = step.Slots[model.SlotQuery]
		}
		return uc.collabs.Scraper.Scrape(ctx, target)

	case model.IntentSystemQuery:
		return answerSystemQuery(step.Slots[model.SlotQuery]), nil

	default:
		return collaborator.Result{}, fmt.Errorf("%w: %s", command.ErrUnsupportedIntent, step.Intent)
	}
}

// sendMessage delivers the body repeat_count times, stopping on the first
// non-sent outcome.
func (uc *implUseCase) sendMessage(ctx context.Context, step *model.ActionStep) (collaborator.Result, error) {
	if uc.collabs.Messenger == nil {
		return collaborator.Result{}, command.ErrUnsupportedIntent
	}

	contact := step.Slots[model.SlotContact]
	body := step.Slots[model.SlotMessageBody]

	var res collaborator.Result
	var err error
	for i := 0; i < step.Slots.RepeatCount(); i++ {
		res, err = uc.collabs.Messenger.Send(ctx, contact, body)
		if err != nil || res.Outcome != collaborator.OutcomeSent {
			return res, err
		}
	}
	return res, nil
}

// answerSystemQuery resolves time and date questions inline; no external
// collaborator is involved.
func answerSystemQuery(query string) collaborator.Result {
	now := time.Now()
	switch {
	case containsWord(query, "time"):
		return collaborator.Result{Outcome: collaborator.OutcomeControlDone, Detail: fmt.Sprintf("It's %s.", now.Format("3:04 PM"))}
	case containsWord(query, "date"), containsWord(query, "day"), containsWord(query, "today"):
		return collaborator.Result{Outcome: collaborator.OutcomeControlDone, Detail: fmt.Sprintf("Today is %s.", now.Format("Monday, January 2, 2006"))}
	default:
		return collaborator.Result{Outcome: collaborator.OutcomeControlDone, Detail: fmt.Sprintf("It's %s on %s.", now.Format("3:04 PM"), now.Format("Monday, January 2"))}
	}
}

func containsWord(text, word string) bool {
	for _, tok := range strings.Fields(text) {
		if tok == word {
			return true
		}
	}
	return false
}

// outcomeMessage renders the user-facing sentence for a soft outcome.
func outcomeMessage(step *model.ActionStep, res collaborator.Result) string {
	switch res.Outcome {
	case collaborator.OutcomeOpened:
		return fmt.Sprintf("Opening %s.", step.Slots[model.SlotAppName])
	case collaborator.OutcomeAlreadyOpen:
		return fmt.Sprintf("%s is already open.", step.Slots[model.SlotAppName])
	case collaborator.OutcomeAppNotFound:
		return fmt.Sprintf("I couldn't find an application called %s.", step.Slots[model.SlotAppName])

	case collaborator.OutcomeNavigated:
		return fmt.Sprintf("Opening %s.", step.Slots[model.SlotURL])
	case collaborator.OutcomeSearched:
		return fmt.Sprintf("Searching for %s.", step.Slots[model.SlotQuery])
	case collaborator.OutcomeNavigationError:
		return fmt.Sprintf("I couldn't open %s.", step.Slots[model.SlotURL])

	case collaborator.OutcomeSent:
		if n := step.Slots.RepeatCount(); n > 1 {
			return fmt.Sprintf("Sent %q to %s %d times.", step.Slots[model.SlotMessageBody], step.Slots[model.SlotContact], n)
		}
		return fmt.Sprintf("Sent %q to %s.", step.Slots[model.SlotMessageBody], step.Slots[model.SlotContact])
	case collaborator.OutcomeContactNotFound:
		return fmt.Sprintf("I don't have a contact called %s.", step.Slots[model.SlotContact])
	case collaborator.OutcomeSendFailed:
		return fmt.Sprintf("I couldn't send the message to %s.", step.Slots[model.SlotContact])

	case collaborator.OutcomePlaying, collaborator.OutcomeControlDone:
		return res.Detail
	case collaborator.OutcomeTrackNotFound:
		return fmt.Sprintf("I couldn't find %q to play.", step.Slots[model.SlotQuery])
	case collaborator.OutcomeControlFailed:
		return "I couldn't control playback right now."

	case collaborator.OutcomeScraped:
		return fmt.Sprintf("Here's what I found: %s", res.Detail)
	case collaborator.OutcomeNoRelevantInfo:
		return "I couldn't find anything relevant."

	default:
		return "Done."
	}
}

// failureMessage is the user-facing text when a collaborator errors out.
func failureMessage(intent model.Intent) string {
	switch intent {
	case model.IntentOpenApplication:
		return "Sorry, I couldn't open that application."
	case model.IntentBrowserNavigate, model.IntentBrowserSearch:
		return "Sorry, the browser isn't available right now."
	case model.IntentMessageSend:
		return "Sorry, I couldn't send that message."
	case model.IntentMediaControl:
		return "Sorry, the music player isn't available right now."
	case model.IntentWebScrape:
		return "Sorry, I couldn't look that up."
	default:
		return "Sorry, I couldn't do that."
	}
}

// confirmPrompt builds the yes/no question shown before a sensitive step.
func confirmPrompt(step *model.ActionStep) string {
	if step.Intent == model.IntentMessageSend {
		if n := step.Slots.RepeatCount(); n > 1 {
			return fmt.Sprintf("Send %q to %s %d times? (yes/no)", step.Slots[model.SlotMessageBody], step.Slots[model.SlotContact], n)
		}
		return fmt.Sprintf("Send %q to %s? (yes/no)", step.Slots[model.SlotMessageBody], step.Slots[model.SlotContact])
	}
	return fmt.Sprintf("Go ahead with %s? (yes/no)", step.Intent)
}
