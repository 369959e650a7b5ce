package usecase

import (
	"context"
	"errors"
	"testing"

	"voice-assistant-engine/internal/command"
	"voice-assistant-engine/internal/command/collaborator"
	"voice-assistant-engine/internal/model"
	"voice-assistant-engine/pkg/log"
)

type brokenLauncher struct{}

func (brokenLauncher) Open(ctx context.Context, app string) (collaborator.Result, error) {
	return collaborator.Result{}, errors.New("exec: fork failed")
}

func TestExecuteErrorTaxonomy(t *testing.T) {
	l := log.NewNop()

	t.Run("hard collaborator error is tagged unavailable", func(t *testing.T) {
		uc := New(l, Config{}, nil, nil, nil, nil, nil, nil, Collaborators{Launcher: brokenLauncher{}})
		step := &model.ActionStep{
			Intent: model.IntentOpenApplication,
			Slots:  model.Slots{model.SlotAppName: "spotify"},
		}

		_, err := uc.execute(context.Background(), step)
		if !errors.Is(err, command.ErrCollaboratorUnavailable) {
			t.Fatalf("expected ErrCollaboratorUnavailable, got %v", err)
		}
	})

	t.Run("missing route stays unsupported", func(t *testing.T) {
		uc := New(l, Config{}, nil, nil, nil, nil, nil, nil, Collaborators{})
		step := &model.ActionStep{Intent: model.IntentMediaControl, Slots: model.Slots{}}

		_, err := uc.execute(context.Background(), step)
		if !errors.Is(err, command.ErrUnsupportedIntent) {
			t.Fatalf("expected ErrUnsupportedIntent, got %v", err)
		}
		if errors.Is(err, command.ErrCollaboratorUnavailable) {
			t.Fatal("unsupported intent must not be tagged unavailable")
		}
	})
}
