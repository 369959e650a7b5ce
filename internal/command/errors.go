package command

import "errors"

var (
	// ErrEmptyCommand is returned when the utterance is empty after trimming.
	ErrEmptyCommand = errors.New("command: empty utterance")

	// ErrParseAmbiguous signals that classification failed the confidence
	// gate and the clause must go through the fallback resolver.
	ErrParseAmbiguous = errors.New("command: ambiguous clause")

	// ErrUnsupportedIntent is returned when no collaborator is registered
	// for a step's intent.
	ErrUnsupportedIntent = errors.New("command: unsupported intent")

	// ErrCollaboratorUnavailable wraps a collaborator failure during dispatch.
	ErrCollaboratorUnavailable = errors.New("command: collaborator unavailable")

	// ErrNoPendingConfirmation is returned when a confirmation resolution
	// matches nothing in flight.
	ErrNoPendingConfirmation = errors.New("command: no pending confirmation")
)
