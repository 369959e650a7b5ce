// Package collaborator holds the action executors the dispatcher routes
// plan steps to. Adapters distinguish soft outcomes (reported in Result)
// from hard failures (returned as errors): a contact that does not exist
// is an outcome, an unreachable backend is an error.
package collaborator

import "context"

// Outcome is the typed result of one collaborator action.
type Outcome string

const (
	// App launcher outcomes.
	OutcomeOpened      Outcome = "opened"
	OutcomeAlreadyOpen Outcome = "already_open"
	OutcomeAppNotFound Outcome = "not_found"

	// Browser outcomes.
	OutcomeNavigated       Outcome = "navigated"
	OutcomeSearched        Outcome = "searched"
	OutcomeNavigationError Outcome = "navigation_error"

	// Messenger outcomes.
	OutcomeSent            Outcome = "sent"
	OutcomeContactNotFound Outcome = "contact_not_found"
	OutcomeSendFailed      Outcome = "send_failed"

	// Media outcomes.
	OutcomePlaying       Outcome = "playing"
	OutcomeControlDone   Outcome = "control_done"
	OutcomeTrackNotFound Outcome = "track_not_found"
	OutcomeControlFailed Outcome = "control_failed"

	// Scraper outcomes.
	OutcomeScraped        Outcome = "scraped"
	OutcomeNoRelevantInfo Outcome = "no_relevant_info"
)

// Result is what a collaborator reports back to the dispatcher.
type Result struct {
	Outcome Outcome
	// Detail carries action-specific context for the user-facing message:
	// the track now playing, the scraped summary, the resolved URL.
	Detail string
}

// AppLauncher starts desktop applications.
type AppLauncher interface {
	Open(ctx context.Context, app string) (Result, error)
}

// Browser drives web navigation and search.
type Browser interface {
	Navigate(ctx context.Context, url string) (Result, error)
	Search(ctx context.Context, query string) (Result, error)
}

// Messenger delivers a message body to a named contact.
type Messenger interface {
	Send(ctx context.Context, contact, body string) (Result, error)
}

// Media controls music playback.
type Media interface {
	// Control executes a playback command (play, pause, next, previous,
	// volume_up, volume_down, now_playing); query names the track for play.
	Control(ctx context.Context, control, query string) (Result, error)
}

// Scraper fetches a short answer for a query or URL.
type Scraper interface {
	Scrape(ctx context.Context, target string) (Result, error)
}
