package model

// Intent is the closed intent vocabulary. Adding a label is a
// backward-compatible change; an existing label never changes meaning.
type Intent string

const (
	IntentOpenApplication Intent = "open_application"
	IntentBrowserNavigate Intent = "browser_navigate"
	IntentBrowserSearch   Intent = "browser_search"
	IntentMediaControl    Intent = "media_control"
	IntentMessageSend     Intent = "message_send"
	IntentWebScrape       Intent = "web_scrape"
	IntentSystemQuery     Intent = "system_query"
	IntentUnknown         Intent = "unknown"
)

// ConcreteIntents lists every label except unknown, in stable order.
func ConcreteIntents() []Intent {
	return []Intent{
		IntentOpenApplication,
		IntentBrowserNavigate,
		IntentBrowserSearch,
		IntentMediaControl,
		IntentMessageSend,
		IntentWebScrape,
		IntentSystemQuery,
	}
}

// Valid reports whether i is a member of the vocabulary.
func (i Intent) Valid() bool {
	switch i {
	case IntentOpenApplication, IntentBrowserNavigate, IntentBrowserSearch,
		IntentMediaControl, IntentMessageSend, IntentWebScrape,
		IntentSystemQuery, IntentUnknown:
		return true
	}
	return false
}

// Classification is one scored intent candidate for a clause.
// Confidences are independent signal strengths in [0,1], not a probability
// distribution.
type Classification struct {
	Intent      Intent  `json:"intent"`
	Confidence  float64 `json:"confidence"`
	ClauseIndex int     `json:"clause_index"`
}
