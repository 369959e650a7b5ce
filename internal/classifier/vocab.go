package classifier

import (
	"regexp"

	"voice-assistant-engine/internal/model"
)

// Scoring weights for lexical evidence.
const (
	phraseWeight   = 3.0
	keywordWeight  = 1.0
	compoundWeight = 2.0
	leadVerbWeight = 2.0
)

// intentVocab is the lexical evidence for one intent: whole-word keywords,
// exact phrases and compound patterns that strongly indicate the intent.
type intentVocab struct {
	keywords  []string
	phrases   []string
	leadVerbs []string // verbs that indicate the intent when they open the clause
	compounds []*regexp.Regexp
}

var vocab = map[model.Intent]intentVocab{
	model.IntentOpenApplication: {
		keywords:  []string{"open", "launch", "start", "app", "application"},
		phrases:   []string{"open the app", "launch the app", "start up"},
		leadVerbs: []string{"open", "launch", "start"},
		compounds: []*regexp.Regexp{
			regexp.MustCompile(`^(open|launch|start) [a-z0-9 ]+ browser$`),
			regexp.MustCompile(`^(open|launch|start) (the )?[a-z0-9]+( app)?$`),
		},
	},
	model.IntentBrowserNavigate: {
		keywords: []string{
			"visit", "navigate", "website", "browser", "tab", "refresh",
			"brave", "chrome", "firefox", "safari", "edge", "opera",
		},
		phrases:   []string{"go to", "navigate to", "browse to", "new tab", "close tab", "open website"},
		leadVerbs: []string{"go", "visit", "navigate", "browse"},
		compounds: []*regexp.Regexp{
			regexp.MustCompile(`(go to|visit|navigate to|browse to) \S+\.(com|org|net|edu|io|dev)`),
			regexp.MustCompile(` in (a |the )?(brave|chrome|firefox|safari|edge|opera)( browser)?$`),
		},
	},
	model.IntentBrowserSearch: {
		keywords:  []string{"search", "google", "find", "lookup", "youtube"},
		phrases:   []string{"search for", "look up", "search google", "google for", "youtube search"},
		leadVerbs: []string{"search", "google", "find"},
		compounds: []*regexp.Regexp{
			regexp.MustCompile(`search (for )?.+ on (google|youtube)`),
			regexp.MustCompile(`^look up .+`),
		},
	},
	model.IntentMediaControl: {
		keywords: []string{
			"play", "pause", "resume", "skip", "next", "previous", "volume",
			"music", "song", "track", "album", "playlist", "louder", "quieter",
		},
		phrases: []string{
			"play music", "pause music", "next song", "previous song",
			"volume up", "volume down", "what's playing", "now playing",
			"stop music", "like this song",
		},
		leadVerbs: []string{"play", "pause", "resume", "skip", "stop"},
		compounds: []*regexp.Regexp{
			regexp.MustCompile(`^play .+`),
			regexp.MustCompile(`(next|previous|skip) (song|track)`),
			regexp.MustCompile(`(volume|turn) (up|down)`),
			regexp.MustCompile(`what('s| is) (playing|this song)`),
		},
	},
	model.IntentMessageSend: {
		keywords:  []string{"message", "text", "send", "reply", "tell"},
		phrases:   []string{"send message", "send a message", "message to", "text to", "send to"},
		leadVerbs: []string{"message", "text", "send", "tell"},
		compounds: []*regexp.Regexp{
			regexp.MustCompile(`^(message|text) \S+ .+`),
			regexp.MustCompile(`^send .+ to \S+`),
			regexp.MustCompile(`\d+ times`),
		},
	},
	model.IntentWebScrape: {
		keywords:  []string{"scrape", "summarize", "summarise", "fetch", "extract", "article"},
		phrases:   []string{"summarize this page", "read this article", "scrape the page"},
		leadVerbs: []string{"scrape", "summarize", "summarise", "fetch"},
		compounds: []*regexp.Regexp{
			regexp.MustCompile(`https?://\S+`),
		},
	},
	model.IntentSystemQuery: {
		keywords:  []string{"time", "date", "today", "clock"},
		phrases:   []string{"what time is it", "what's the time", "what date is it", "tell me the time", "current time"},
		leadVerbs: []string{"what"},
		compounds: []*regexp.Regexp{
			regexp.MustCompile(`what (time|date) is it`),
			regexp.MustCompile(`what('s| is) the (time|date)`),
			regexp.MustCompile(`tell me the (time|date)`),
		},
	},
}
