package gsearch

// DefaultResultLimit is the number of results returned when the caller does not specify one.
const DefaultResultLimit = 5

// Result is a single web search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
