package collaborator

import (
	"context"
	"fmt"
	"strings"

	"voice-assistant-engine/pkg/gsearch"
	"voice-assistant-engine/pkg/log"
)

// SearchScraper answers web_scrape steps with the top web search result.
type SearchScraper struct {
	l      log.Logger
	search *gsearch.Client
}

// NewSearchScraper creates a Scraper backed by Google Custom Search.
func NewSearchScraper(l log.Logger, search *gsearch.Client) *SearchScraper {
	return &SearchScraper{l: l, search: search}
}

var _ Scraper = (*SearchScraper)(nil)

// Scrape fetches a short answer for a query or URL. A URL target is turned
// into a site-scoped query so the summary comes from that page's domain.
func (s *SearchScraper) Scrape(ctx context.Context, target string) (Result, error) {
	query := strings.TrimSpace(target)
	if query == "" {
		return Result{Outcome: OutcomeNoRelevantInfo}, nil
	}
	if u, ok := stripScheme(query); ok {
		query = "site:" + u
	}

	results, err := s.search.Search(ctx, query, 3)
	if err != nil {
		return Result{Outcome: OutcomeNoRelevantInfo}, err
	}
	if len(results) == 0 {
		return Result{Outcome: OutcomeNoRelevantInfo}, nil
	}

	top := results[0]
	summary := top.Title
	if top.Snippet != "" {
		summary = fmt.Sprintf("%s: %s", top.Title, top.Snippet)
	}
	return Result{Outcome: OutcomeScraped, Detail: summary}, nil
}

// stripScheme reports whether the target looks like a URL and returns it
// without the scheme.
func stripScheme(target string) (string, bool) {
	if after, ok := strings.CutPrefix(target, "https://"); ok {
		return after, true
	}
	if after, ok := strings.CutPrefix(target, "http://"); ok {
		return after, true
	}
	if !strings.Contains(target, " ") && strings.Contains(target, ".") {
		return target, true
	}
	return "", false
}
