package gsearch

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Client wraps the Google Custom Search API service.
type Client struct {
	service  *customsearch.Service
	engineID string
}

// NewClient creates a Custom Search client from an API key and engine ID.
func NewClient(ctx context.Context, apiKey, engineID string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gsearch: api key is required")
	}
	if engineID == "" {
		return nil, fmt.Errorf("gsearch: engine id is required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gsearch: failed to create search service: %w", err)
	}

	return &Client{service: svc, engineID: engineID}, nil
}

// Search runs a web search and returns up to limit results.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit < 1 {
		limit = DefaultResultLimit
	}
	if limit > 10 {
		limit = 10
	}

	resp, err := c.service.Cse.List().
		Q(query).
		Cx(c.engineID).
		Num(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("gsearch: search failed: %w", err)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}
