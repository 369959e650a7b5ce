package gsearch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"

	"voice-assistant-engine/pkg/gsearch"
)

func TestNewClient(t *testing.T) {
	t.Run("Missing API key", func(t *testing.T) {
		_, err := gsearch.NewClient(context.Background(), "", "engine")
		if err == nil {
			t.Fatal("expected error for missing api key")
		}
	})

	t.Run("Missing engine ID", func(t *testing.T) {
		_, err := gsearch.NewClient(context.Background(), "key", "")
		if err == nil {
			t.Fatal("expected error for missing engine id")
		}
	})
}

func TestSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "empty" {
			w.Write([]byte(`{"items": []}`))
			return
		}
		w.Write([]byte(`{
			"items": [
				{"title": "Example Domain", "link": "https://example.com", "snippet": "Example snippet"},
				{"title": "Second Result", "link": "https://example.org", "snippet": "Another snippet"}
			]
		}`))
	}))
	defer ts.Close()

	client, err := gsearch.NewClient(context.Background(), "test-key", "test-engine",
		option.WithEndpoint(ts.URL),
		option.WithHTTPClient(ts.Client()),
	)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}

	t.Run("Results mapped", func(t *testing.T) {
		results, err := client.Search(context.Background(), "example", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].Title != "Example Domain" || results[0].Link != "https://example.com" {
			t.Errorf("unexpected first result: %+v", results[0])
		}
	})

	t.Run("No results", func(t *testing.T) {
		results, err := client.Search(context.Background(), "empty", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})
}
