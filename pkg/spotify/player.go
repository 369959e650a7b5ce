package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type playerImpl struct {
	apiURL     string
	httpClient *http.Client
}

// Search returns the best matching track for a free-text query.
func (p *playerImpl) Search(ctx context.Context, query string) (*Track, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&type=track&limit=1", p.apiURL, url.QueryEscape(query))

	var result searchResponse
	if err := p.call(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}
	if len(result.Tracks.Items) == 0 {
		return nil, fmt.Errorf("spotify: no track found for %q", query)
	}
	return &result.Tracks.Items[0], nil
}

// Play starts playback of the given track URI, or resumes when uri is empty.
func (p *playerImpl) Play(ctx context.Context, uri string) error {
	var body any
	if uri != "" {
		body = map[string][]string{"uris": {uri}}
	}
	return p.call(ctx, http.MethodPut, p.apiURL+"/me/player/play", body, nil)
}

// Pause pauses playback on the active device.
func (p *playerImpl) Pause(ctx context.Context) error {
	return p.call(ctx, http.MethodPut, p.apiURL+"/me/player/pause", nil, nil)
}

// Next skips to the next track.
func (p *playerImpl) Next(ctx context.Context) error {
	return p.call(ctx, http.MethodPost, p.apiURL+"/me/player/next", nil, nil)
}

// Previous skips to the previous track.
func (p *playerImpl) Previous(ctx context.Context) error {
	return p.call(ctx, http.MethodPost, p.apiURL+"/me/player/previous", nil, nil)
}

// SetVolume sets the active device volume, clamped to 0..100.
func (p *playerImpl) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	endpoint := fmt.Sprintf("%s/me/player/volume?volume_percent=%d", p.apiURL, percent)
	return p.call(ctx, http.MethodPut, endpoint, nil, nil)
}

// State returns the current playback state, nil when nothing is active.
func (p *playerImpl) State(ctx context.Context) (*PlayerState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+"/me/player", nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	// 204 means no active device
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("spotify: API error %d: %s", resp.StatusCode, string(raw))
	}

	var state PlayerState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("spotify: failed to decode response: %w", err)
	}
	return &state, nil
}

// call performs an API request, optionally marshalling a body and decoding the result.
func (p *playerImpl) call(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("spotify: failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("spotify: failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spotify: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("spotify: API error %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("spotify: failed to decode response: %w", err)
		}
	}
	return nil
}
