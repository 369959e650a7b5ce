package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	ngrokProbeAttempts = 10
	ngrokProbeInterval = 3 * time.Second
)

// detectNgrokURL polls the ngrok local API for a public tunnel URL so the
// Telegram webhook can be registered without manual configuration. ngrok
// may still be starting when this service boots, hence the retry loop.
func detectNgrokURL(ctx context.Context, ngrokAPIBase string) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 0; attempt < ngrokProbeAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(ngrokProbeInterval):
			}
		}

		url, err := queryNgrokTunnels(ctx, client, ngrokAPIBase)
		if err != nil {
			lastErr = err
			continue
		}
		return url, nil
	}

	return "", fmt.Errorf("ngrok tunnel not available after %d attempts: %w", ngrokProbeAttempts, lastErr)
}

func queryNgrokTunnels(ctx context.Context, client *http.Client, apiBase string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/api/tunnels", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ngrok API not reachable: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Tunnels []struct {
			PublicURL string `json:"public_url"`
			Proto     string `json:"proto"`
		} `json:"tunnels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	// Telegram requires HTTPS webhooks
	for _, t := range body.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	return "", fmt.Errorf("no https tunnel among %d tunnels", len(body.Tunnels))
}
