package spotify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voice-assistant-engine/pkg/spotify"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/api/token"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token": "test-token", "token_type": "Bearer", "expires_in": 3600}`))

		case strings.HasSuffix(r.URL.Path, "/search"):
			if r.URL.Query().Get("q") == "nothing matches this" {
				w.Write([]byte(`{"tracks": {"items": []}}`))
				return
			}
			w.Write([]byte(`{"tracks": {"items": [{"uri": "spotify:track:abc", "name": "Fire and Rain", "artists": [{"name": "James Taylor"}]}]}}`))

		case strings.HasSuffix(r.URL.Path, "/me/player/play"):
			if r.Method != http.MethodPut {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		case strings.HasSuffix(r.URL.Path, "/me/player/pause"),
			strings.HasSuffix(r.URL.Path, "/me/player/next"),
			strings.HasSuffix(r.URL.Path, "/me/player/previous"),
			strings.HasSuffix(r.URL.Path, "/me/player/volume"):
			w.WriteHeader(http.StatusNoContent)

		case strings.HasSuffix(r.URL.Path, "/me/player"):
			w.Write([]byte(`{"is_playing": true, "item": {"uri": "spotify:track:abc", "name": "Fire and Rain", "artists": [{"name": "James Taylor"}]}, "device": {"volume_percent": 60}}`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestClient(t *testing.T, ts *httptest.Server) spotify.IPlayer {
	t.Helper()

	client, err := spotify.New(spotify.Config{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		APIURL:       ts.URL,
		TokenURL:     ts.URL + "/api/token",
	})
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func TestConfigValidate(t *testing.T) {
	t.Run("Missing ClientID", func(t *testing.T) {
		_, err := spotify.New(spotify.Config{ClientSecret: "s"})
		if err == nil {
			t.Fatal("expected error for missing client id")
		}
	})

	t.Run("Missing ClientSecret", func(t *testing.T) {
		_, err := spotify.New(spotify.Config{ClientID: "i"})
		if err == nil {
			t.Fatal("expected error for missing client secret")
		}
	})
}

func TestPlayer(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	client := newTestClient(t, ts)
	ctx := context.Background()

	t.Run("Search Found", func(t *testing.T) {
		track, err := client.Search(ctx, "fire and rain")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if track.URI != "spotify:track:abc" {
			t.Errorf("unexpected uri: %s", track.URI)
		}
		if got := track.Describe(); got != "Fire and Rain by James Taylor" {
			t.Errorf("unexpected description: %s", got)
		}
	})

	t.Run("Search Not Found", func(t *testing.T) {
		_, err := client.Search(ctx, "nothing matches this")
		if err == nil {
			t.Fatal("expected error for empty search result")
		}
	})

	t.Run("Playback Controls", func(t *testing.T) {
		if err := client.Play(ctx, "spotify:track:abc"); err != nil {
			t.Errorf("play: %v", err)
		}
		if err := client.Play(ctx, ""); err != nil {
			t.Errorf("resume: %v", err)
		}
		if err := client.Pause(ctx); err != nil {
			t.Errorf("pause: %v", err)
		}
		if err := client.Next(ctx); err != nil {
			t.Errorf("next: %v", err)
		}
		if err := client.Previous(ctx); err != nil {
			t.Errorf("previous: %v", err)
		}
		if err := client.SetVolume(ctx, 150); err != nil {
			t.Errorf("volume: %v", err)
		}
	})

	t.Run("State", func(t *testing.T) {
		state, err := client.State(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state == nil || !state.IsPlaying {
			t.Fatalf("expected playing state, got %+v", state)
		}
		if state.Device.VolumePercent != 60 {
			t.Errorf("unexpected volume: %d", state.Device.VolumePercent)
		}
	})
}
