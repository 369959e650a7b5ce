package collaborator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"voice-assistant-engine/internal/command/collaborator"
	"voice-assistant-engine/pkg/log"
	"voice-assistant-engine/pkg/spotify"
)

// mockPlayer is a hand-written spotify.IPlayer for dispatcher-level tests.
type mockPlayer struct {
	searchErr error
	playErr   error
	stateErr  error
	state     *spotify.PlayerState

	played []string
	volume int
}

func (m *mockPlayer) Search(ctx context.Context, query string) (*spotify.Track, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return &spotify.Track{URI: "spotify:track:" + query, Name: query}, nil
}

func (m *mockPlayer) Play(ctx context.Context, uri string) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.played = append(m.played, uri)
	return nil
}

func (m *mockPlayer) Pause(ctx context.Context) error    { return m.playErr }
func (m *mockPlayer) Next(ctx context.Context) error     { return m.playErr }
func (m *mockPlayer) Previous(ctx context.Context) error { return m.playErr }

func (m *mockPlayer) SetVolume(ctx context.Context, percent int) error {
	m.volume = percent
	return nil
}

func (m *mockPlayer) State(ctx context.Context) (*spotify.PlayerState, error) {
	return m.state, m.stateErr
}

func TestSpotifyMediaControl(t *testing.T) {
	ctx := context.Background()

	t.Run("Play with query searches then plays", func(t *testing.T) {
		player := &mockPlayer{}
		media := collaborator.NewSpotifyMedia(log.NewNop(), player)

		res, err := media.Control(ctx, "play", "some music")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != collaborator.OutcomePlaying {
			t.Fatalf("expected playing, got %s", res.Outcome)
		}
		if len(player.played) != 1 || player.played[0] != "spotify:track:some music" {
			t.Errorf("unexpected play calls: %v", player.played)
		}
	})

	t.Run("Bare play resumes", func(t *testing.T) {
		player := &mockPlayer{}
		media := collaborator.NewSpotifyMedia(log.NewNop(), player)

		res, err := media.Control(ctx, "play", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(res.Detail, "Resumed") {
			t.Errorf("unexpected detail: %s", res.Detail)
		}
		if len(player.played) != 1 || player.played[0] != "" {
			t.Errorf("expected resume call, got %v", player.played)
		}
	})

	t.Run("Unknown track is an outcome not an error", func(t *testing.T) {
		player := &mockPlayer{searchErr: errors.New("no track")}
		media := collaborator.NewSpotifyMedia(log.NewNop(), player)

		res, err := media.Control(ctx, "play", "gibberish")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != collaborator.OutcomeTrackNotFound {
			t.Errorf("expected track_not_found, got %s", res.Outcome)
		}
	})

	t.Run("Volume up from current state", func(t *testing.T) {
		state := &spotify.PlayerState{}
		state.Device.VolumePercent = 60
		player := &mockPlayer{state: state}
		media := collaborator.NewSpotifyMedia(log.NewNop(), player)

		if _, err := media.Control(ctx, "volume_up", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if player.volume != 70 {
			t.Errorf("expected volume 70, got %d", player.volume)
		}
	})

	t.Run("Now playing without active device", func(t *testing.T) {
		player := &mockPlayer{}
		media := collaborator.NewSpotifyMedia(log.NewNop(), player)

		res, err := media.Control(ctx, "now_playing", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(res.Detail, "Nothing is playing") {
			t.Errorf("unexpected detail: %s", res.Detail)
		}
	})

	t.Run("Backend failure surfaces as error", func(t *testing.T) {
		player := &mockPlayer{playErr: errors.New("player unreachable")}
		media := collaborator.NewSpotifyMedia(log.NewNop(), player)

		if _, err := media.Control(ctx, "pause", ""); err == nil {
			t.Fatal("expected error from pause")
		}
	})
}
