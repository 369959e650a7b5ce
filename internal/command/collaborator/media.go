package collaborator

import (
	"context"
	"fmt"
	"strings"

	"voice-assistant-engine/pkg/log"
	"voice-assistant-engine/pkg/spotify"
)

// volumeStep is how far volume_up / volume_down move the device volume.
const volumeStep = 10

// SpotifyMedia executes media_control steps against the Spotify Web API.
type SpotifyMedia struct {
	l      log.Logger
	player spotify.IPlayer
}

// NewSpotifyMedia creates a Media collaborator backed by Spotify.
func NewSpotifyMedia(l log.Logger, player spotify.IPlayer) *SpotifyMedia {
	return &SpotifyMedia{l: l, player: player}
}

var _ Media = (*SpotifyMedia)(nil)

// Control executes one playback command. An unknown track is an outcome,
// an unreachable player is an error.
func (m *SpotifyMedia) Control(ctx context.Context, control, query string) (Result, error) {
	switch control {
	case "play", "":
		return m.play(ctx, query)
	case "pause":
		if err := m.player.Pause(ctx); err != nil {
			return Result{Outcome: OutcomeControlFailed}, err
		}
		return Result{Outcome: OutcomeControlDone, Detail: "Paused."}, nil
	case "next":
		if err := m.player.Next(ctx); err != nil {
			return Result{Outcome: OutcomeControlFailed}, err
		}
		return Result{Outcome: OutcomeControlDone, Detail: "Skipped to the next track."}, nil
	case "previous":
		if err := m.player.Previous(ctx); err != nil {
			return Result{Outcome: OutcomeControlFailed}, err
		}
		return Result{Outcome: OutcomeControlDone, Detail: "Went back to the previous track."}, nil
	case "volume_up":
		return m.adjustVolume(ctx, volumeStep)
	case "volume_down":
		return m.adjustVolume(ctx, -volumeStep)
	case "now_playing":
		return m.nowPlaying(ctx)
	default:
		return Result{Outcome: OutcomeControlFailed, Detail: control}, nil
	}
}

func (m *SpotifyMedia) play(ctx context.Context, query string) (Result, error) {
	if strings.TrimSpace(query) == "" {
		// Bare "play" resumes whatever is paused.
		if err := m.player.Play(ctx, ""); err != nil {
			return Result{Outcome: OutcomeControlFailed}, err
		}
		return Result{Outcome: OutcomePlaying, Detail: "Resumed playback."}, nil
	}

	track, err := m.player.Search(ctx, query)
	if err != nil {
		m.l.Warnf(ctx, "media: search %q: %v", query, err)
		return Result{Outcome: OutcomeTrackNotFound, Detail: query}, nil
	}
	if err := m.player.Play(ctx, track.URI); err != nil {
		return Result{Outcome: OutcomeControlFailed}, err
	}
	return Result{Outcome: OutcomePlaying, Detail: fmt.Sprintf("Playing %s.", track.Describe())}, nil
}

func (m *SpotifyMedia) adjustVolume(ctx context.Context, delta int) (Result, error) {
	state, err := m.player.State(ctx)
	if err != nil {
		return Result{Outcome: OutcomeControlFailed}, err
	}
	if state == nil {
		return Result{Outcome: OutcomeControlFailed, Detail: "Nothing is playing."}, nil
	}
	target := state.Device.VolumePercent + delta
	if err := m.player.SetVolume(ctx, target); err != nil {
		return Result{Outcome: OutcomeControlFailed}, err
	}
	direction := "up"
	if delta < 0 {
		direction = "down"
	}
	return Result{Outcome: OutcomeControlDone, Detail: fmt.Sprintf("Turned the volume %s.", direction)}, nil
}

func (m *SpotifyMedia) nowPlaying(ctx context.Context) (Result, error) {
	state, err := m.player.State(ctx)
	if err != nil {
		return Result{Outcome: OutcomeControlFailed}, err
	}
	if state == nil || state.Item == nil {
		return Result{Outcome: OutcomeControlDone, Detail: "Nothing is playing right now."}, nil
	}
	return Result{Outcome: OutcomeControlDone, Detail: fmt.Sprintf("Now playing %s.", state.Item.Describe())}, nil
}
