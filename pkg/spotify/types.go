package spotify

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds the Spotify client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	APIURL       string
	TokenURL     string
	HTTPClient   *http.Client
	Timeout      time.Duration
}

// Validate checks required fields and applies defaults.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("spotify: client id is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("spotify: client secret is required")
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// Track is a playable item returned by search and player endpoints.
type Track struct {
	URI     string   `json:"uri"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
}

// Artist is the performing artist of a track.
type Artist struct {
	Name string `json:"name"`
}

// Describe renders the track as "Name by Artist" for user-facing responses.
func (t *Track) Describe() string {
	if t == nil {
		return ""
	}
	if len(t.Artists) == 0 {
		return t.Name
	}
	return fmt.Sprintf("%s by %s", t.Name, t.Artists[0].Name)
}

// PlayerState is the active playback state of the user's device.
type PlayerState struct {
	IsPlaying bool   `json:"is_playing"`
	Item      *Track `json:"item"`
	Device    struct {
		VolumePercent int `json:"volume_percent"`
	} `json:"device"`
}

// searchResponse is the wire shape of GET /search.
type searchResponse struct {
	Tracks struct {
		Items []Track `json:"items"`
	} `json:"tracks"`
}
