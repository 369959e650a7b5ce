package spotify

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// IPlayer defines the interface for the Spotify Web API client.
// Implementations are safe for concurrent use.
type IPlayer interface {
	// Search returns the best matching track for a free-text query
	Search(ctx context.Context, query string) (*Track, error)

	// Play starts playback of the given track URI, or resumes when uri is empty
	Play(ctx context.Context, uri string) error

	// Pause pauses playback on the active device
	Pause(ctx context.Context) error

	// Next skips to the next track
	Next(ctx context.Context) error

	// Previous skips to the previous track
	Previous(ctx context.Context) error

	// SetVolume sets the active device volume, clamped to 0..100
	SetVolume(ctx context.Context, percent int) error

	// State returns the current playback state, nil when nothing is active
	State(ctx context.Context) (*PlayerState, error)
}

// New creates a new Spotify client with the given configuration.
func New(cfg Config) (IPlayer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	ctx := context.Background()
	if cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.HTTPClient)
	}

	httpClient := cc.Client(ctx)
	httpClient.Timeout = cfg.Timeout

	return &playerImpl{
		apiURL:     cfg.APIURL,
		httpClient: httpClient,
	}, nil
}
