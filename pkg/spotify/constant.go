package spotify

import "time"

const (
	// DefaultAPIURL is the Spotify Web API base URL.
	DefaultAPIURL = "https://api.spotify.com/v1"

	// DefaultTokenURL is the OAuth2 client-credentials token endpoint.
	DefaultTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 15 * time.Second
)
