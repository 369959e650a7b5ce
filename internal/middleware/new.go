package middleware

import (
	"voice-assistant-engine/pkg/log"
)

// Config holds middleware tunables.
type Config struct {
	// RateLimitPerMin caps requests per client per minute on /api/v1.
	RateLimitPerMin int
}

// Middleware bundles the HTTP middlewares with their dependencies.
type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// New creates the middleware bundle.
func New(l log.Logger, cfg Config) Middleware {
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 60
	}
	return Middleware{
		l:       l,
		limiter: newRateLimiter(cfg.RateLimitPerMin),
	}
}
