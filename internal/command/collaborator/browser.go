package collaborator

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"voice-assistant-engine/pkg/log"
)

// RodBrowser drives a Chromium instance over the DevTools protocol.
// The browser process is launched lazily on first use so the engine can
// start on hosts without Chromium until a browser step actually arrives.
type RodBrowser struct {
	l         log.Logger
	headless  bool
	timeout   time.Duration
	searchURL string

	mu      sync.Mutex
	browser *rod.Browser
	cleanup func()
}

// RodConfig configures the browser collaborator.
type RodConfig struct {
	Headless  bool
	Timeout   time.Duration
	SearchURL string // format string with one %s for the escaped query
}

// NewRodBrowser creates a Browser backed by go-rod.
func NewRodBrowser(l log.Logger, cfg RodConfig) *RodBrowser {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = "https://www.google.com/search?q=%s"
	}
	return &RodBrowser{
		l:         l,
		headless:  cfg.Headless,
		timeout:   cfg.Timeout,
		searchURL: cfg.SearchURL,
	}
}

var _ Browser = (*RodBrowser)(nil)

// Navigate opens the URL in a new tab.
func (b *RodBrowser) Navigate(ctx context.Context, rawURL string) (Result, error) {
	target := NormalizeURL(rawURL)

	browser, err := b.connect()
	if err != nil {
		return Result{Outcome: OutcomeNavigationError}, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		return Result{Outcome: OutcomeNavigationError}, fmt.Errorf("browser: open %s: %w", target, err)
	}
	if err := page.Timeout(b.timeout).WaitLoad(); err != nil {
		b.l.Warnf(ctx, "browser: load %s: %v", target, err)
		return Result{Outcome: OutcomeNavigationError, Detail: target}, nil
	}

	return Result{Outcome: OutcomeNavigated, Detail: target}, nil
}

// Search opens a search-engine results tab for the query.
func (b *RodBrowser) Search(ctx context.Context, query string) (Result, error) {
	target := fmt.Sprintf(b.searchURL, url.QueryEscape(query))
	res, err := b.Navigate(ctx, target)
	if err != nil {
		return res, err
	}
	if res.Outcome == OutcomeNavigated {
		res.Outcome = OutcomeSearched
		res.Detail = query
	}
	return res, nil
}

// Close shuts the browser process down if one was launched.
func (b *RodBrowser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.browser != nil {
		_ = b.browser.Close()
		b.browser = nil
	}
	if b.cleanup != nil {
		b.cleanup()
		b.cleanup = nil
	}
}

func (b *RodBrowser) connect() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	l := launcher.New().Headless(b.headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	b.browser = browser
	b.cleanup = l.Cleanup
	return browser, nil
}

// NormalizeURL prepends https:// to bare domains.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}
