// Package confirm brokers blocking confirmation requests between the
// dispatcher and whichever delivery channel the user answers on.
package confirm

import (
	"context"
	"sync"
	"time"

	"voice-assistant-engine/pkg/log"
)

// Result is the three-way confirmation outcome. A denied or timed-out
// confirmation skips the step; it is never reported as a failure.
type Result int

const (
	ResultAffirmed Result = iota
	ResultDenied
	ResultTimedOut
)

func (r Result) String() string {
	switch r {
	case ResultAffirmed:
		return "affirmed"
	case ResultDenied:
		return "denied"
	default:
		return "timed_out"
	}
}

// Request identifies one pending confirmation.
type Request struct {
	ID     string // unique per step
	UserID string // owner; only the owner's channel may resolve it
	Prompt string
}

type pending struct {
	req  Request
	at   time.Time
	done chan Result
}

// Broker holds pending confirmations and blocks requesters until an
// answer arrives or the timeout elapses.
type Broker struct {
	l       log.Logger
	timeout time.Duration

	mu      sync.Mutex
	waiting map[string]*pending
}

// New creates a Broker with the configured timeout.
func New(l log.Logger, timeout time.Duration) *Broker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Broker{l: l, timeout: timeout, waiting: make(map[string]*pending)}
}

// Await registers the request and blocks until it is resolved, the broker
// timeout elapses, or ctx is done. Timeout and cancellation both yield
// ResultTimedOut.
func (b *Broker) Await(ctx context.Context, req Request) Result {
	p := &pending{req: req, at: time.Now(), done: make(chan Result, 1)}

	b.mu.Lock()
	b.waiting[req.ID] = p
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.waiting, req.ID)
		b.mu.Unlock()
	}()

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case res := <-p.done:
		return res
	case <-timer.C:
		b.l.Warnf(ctx, "confirm: request %s timed out after %s", req.ID, b.timeout)
		return ResultTimedOut
	case <-ctx.Done():
		return ResultTimedOut
	}
}

// Resolve answers the pending request with the given id. It reports false
// when no such request is waiting.
func (b *Broker) Resolve(id string, affirmed bool) bool {
	b.mu.Lock()
	p, ok := b.waiting[id]
	b.mu.Unlock()
	if !ok {
		return false
	}
	res := ResultDenied
	if affirmed {
		res = ResultAffirmed
	}
	select {
	case p.done <- res:
		return true
	default:
		return false
	}
}

// ResolveForUser answers the oldest pending request owned by userID.
// Delivery channels without step-level addressing (a chat saying "yes")
// use this form.
func (b *Broker) ResolveForUser(userID string, affirmed bool) bool {
	b.mu.Lock()
	var oldest *pending
	for _, p := range b.waiting {
		if p.req.UserID != userID {
			continue
		}
		if oldest == nil || p.at.Before(oldest.at) {
			oldest = p
		}
	}
	b.mu.Unlock()

	if oldest == nil {
		return false
	}
	return b.Resolve(oldest.req.ID, affirmed)
}

// PendingPrompt returns the prompt of the oldest pending request for
// userID, if any.
func (b *Broker) PendingPrompt(userID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var oldest *pending
	for _, p := range b.waiting {
		if p.req.UserID != userID {
			continue
		}
		if oldest == nil || p.at.Before(oldest.at) {
			oldest = p
		}
	}
	if oldest == nil {
		return "", false
	}
	return oldest.req.Prompt, true
}
