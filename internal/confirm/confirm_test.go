package confirm

import (
	"context"
	"testing"
	"time"

	"voice-assistant-engine/pkg/log"
)

func TestBroker_Affirm(t *testing.T) {
	b := New(log.NewNop(), time.Second)

	done := make(chan Result, 1)
	go func() {
		done <- b.Await(context.Background(), Request{ID: "c1", UserID: "u1", Prompt: "Send it?"})
	}()

	// Wait until the request is registered.
	deadline := time.After(time.Second)
	for {
		if _, ok := b.PendingPrompt("u1"); ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("request never registered")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if !b.Resolve("c1", true) {
		t.Fatal("Resolve returned false")
	}
	if res := <-done; res != ResultAffirmed {
		t.Fatalf("result = %s", res)
	}
}

func TestBroker_DenyByUser(t *testing.T) {
	b := New(log.NewNop(), time.Second)

	done := make(chan Result, 1)
	go func() {
		done <- b.Await(context.Background(), Request{ID: "c2", UserID: "u1", Prompt: "Send it?"})
	}()

	for {
		if ok := b.ResolveForUser("u1", false); ok {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if res := <-done; res != ResultDenied {
		t.Fatalf("result = %s", res)
	}
}

func TestBroker_Timeout(t *testing.T) {
	b := New(log.NewNop(), 20*time.Millisecond)

	res := b.Await(context.Background(), Request{ID: "c3", UserID: "u1"})
	if res != ResultTimedOut {
		t.Fatalf("result = %s", res)
	}
	if b.Resolve("c3", true) {
		t.Fatal("resolved a request that already timed out")
	}
}

func TestBroker_ResolveUnknownID(t *testing.T) {
	b := New(log.NewNop(), time.Second)
	if b.Resolve("nope", true) {
		t.Fatal("resolved a request that was never made")
	}
	if b.ResolveForUser("nobody", true) {
		t.Fatal("resolved for a user with nothing pending")
	}
}

func TestBroker_WrongUserCannotResolve(t *testing.T) {
	b := New(log.NewNop(), 100*time.Millisecond)

	done := make(chan Result, 1)
	go func() {
		done <- b.Await(context.Background(), Request{ID: "c4", UserID: "u1", Prompt: "?"})
	}()

	for {
		if _, ok := b.PendingPrompt("u1"); ok {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if b.ResolveForUser("u2", true) {
		t.Fatal("another user resolved the confirmation")
	}
	if res := <-done; res != ResultTimedOut {
		t.Fatalf("result = %s", res)
	}
}
