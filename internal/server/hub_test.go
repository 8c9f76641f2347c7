package server

import (
	"testing"
	"time"
)

func TestHubCloseStopsDispatchLoop(t *testing.T) {
	h := NewHub()
	stopped := make(chan struct{})
	go func() {
		h.Run()
		close(stopped)
	}()

	h.Close()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch loop did not stop after Close")
	}

	// Closing again is a no-op, and broadcasting after shutdown must not
	// block the caller.
	h.Close()
	h.Broadcast("late line")
}
