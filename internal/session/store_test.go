package session

import (
	"testing"
	"time"
)

func TestGetOrCreateStartsEmpty(t *testing.T) {
	st := NewStore()
	sess := st.GetOrCreate(1)

	if len(sess.Cart) != 0 {
		t.Fatal("new session must start with an empty cart")
	}
	if sess.Awaiting != AwaitingNone {
		t.Fatal("new session must start idle")
	}
	if sess.Draft != (Draft{}) {
		t.Fatal("new session must start with an empty draft")
	}
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	st := NewStore()
	a := st.GetOrCreate(1)
	a.Cart = append(a.Cart, CartLine{Name: "Cola", Price: 8, Quantity: 1})

	b := st.GetOrCreate(1)
	if len(b.Cart) != 1 {
		t.Fatal("expected the same session on repeat lookup")
	}
}

func TestClearRemovesSession(t *testing.T) {
	st := NewStore()
	sess := st.GetOrCreate(1)
	sess.Awaiting = AwaitingPhone

	st.Clear(1)
	st.Clear(1) // idempotent

	if st.GetOrCreate(1).Awaiting != AwaitingNone {
		t.Fatal("cleared session must be recreated empty")
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	st := NewStore()
	st.GetOrCreate(1)
	st.GetOrCreate(2)

	// Backdate one session past the TTL.
	st.mu.Lock()
	st.entries[1].lastActivity = time.Now().Add(-2 * time.Hour)
	st.mu.Unlock()

	removed := st.sweep(time.Now().Add(-time.Hour))
	if removed != 1 {
		t.Fatalf("expected one eviction, got %d", removed)
	}
	if st.Len() != 1 {
		t.Fatalf("expected one surviving session, got %d", st.Len())
	}

	st.mu.Lock()
	_, stale := st.entries[1]
	_, fresh := st.entries[2]
	st.mu.Unlock()
	if stale {
		t.Fatal("idle session must be evicted")
	}
	if !fresh {
		t.Fatal("recently active session must survive the sweep")
	}
}

func TestAccessRefreshesActivity(t *testing.T) {
	st := NewStore()
	st.GetOrCreate(1)

	st.mu.Lock()
	st.entries[1].lastActivity = time.Now().Add(-2 * time.Hour)
	st.mu.Unlock()

	// Any operation fetches the session first, which refreshes activity and
	// keeps the sweeper away.
	st.GetOrCreate(1)

	if removed := st.sweep(time.Now().Add(-time.Hour)); removed != 0 {
		t.Fatalf("refreshed session must survive, evicted %d", removed)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	st := NewStore()
	st.Start(time.Hour, time.Minute)
	st.Stop()
	st.Stop()
}
