// Package session holds ephemeral per-user conversational state: the cart and
// checkout progress. Nothing here survives a restart; orders do, carts do not.
package session

import (
	"log"
	"sync"
	"time"
)

// Awaiting is the checkout state gating how free text is interpreted.
type Awaiting int

const (
	AwaitingNone Awaiting = iota
	AwaitingAddress
	AwaitingPhone
	AwaitingFeedback
)

// CartLine is one distinct menu item accumulated in a cart. At most one line
// exists per item name; re-adding increments Quantity.
type CartLine struct {
	Name     string
	Price    int
	Quantity int
	Category string
	Emoji    string
	Notes    string
}

// Subtotal is always derived, never stored authoritatively.
func (l CartLine) Subtotal() int {
	return l.Price * l.Quantity
}

// Draft carries the fields collected across checkout transitions.
type Draft struct {
	Address string
	Phone   string
}

// Session is the per-user record. The embedded mutex serializes one in-flight
// operation per user, including external store round-trips, so two concurrent
// checkout completions cannot double-submit the same cart.
type Session struct {
	mu sync.Mutex

	Cart     []CartLine
	Awaiting Awaiting
	Draft    Draft
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

type entry struct {
	session      *Session
	lastActivity time.Time
}

// Store owns every session, keyed by chat id. Constructed once at startup and
// passed by reference to every handler.
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
	done    chan struct{}
	once    sync.Once
}

func NewStore() *Store {
	return &Store{
		entries: make(map[int64]*entry),
		done:    make(chan struct{}),
	}
}

// GetOrCreate returns the user's session, creating an empty one on first
// contact. Every call refreshes the activity timestamp, which is what keeps
// the sweeper away from sessions with an operation in flight.
func (st *Store) GetOrCreate(chatID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.entries[chatID]
	if !ok {
		e = &entry{session: &Session{}}
		st.entries[chatID] = e
	}
	e.lastActivity = time.Now()
	return e.session
}

// Clear removes the session entirely. Used after order submission and by the
// sweeper; idempotent.
func (st *Store) Clear(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.entries, chatID)
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

// Start launches the background sweep removing sessions idle longer than ttl.
func (st *Store) Start(ttl, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed := st.sweep(time.Now().Add(-ttl))
				if removed > 0 {
					log.Println("[SESSION] [INFO] swept idle sessions:", removed)
				}
			case <-st.done:
				return
			}
		}
	}()
}

// Stop terminates the sweep goroutine. Safe to call more than once.
func (st *Store) Stop() {
	st.once.Do(func() { close(st.done) })
}

func (st *Store) sweep(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for chatID, e := range st.entries {
		if e.lastActivity.Before(cutoff) {
			delete(st.entries, chatID)
			removed++
		}
	}
	return removed
}
