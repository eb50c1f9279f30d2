// Package session keeps one view controller per web visitor.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Achutha2207/portfolio/internal/catalog"
	"github.com/Achutha2207/portfolio/internal/view"
)

// Session is a single visitor's view state.
type Session struct {
	ID string

	mu       sync.Mutex
	ctrl     *view.Controller
	lastSeen time.Time
}

// Do runs fn with exclusive access to the visitor's controller and returns
// the resulting state.
func (s *Session) Do(fn func(*view.Controller)) view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ctrl)
	return s.ctrl.State()
}

// Snapshot returns the current state without changing it.
func (s *Session) Snapshot() view.State {
	return s.Do(func(*view.Controller) {})
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Store maps session ids to sessions and forgets the ones left idle longer
// than its TTL.
type Store struct {
	catalog *catalog.Catalog
	ttl     time.Duration
	now     func() time.Time
	log     *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(c *catalog.Catalog, ttl time.Duration, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		catalog:  c,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session in the initial view state.
func (st *Store) Create() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		ctrl:     view.New(st.catalog),
		lastSeen: st.now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the live session for id and marks it as used.
func (st *Store) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	now := st.now()
	if now.Sub(s.idleSince()) > st.ttl {
		return nil, false
	}
	s.touch(now)
	return s, true
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if now.Sub(s.idleSince()) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(st.now()); n > 0 {
				st.log.Debug("expired sessions removed", zap.Int("count", n), zap.Int("live", st.Len()))
			}
		}
	}
}
