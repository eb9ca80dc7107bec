// Package session provides the in-memory cache of parsed uploads.
//
// Each upload becomes a session: a uuid key mapped to the parsed complaint
// records plus the metadata the dashboard needs to seed its filters. There
// is no persistence; sessions expire after a TTL and a background janitor
// evicts them, matching the discard-at-end-of-session lifecycle of the data.
//
// Thread-safety:
//   - All operations are protected by mutex
//   - Safe for concurrent access from multiple goroutines
package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"cdash/internal/complaint"
	cdasherrors "cdash/internal/errors"
	"cdash/internal/workbook"
)

// Session holds one parsed upload and the filter-seeding metadata derived
// from it.
type Session struct {
	ID         string
	Records    []complaint.Record
	Stats      workbook.LoadStats
	Categories []string
	MinDate    time.Time
	MaxDate    time.Time

	lastAccess time.Time
}

// Store is a thread-safe TTL cache of upload sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int

	stop chan struct{}
	once sync.Once
}

// New creates a session store. Sessions older than ttl (since last access)
// are evicted; when the store is full the least recently used session makes
// room for the new one.
func New(ttl time.Duration, max int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
		stop:     make(chan struct{}),
	}
}

// Put stores a parsed upload under a fresh uuid and returns the session.
func (s *Store) Put(records []complaint.Record, stats workbook.LoadStats, categories []string, minDate, maxDate time.Time) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpiredLocked(time.Now())
	if len(s.sessions) >= s.max {
		s.evictOldestLocked()
	}

	sess := &Session{
		ID:         uuid.NewString(),
		Records:    records,
		Stats:      stats,
		Categories: categories,
		MinDate:    minDate,
		MaxDate:    maxDate,
		lastAccess: time.Now(),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session for id, refreshing its last-access time.
//
// Returns *errors.SessionNotFoundError when the id is unknown or expired.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, cdasherrors.NewSessionNotFoundError(id)
	}
	if time.Since(sess.lastAccess) > s.ttl {
		delete(s.sessions, id)
		return nil, cdasherrors.NewSessionNotFoundError(id)
	}

	sess.lastAccess = time.Now()
	return sess, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictExpiredLocked(time.Now())
}

// StartJanitor launches a background goroutine that sweeps expired sessions
// at the given interval until Stop is called.
func (s *Store) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					log.Printf("🧹 Evicted %d expired upload sessions", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the janitor goroutine. Safe to call more than once.
func (s *Store) Stop() {
	s.once.Do(func() { close(s.stop) })
}

// evictExpiredLocked removes sessions past the TTL. Caller must hold the mutex.
func (s *Store) evictExpiredLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastAccess) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// evictOldestLocked removes the least recently used session to make room.
// Caller must hold the mutex.
func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastAccess.Before(oldest) {
			oldestID = id
			oldest = sess.lastAccess
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}
