// Package session tracks per-upload state so the UI can re-fetch the
// rendered page and the last extraction without re-uploading.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/formscan/internal/cache"
	"github.com/jackzampolin/formscan/internal/extract"
)

// DefaultMaxSessions bounds the store; the oldest session is evicted
// when a new one would exceed it.
const DefaultMaxSessions = 32

// Session is the state of one upload-and-extract interaction.
type Session struct {
	ID string `json:"id"`
	// PageNumber is the 1-based page that was rendered.
	PageNumber int      `json:"page_number"`
	Image      []byte   `json:"-"`
	Fields     []string `json:"fields"`
	// Result is the most recent extraction, nil until one completes.
	Result    *extract.Result `json:"result,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store holds sessions in a bounded LRU. Stored sessions are only
// mutated under mu; Get hands out copies so callers can read or encode
// a session while an extraction updates it.
type Store struct {
	mu       sync.RWMutex
	sessions *cache.LRU[string, *Session]
	now      func() time.Time
}

// NewStore creates a session store holding at most maxSessions entries.
func NewStore(maxSessions int) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Store{
		sessions: cache.NewLRU[string, *Session](maxSessions),
		now:      time.Now,
	}
}

// Create registers a new session for a rendered page.
func (s *Store) Create(pageNumber int, image []byte, fields []string) *Session {
	now := s.now()
	sess := &Session{
		ID:         uuid.New().String(),
		PageNumber: pageNumber,
		Image:      image,
		Fields:     fields,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.sessions.Add(sess.ID, sess)
	return sess
}

// Get returns a copy of the session with the given ID, if it is still
// held.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}
	out := *sess
	return &out, true
}

// SetResult records an extraction result on an existing session along
// with the field list it was produced from.
func (s *Store) SetResult(id string, fields []string, result *extract.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions.Get(id)
	if !ok {
		return false
	}
	sess.Fields = fields
	sess.Result = result
	sess.UpdatedAt = s.now()
	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.sessions.Len()
}
