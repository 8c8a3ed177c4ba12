package session

import (
	"errors"
	"sync"
	"time"

	"minefield/internal/board"
)

var ErrNotFound = errors.New("session not found")

// Registry keeps every live session in memory. Games do not survive a
// restart; a fresh board means a fresh session and finished sessions are
// dropped by the caller when the player moves on.
type Registry struct {
	mu       sync.Mutex
	seq      int64
	sessions map[int64]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int64]*Session),
	}
}

// Create registers a new session around b and assigns it the next id.
func (r *Registry) Create(b *board.Board) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	s := &Session{
		ID:        r.seq,
		StartedAt: time.Now().UTC(),
		board:     b,
	}
	r.sessions[s.ID] = s
	return s
}

// Get retrieves a session by id. Returns [ErrNotFound] for unknown ids.
func (r *Registry) Get(id int64) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete discards a session without checking if it existed.
func (r *Registry) Delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
