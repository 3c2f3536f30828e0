// internal/store/memory.go
//
// In-memory registry of live game sessions.
//
// Characteristics:
//   - Sessions keyed by ID, plus an index of the current session per player.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Idle or stopped sessions are removed by Reap (see RunReaper).

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/letterfall/internal/session"
)

// ErrNotFound is returned by Get for unknown or removed sessions.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for live sessions.
type Store interface {
	// Put registers s. A previous session of the same player is closed and
	// removed.
	Put(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete closes and removes a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Reap closes sessions idle since before cutoff and drops stopped ones.
	Reap(ctx context.Context, cutoff time.Time) int

	// Len reports the number of registered sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                // guards both maps
	sessions map[string]*session.Session // keyed by Session.ID
	byPlayer map[string]string           // player ID → session ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		sessions: make(map[string]*session.Session),
		byPlayer: make(map[string]string),
	}
}

func (m *memory) Put(ctx context.Context, s *session.Session) error {
	var replaced *session.Session
	m.mu.Lock()
	if s.PlayerID != "" {
		if old, ok := m.byPlayer[s.PlayerID]; ok && old != s.ID {
			replaced = m.sessions[old]
			delete(m.sessions, old)
		}
		m.byPlayer[s.PlayerID] = s.ID
	}
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if replaced != nil {
		replaced.Close()
		log.Debug().Str("session", replaced.ID).Str("player", s.PlayerID).Msg("replaced session")
	}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		m.remove(s)
	}
	m.mu.Unlock()
	if ok {
		s.Close()
	}
	return nil
}

// remove drops s from both maps. Callers hold mu.
func (m *memory) remove(s *session.Session) {
	delete(m.sessions, s.ID)
	if m.byPlayer[s.PlayerID] == s.ID {
		delete(m.byPlayer, s.PlayerID)
	}
}

func (m *memory) Reap(ctx context.Context, cutoff time.Time) int {
	var victims []*session.Session
	m.mu.Lock()
	for _, s := range m.sessions {
		stopped := false
		select {
		case <-s.Done():
			stopped = true
		default:
		}
		if stopped || s.LastActive().Before(cutoff) {
			m.remove(s)
			victims = append(victims, s)
		}
	}
	m.mu.Unlock()

	for _, s := range victims {
		s.Close()
	}
	return len(victims)
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RunReaper calls Reap every interval until ctx is done, closing sessions
// idle for longer than idle.
func RunReaper(ctx context.Context, st Store, interval, idle time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			if n := st.Reap(ctx, now.Add(-idle)); n > 0 {
				log.Info().Int("reaped", n).Int("live", st.Len()).Msg("idle sessions closed")
			}
		}
	}
}
