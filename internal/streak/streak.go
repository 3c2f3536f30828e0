// Package streak tracks consecutive days on which a player found words.
//
// A streak is stored as a count plus the calendar day it was last extended.
// When loaded on a later day the count survives only if that day is today or
// yesterday; otherwise it resets to zero.
package streak

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DateLayout is the stored form of a calendar day.
const DateLayout = "2006-01-02"

// ErrNotFound is returned by stores for players with no saved streak.
var ErrNotFound = errors.New("streak: not found")

// Record is the persisted streak state for one player.
type Record struct {
	Count      int    `json:"count"`
	LastPlayed string `json:"lastPlayed"` // DateLayout, empty if never played
}

// Day formats t as a calendar day in its own location.
func Day(t time.Time) string { return t.Format(DateLayout) }

// Current returns the streak a player starts with today.
func Current(r Record, now time.Time) int {
	if r.LastPlayed == "" {
		return 0
	}
	last, err := time.ParseInLocation(DateLayout, r.LastPlayed, now.Location())
	if err != nil {
		return 0
	}
	switch daysBetween(last, now) {
	case 0, 1:
		return r.Count
	default:
		return 0
	}
}

// Extend records a finished game. Only games that found at least one word
// change the record; count is the already-incremented streak.
func Extend(count int, wordsFound int, now time.Time, prev Record) Record {
	if wordsFound == 0 {
		return prev
	}
	return Record{Count: count, LastPlayed: Day(now)}
}

// daysBetween counts calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	da := time.Date(ay, am, ad, 12, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 12, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Store persists streak records by player id.
type Store interface {
	Load(ctx context.Context, playerID string) (Record, error)
	Save(ctx context.Context, playerID string, r Record) error
}

// memory is an in-memory Store.
type memory struct {
	mu   sync.RWMutex
	recs map[string]Record
}

// NewMemoryStore returns a Store that keeps records in a map.
func NewMemoryStore() Store {
	return &memory{recs: make(map[string]Record)}
}

func (m *memory) Load(ctx context.Context, playerID string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.recs[playerID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

func (m *memory) Save(ctx context.Context, playerID string, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[playerID] = r
	return nil
}

// Load reads the player's record and resolves it against now. Missing
// records start at zero; other store errors are returned with a zero streak.
func Load(ctx context.Context, s Store, playerID string, now time.Time) (int, Record, error) {
	r, err := s.Load(ctx, playerID)
	if errors.Is(err, ErrNotFound) {
		return 0, Record{}, nil
	}
	if err != nil {
		return 0, Record{}, err
	}
	return Current(r, now), r, nil
}
