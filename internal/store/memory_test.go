package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/letterfall/internal/session"
)

func startSession(t *testing.T, player string, clock func() time.Time) *session.Session {
	t.Helper()
	s, err := session.Start(context.Background(), session.Options{
		PlayerID:   player,
		Clock:      clock,
		Resolution: time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func isClosed(s *session.Session) bool {
	select {
	case <-s.Done():
		return true
	default:
		return false
	}
}

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := startSession(t, "p1", nil)

	require.NoError(t, st.Put(ctx, s))
	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, isClosed(s))

	assert.NoError(t, st.Delete(ctx, "missing"))
}

func TestPutReplacesPlayersPreviousSession(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	first := startSession(t, "p1", nil)
	other := startSession(t, "p2", nil)
	second := startSession(t, "p1", nil)

	require.NoError(t, st.Put(ctx, first))
	require.NoError(t, st.Put(ctx, other))
	require.NoError(t, st.Put(ctx, second))

	assert.True(t, isClosed(first))
	assert.False(t, isClosed(other))
	assert.Equal(t, 2, st.Len())

	_, err := st.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReapClosesIdleAndStoppedSessions(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	idle := startSession(t, "p1", func() time.Time { return base })
	fresh := startSession(t, "p2", func() time.Time { return base.Add(time.Hour) })
	stopped := startSession(t, "p3", func() time.Time { return base.Add(time.Hour) })
	for _, s := range []*session.Session{idle, fresh, stopped} {
		require.NoError(t, st.Put(ctx, s))
	}
	stopped.Close()

	n := st.Reap(ctx, base.Add(30*time.Minute))
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, st.Len())
	assert.True(t, isClosed(idle))

	_, err := st.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestRunReaperStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunReaper(ctx, NewMemoryStore(), time.Millisecond, time.Minute) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not stop")
	}
}
