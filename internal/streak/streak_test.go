package streak

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)

func TestCurrent(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want int
	}{
		{"never played", Record{}, 0},
		{"played today", Record{Count: 3, LastPlayed: "2026-03-01"}, 3},
		{"played yesterday across a month end", Record{Count: 7, LastPlayed: "2026-02-28"}, 7},
		{"two days ago", Record{Count: 7, LastPlayed: "2026-02-27"}, 0},
		{"long ago", Record{Count: 40, LastPlayed: "2025-01-01"}, 0},
		{"future date", Record{Count: 2, LastPlayed: "2026-03-05"}, 0},
		{"garbage date", Record{Count: 2, LastPlayed: "Sun Mar 01 2026"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Current(tt.rec, today))
		})
	}
}

func TestCurrentIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, time.March, 1, 23, 59, 0, 0, time.UTC)
	early := time.Date(2026, time.March, 1, 0, 1, 0, 0, time.UTC)
	r := Record{Count: 5, LastPlayed: "2026-02-28"}
	assert.Equal(t, 5, Current(r, late))
	assert.Equal(t, 5, Current(r, early))
}

func TestExtend(t *testing.T) {
	prev := Record{Count: 2, LastPlayed: "2026-02-28"}
	assert.Equal(t, prev, Extend(2, 0, today, prev))
	assert.Equal(t, Record{Count: 3, LastPlayed: "2026-03-01"}, Extend(3, 4, today, prev))
}

func TestLoadFromMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	n, rec, err := Load(ctx, s, "p1", today)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, Record{}, rec)

	require.NoError(t, s.Save(ctx, "p1", Record{Count: 4, LastPlayed: "2026-02-28"}))
	n, _, err = Load(ctx, s, "p1", today)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, _, err = Load(ctx, s, "p1", today.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Zero(t, n)
}

type failingStore struct{ Store }

func (failingStore) Load(context.Context, string) (Record, error) {
	return Record{}, errors.New("disk on fire")
}

func TestLoadPropagatesStoreErrors(t *testing.T) {
	n, _, err := Load(context.Background(), failingStore{}, "p1", today)
	assert.Error(t, err)
	assert.Zero(t, n)
}
