package letters

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestTotalWeight(t *testing.T) {
	assert.Equal(t, 26, len(Frequencies))
	assert.Equal(t, 102, TotalWeight(Frequencies))
}

func TestPickWalksTableInOrder(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want byte
	}{
		{"zero selects first", 0, 'E'},
		{"inside first bucket", 11.5, 'E'},
		{"first bucket boundary", 12, 'E'},
		{"just past first bucket", 12.01, 'T'},
		{"exact total selects last", 102, 'Z'},
		{"past total falls back", 102.5, Fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(pick(Frequencies, tt.v)))
		})
	}
}

func TestDrawOnlyReturnsTableLetters(t *testing.T) {
	g := NewGenerator(seeded())
	counts := map[byte]int{}
	for i := 0; i < 5000; i++ {
		l := g.Draw()
		require.True(t, l >= 'A' && l <= 'Z', "letter %q", l)
		counts[l]++
	}
	// E carries twelve times the weight of Z.
	assert.Greater(t, counts['E'], counts['Z'])
}

func TestDrawSingleLetterTable(t *testing.T) {
	g := NewGeneratorWithTable(seeded(), []Weight{{'Q', 3}})
	for i := 0; i < 50; i++ {
		assert.Equal(t, byte('Q'), g.Draw())
	}
}

func TestQueuePopShiftsAndRefills(t *testing.T) {
	q := NewQueue(NewGenerator(seeded()))
	before := q.Slots()

	got := q.Pop()
	after := q.Slots()

	assert.Equal(t, before[0], got)
	for i := 0; i < QueueLen-1; i++ {
		assert.Equal(t, before[i+1], after[i], "slot %d", i)
	}
	assert.Len(t, strings.TrimSpace(after[QueueLen-1].String()), PieceSize)
}

func TestFillAllFillsEverySlot(t *testing.T) {
	q := &Queue{gen: NewGenerator(seeded())}
	q.FillAll()
	for i, p := range q.Slots() {
		for _, l := range p {
			assert.NotZero(t, l, "slot %d", i)
		}
	}
}
