package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/letterfall/internal/letters"
)

func TestSpawn(t *testing.T) {
	p := Spawn(letters.Piece{'W', 'O', 'R', 'D'})
	assert.Equal(t, SpawnX, p.X)
	assert.Equal(t, SpawnY, p.Y)
	assert.Zero(t, p.PermIndex)
	assert.Equal(t, p.Original, p.Letters)
	assert.Equal(t, [4]Pos{{0, 4}, {0, 5}, {1, 4}, {1, 5}}, p.Cells())
}

func TestPermutationKnownValues(t *testing.T) {
	src := [4]byte{'A', 'B', 'C', 'D'}
	tests := []struct {
		index int
		want  string
	}{
		{0, "ABCD"},
		{1, "ABDC"},
		{2, "ACBD"},
		{6, "BACD"},
		{23, "DCBA"},
		{24, "ABCD"},
		{-1, "DCBA"},
	}
	for _, tt := range tests {
		got := Permutation(src, tt.index)
		assert.Equal(t, tt.want, string(got[:]), "index %d", tt.index)
	}
}

func TestPermutationIsBijection(t *testing.T) {
	src := [4]byte{'W', 'O', 'R', 'D'}
	seen := map[[4]byte]int{}
	for i := 0; i < Permutations; i++ {
		p := Permutation(src, i)
		prev, dup := seen[p]
		require.False(t, dup, "index %d repeats ordering of index %d", i, prev)
		seen[p] = i
		assert.Equal(t, i, PermutationIndex(src, p), "round trip of %d", i)
	}
	assert.Len(t, seen, Permutations)
}

func TestPermutationIndexRejectsForeignLetters(t *testing.T) {
	assert.Equal(t, -1, PermutationIndex([4]byte{'A', 'B', 'C', 'D'}, [4]byte{'A', 'B', 'C', 'E'}))
}

func TestRotateCyclesThroughAllOrderings(t *testing.T) {
	p := Spawn(letters.Piece{'S', 'H', 'I', 'P'})
	seen := map[string]bool{}
	for i := 0; i < Permutations; i++ {
		seen[string(p.Letters[:])] = true
		p.Rotate(1)
	}
	assert.Len(t, seen, Permutations)
	assert.Zero(t, p.PermIndex)
	assert.Equal(t, "SHIP", string(p.Letters[:]))
}

func TestRotateBackwardWraps(t *testing.T) {
	p := Spawn(letters.Piece{'S', 'H', 'I', 'P'})
	p.Rotate(-1)
	assert.Equal(t, 23, p.PermIndex)
	assert.Equal(t, "PIHS", string(p.Letters[:]))
	p.Rotate(1)
	assert.Equal(t, "SHIP", string(p.Letters[:]))
}

func TestRotateWithRepeatedLetters(t *testing.T) {
	p := Spawn(letters.Piece{'E', 'E', 'E', 'E'})
	p.Rotate(5)
	assert.Equal(t, 5, p.PermIndex)
	assert.Equal(t, "EEEE", string(p.Letters[:]))
	assert.Equal(t, p.Original, [4]byte{'E', 'E', 'E', 'E'})
}
