package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/letterfall/internal/words"
)

func dict(list ...string) *words.Dictionary { return words.New(list) }

func foundWords(found []FoundWord) []string {
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.Word
	}
	return out
}

func TestDetectHorizontal(t *testing.T) {
	g := GridFromRows("..SHIP....")
	found := Detect(&g, dict("ship"))

	require.Len(t, found, 1)
	assert.Equal(t, "SHIP", found[0].Word)
	assert.Equal(t, words.Score("SHIP"), found[0].Points)
	assert.Equal(t, []Pos{{19, 2}, {19, 3}, {19, 4}, {19, 5}}, found[0].Cells)
}

func TestDetectBackwardsRun(t *testing.T) {
	g := GridFromRows("PIHS")
	found := Detect(&g, dict("ship"))
	require.Len(t, found, 1)
	assert.Equal(t, "SHIP", found[0].Word)
	assert.Equal(t, Pos{19, 3}, found[0].Cells[0])
}

func TestDetectVerticalAndDiagonal(t *testing.T) {
	g := GridFromRows(
		"W..B",
		"E.O.",
		"NA..",
		"T...",
	)
	// Column 0 reads WENT downwards; the anti-diagonal from (16,3) reads BOAT
	// and shares the T.
	found := Detect(&g, dict("went", "boat"))
	assert.ElementsMatch(t, []string{"WENT", "BOAT"}, foundWords(found))
}

func TestDetectIgnoresShortAndUnknownRuns(t *testing.T) {
	g := GridFromRows(
		"CAT.......",
		"..........",
		"XQZV......",
	)
	assert.Empty(t, Detect(&g, dict("cat", "at")))
}

func TestDetectRunsAreMaximal(t *testing.T) {
	// SHIPS is the run from the S at column 0; SHIP alone never ends a run
	// that starts there, so it is not found.
	g := GridFromRows("SHIPS")
	assert.Empty(t, Detect(&g, dict("ship")))

	found := Detect(&g, dict("ship", "ships"))
	assert.Equal(t, []string{"SHIPS"}, foundWords(found))
}

func TestDetectSameCellsReportedOnce(t *testing.T) {
	g := GridFromRows("TOOT")
	found := Detect(&g, dict("toot"))
	assert.Len(t, found, 1)

	// Both readings of one run are words; the cells still count once.
	g = GridFromRows("SHIP")
	found = Detect(&g, dict("ship", "pihs"))
	require.Len(t, found, 1)
	assert.Equal(t, "SHIP", found[0].Word)
}

func TestDetectOverlappingWordsBothReported(t *testing.T) {
	g := GridFromRows(
		"T.........",
		"E.........",
		"S.........",
		"TANK......",
	)
	found := Detect(&g, dict("test", "tank"))
	assert.ElementsMatch(t, []string{"TEST", "TANK"}, foundWords(found))

	points, cleared := ClearFound(&g, found)
	assert.Equal(t, words.Score("TEST")+words.Score("TANK"), points)
	assert.Len(t, cleared, 7, "the shared T is removed once")
	assert.Zero(t, g.Count())
}

func TestDetectNeverReportsInvalid(t *testing.T) {
	g := randomGrid(newRand(), 0.9)
	d := dict("test", "ship", "word", "boat", "tank", "note", "tone", "east", "seat")
	for _, f := range Detect(&g, d) {
		assert.GreaterOrEqual(t, len(f.Word), words.MinLength)
		assert.True(t, d.Contains(f.Word))
		assert.Len(t, f.Cells, len(f.Word))
	}
}

func TestDetectNilDictionary(t *testing.T) {
	g := GridFromRows("SHIP")
	assert.Nil(t, Detect(&g, nil))
	assert.Empty(t, Detect(&g, words.Empty()))
}
