package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/letterfall/internal/game"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(80, 30)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func snapshotWith(grid game.Grid) game.Snapshot {
	return game.Snapshot{
		State: game.StateRunning,
		Grid:  grid.Lines(),
		Piece: &game.PieceView{
			Cells:   [4]game.Pos{{Row: 0, Col: 4}, {Row: 0, Col: 5}, {Row: 1, Col: 4}, {Row: 1, Col: 5}},
			Letters: "SHIP",
		},
		Next:      []string{"ABCD", "EFGH", "IJKL", "MNOP", "QRST"},
		Score:     36,
		Streak:    2,
		WordCount: 1,
		Words:     []game.Record{{Word: "SHIP", Points: 36}},
	}
}

func TestDrawPlacesGridAndPiece(t *testing.T) {
	s := newScreen(t)
	grid := game.GridFromRows("TANK......")
	draw(s, snapshotWith(grid))

	assert.Equal(t, 'T', runeAt(s, cellX(0), cellY(game.Rows-1)))
	assert.Equal(t, 'K', runeAt(s, cellX(3), cellY(game.Rows-1)))
	assert.Equal(t, '·', runeAt(s, cellX(4), cellY(game.Rows-1)))

	assert.Equal(t, 'S', runeAt(s, cellX(4), cellY(0)))
	assert.Equal(t, 'H', runeAt(s, cellX(5), cellY(0)))
	assert.Equal(t, 'I', runeAt(s, cellX(4), cellY(1)))
	assert.Equal(t, 'P', runeAt(s, cellX(5), cellY(1)))

	assert.Equal(t, '┌', runeAt(s, boardX, boardY))
}

func TestDrawHighlightsClearedCells(t *testing.T) {
	s := newScreen(t)
	snap := snapshotWith(game.Grid{})
	snap.Highlight = []game.Pos{{Row: 19, Col: 0}}
	draw(s, snap)

	r, _, st, _ := s.GetContent(cellX(0), cellY(19))
	assert.Equal(t, ' ', r)
	assert.Equal(t, styleHighlight, st)
}

func TestDrawGameOverBanner(t *testing.T) {
	s := newScreen(t)
	snap := snapshotWith(game.Grid{})
	snap.State = game.StateGameOver
	snap.Piece = nil
	draw(s, snap)

	var found bool
	for x := 0; x < 30; x++ {
		if runeAt(s, x, boardY+game.Rows/2-1) == 'G' {
			found = true
			break
		}
	}
	assert.True(t, found, "game over banner drawn")
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		act  action
		cmd  game.Command
	}{
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), actCommand, game.CmdMoveLeft},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), actCommand, game.CmdMoveRight},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), actCommand, game.CmdRotateForward},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), actCommand, game.CmdRotateBackward},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), actCommand, game.CmdHardDrop},
		{"soft", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), actCommand, game.CmdSoftDrop},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), actCommand, game.CmdTogglePause},
		{"new", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), actCommand, game.CmdNewGame},
		{"quit", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), actQuit, ""},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), actQuit, ""},
		{"other", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), actNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, cmd := keyAction(tt.ev)
			assert.Equal(t, tt.act, act)
			assert.Equal(t, tt.cmd, cmd)
		})
	}
}

func TestCueSoundsWithoutAudioIsSafe(t *testing.T) {
	snd := newSounds()
	prev := game.Snapshot{ID: "g", State: game.StateRunning, WordCount: 0}
	next := game.Snapshot{ID: "g", State: game.StateGameOver, WordCount: 2}
	assert.NotPanics(t, func() { cueSounds(snd, prev, next) })
}
