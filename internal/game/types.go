// internal/game/types.go
//
// Core type definitions for the Letterfall game engine.
// Defines:
//   - State: coarse lifecycle of a game (idle/running/paused/gameover).
//   - Command: the discrete player inputs accepted by the engine.
//   - Pos, FoundWord, Record: grid coordinates and word results.
//   - Snapshot: read-only view handed to renderers.

package game

import (
	"errors"
	"fmt"
)

// State is the lifecycle state of a game.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateGameOver State = "gameover"
)

// Command is a discrete player input.
type Command string

const (
	CmdMoveLeft       Command = "moveLeft"
	CmdMoveRight      Command = "moveRight"
	CmdRotateForward  Command = "rotateForward"
	CmdRotateBackward Command = "rotateBackward"
	CmdSoftDrop       Command = "softDrop"
	CmdHardDrop       Command = "hardDrop"
	CmdTogglePause    Command = "togglePause"
	CmdNewGame        Command = "newGame"
)

// Commands lists every accepted command.
var Commands = []Command{
	CmdMoveLeft, CmdMoveRight, CmdRotateForward, CmdRotateBackward,
	CmdSoftDrop, CmdHardDrop, CmdTogglePause, CmdNewGame,
}

// ErrUnknownCommand is returned by ParseCommand for unrecognized names.
var ErrUnknownCommand = errors.New("unknown command")

// ParseCommand maps a wire name to a Command.
func ParseCommand(s string) (Command, error) {
	for _, c := range Commands {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Pos is a grid coordinate. Row 0 is the top.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// FoundWord is one dictionary word located by the detector.
type FoundWord struct {
	Word   string // uppercase, in traversal order
	Points int
	Cells  []Pos // traversal order
}

// Record is an entry in the found-word history.
type Record struct {
	Word   string `json:"word"`
	Points int    `json:"points"`
}

// PieceView is the falling piece as a renderer sees it.
type PieceView struct {
	Cells     [4]Pos `json:"cells"`
	Letters   string `json:"letters"`
	PermIndex int    `json:"permIndex"`
}

// Snapshot is an immutable copy of everything a renderer needs.
type Snapshot struct {
	ID        string     `json:"id"`
	State     State      `json:"state"`
	Grid      []string   `json:"grid"` // Rows strings of Cols chars, '.' = empty
	Piece     *PieceView `json:"piece,omitempty"`
	Next      []string   `json:"next"`
	Score     int        `json:"score"`
	Streak    int        `json:"streak"`
	Words     []Record   `json:"words"` // newest first, at most HistoryShown
	WordCount int        `json:"wordCount"`
	Highlight []Pos      `json:"highlight,omitempty"`
	Theme     string     `json:"theme,omitempty"`
}

// Result summarizes a finished game.
type Result struct {
	GameID string
	Score  int
	Words  int
	Streak int
}
