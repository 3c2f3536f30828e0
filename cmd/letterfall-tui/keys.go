package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/letterfall/internal/game"
)

// action is what a key press asks the client to do.
type action int

const (
	actNone action = iota
	actCommand
	actQuit
)

// keyAction maps a key press to a game command or quit.
func keyAction(ev *tcell.EventKey) (action, game.Command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit, ""
	case tcell.KeyLeft:
		return actCommand, game.CmdMoveLeft
	case tcell.KeyRight:
		return actCommand, game.CmdMoveRight
	case tcell.KeyUp:
		return actCommand, game.CmdRotateForward
	case tcell.KeyDown:
		return actCommand, game.CmdRotateBackward
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return actCommand, game.CmdHardDrop
		case 's', 'S':
			return actCommand, game.CmdSoftDrop
		case 'p', 'P':
			return actCommand, game.CmdTogglePause
		case 'n', 'N':
			return actCommand, game.CmdNewGame
		case 'q', 'Q':
			return actQuit, ""
		}
	}
	return actNone, ""
}
