package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/letterfall/internal/game"
)

const (
	boardX    = 1 // left border column
	boardY    = 1 // top border row
	cellWidth = 2
	panelX    = boardX + game.Cols*cellWidth + 4
)

var (
	styleDefault   = tcell.StyleDefault
	styleBorder    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLetter    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePiece     = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHighlight = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleLabel     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBanner    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// cellX maps a grid column to a screen column.
func cellX(col int) int { return boardX + 1 + col*cellWidth }

// cellY maps a grid row to a screen row.
func cellY(row int) int { return boardY + 1 + row }

// draw renders snap onto the screen. It does not call Show.
func draw(s tcell.Screen, snap game.Snapshot) {
	s.Clear()
	drawBoard(s, snap)
	drawPanel(s, snap)
	drawBanner(s, snap)
}

func drawBoard(s tcell.Screen, snap game.Snapshot) {
	right := boardX + game.Cols*cellWidth + 1
	bottom := boardY + game.Rows + 1
	for x := boardX; x <= right; x++ {
		s.SetContent(x, boardY, '─', nil, styleBorder)
		s.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := boardY; y <= bottom; y++ {
		s.SetContent(boardX, y, '│', nil, styleBorder)
		s.SetContent(right, y, '│', nil, styleBorder)
	}
	s.SetContent(boardX, boardY, '┌', nil, styleBorder)
	s.SetContent(right, boardY, '┐', nil, styleBorder)
	s.SetContent(boardX, bottom, '└', nil, styleBorder)
	s.SetContent(right, bottom, '┘', nil, styleBorder)

	hl := make(map[game.Pos]bool, len(snap.Highlight))
	for _, p := range snap.Highlight {
		hl[p] = true
	}
	for r, line := range snap.Grid {
		for c := 0; c < len(line) && c < game.Cols; c++ {
			ch, st := rune(line[c]), styleLetter
			if ch == '.' {
				ch, st = '·', styleBorder
			}
			if hl[game.Pos{Row: r, Col: c}] {
				ch, st = ' ', styleHighlight
			}
			s.SetContent(cellX(c), cellY(r), ch, nil, st)
		}
	}

	if snap.Piece != nil {
		for i, p := range snap.Piece.Cells {
			if p.Row < 0 || p.Row >= game.Rows || p.Col < 0 || p.Col >= game.Cols {
				continue
			}
			s.SetContent(cellX(p.Col), cellY(p.Row), rune(snap.Piece.Letters[i]), nil, stylePiece)
		}
	}
}

func drawPanel(s tcell.Screen, snap game.Snapshot) {
	y := boardY
	line := func(label, value string) {
		x := putString(s, panelX, y, label, styleLabel)
		putString(s, x+1, y, value, styleDefault)
		y++
	}
	line("Score", fmt.Sprint(snap.Score))
	line("Streak", fmt.Sprint(snap.Streak))
	line("Words", fmt.Sprint(snap.WordCount))
	if snap.Theme != "" {
		line("Theme", snap.Theme)
	}
	y++

	putString(s, panelX, y, "Next", styleLabel)
	y++
	for _, p := range snap.Next {
		putString(s, panelX+1, y, p, styleDefault)
		y++
	}
	y++

	putString(s, panelX, y, "Recent", styleLabel)
	y++
	for _, w := range snap.Words {
		putString(s, panelX+1, y, fmt.Sprintf("%-10s +%d", w.Word, w.Points), styleDefault)
		y++
	}
	y++

	for _, help := range []string{
		"←/→ move   ↑/↓ rotate",
		"s soft drop  space drop",
		"p pause  n new  q quit",
	} {
		putString(s, panelX, y, help, styleBorder)
		y++
	}
}

func drawBanner(s tcell.Screen, snap game.Snapshot) {
	y := boardY + game.Rows/2
	switch snap.State {
	case game.StatePaused:
		centre(s, y, "PAUSED", styleBanner)
	case game.StateGameOver:
		centre(s, y-1, "GAME OVER", styleBanner)
		centre(s, y, fmt.Sprintf("score %d", snap.Score), styleDefault)
		centre(s, y+1, fmt.Sprintf("words %d", snap.WordCount), styleDefault)
		centre(s, y+2, fmt.Sprintf("streak %d", snap.Streak), styleDefault)
		centre(s, y+4, "n: new game", styleBorder)
	}
}

// centre writes text centred over the board.
func centre(s tcell.Screen, y int, text string, st tcell.Style) {
	width := game.Cols*cellWidth + 2
	x := boardX + (width-len([]rune(text)))/2
	putString(s, x, y, text, st)
}

// putString writes text at (x, y) and returns the column after it.
func putString(s tcell.Screen, x, y int, text string, st tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}
