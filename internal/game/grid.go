package game

import "strings"

const (
	Rows = 20
	Cols = 10
)

// empty marks an unoccupied cell.
const empty byte = 0

// Grid is the playfield. Each cell holds an uppercase letter or empty.
type Grid [Rows][Cols]byte

// GridFromRows builds a grid whose bottom rows are the given strings.
// '.' and ' ' are empty cells; short rows are padded on the right.
func GridFromRows(rows ...string) Grid {
	var g Grid
	if len(rows) > Rows {
		rows = rows[len(rows)-Rows:]
	}
	top := Rows - len(rows)
	for i, line := range rows {
		for c := 0; c < Cols && c < len(line); c++ {
			if ch := line[c]; ch != '.' && ch != ' ' {
				g[top+i][c] = ch
			}
		}
	}
	return g
}

// InBounds reports whether p lies on the grid.
func InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < Rows && p.Col >= 0 && p.Col < Cols
}

// At returns the letter at p, or 0 when empty or out of bounds.
func (g *Grid) At(p Pos) byte {
	if !InBounds(p) {
		return empty
	}
	return g[p.Row][p.Col]
}

// Occupied reports whether p is on the grid and holds a letter.
func (g *Grid) Occupied(p Pos) bool { return g.At(p) != empty }

// Collides reports whether any cell of p is off the grid or occupied.
func (g *Grid) Collides(p *Piece) bool {
	for _, c := range p.Cells() {
		if !InBounds(c) || g[c.Row][c.Col] != empty {
			return true
		}
	}
	return false
}

// CanPlace is the negation of Collides.
func (g *Grid) CanPlace(p *Piece) bool { return !g.Collides(p) }

// Lock writes the piece letters into the grid. Cells outside the grid are
// skipped; the number of letters lost that way is returned.
func (g *Grid) Lock(p *Piece) (dropped int) {
	for i, c := range p.Cells() {
		if !InBounds(c) {
			dropped++
			continue
		}
		g[c.Row][c.Col] = p.Letters[i]
	}
	return dropped
}

// Compact lets every letter fall to the bottom of its column, keeping the
// top-to-bottom order within the column.
func (g *Grid) Compact() {
	for col := 0; col < Cols; col++ {
		write := Rows - 1
		for row := Rows - 1; row >= 0; row-- {
			if g[row][col] == empty {
				continue
			}
			if write != row {
				g[write][col] = g[row][col]
				g[row][col] = empty
			}
			write--
		}
	}
}

// IsCompact reports whether every column is contiguous from the bottom.
func (g *Grid) IsCompact() bool {
	for col := 0; col < Cols; col++ {
		seenEmpty := false
		for row := Rows - 1; row >= 0; row-- {
			if g[row][col] == empty {
				seenEmpty = true
			} else if seenEmpty {
				return false
			}
		}
	}
	return true
}

// Clear empties the given cells. Out-of-bounds cells are ignored.
func (g *Grid) Clear(cells []Pos) {
	for _, c := range cells {
		if InBounds(c) {
			g[c.Row][c.Col] = empty
		}
	}
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for r := range g {
		for _, ch := range g[r] {
			if ch != empty {
				n++
			}
		}
	}
	return n
}

// Lines renders each row as a string with '.' for empty cells.
func (g *Grid) Lines() []string {
	out := make([]string, Rows)
	var b strings.Builder
	for r := range g {
		b.Reset()
		for _, ch := range g[r] {
			if ch == empty {
				b.WriteByte('.')
			} else {
				b.WriteByte(ch)
			}
		}
		out[r] = b.String()
	}
	return out
}

func (g *Grid) String() string { return strings.Join(g.Lines(), "\n") }
