package game

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kamstrup/intmap"

	"github.com/robalobadob/letterfall/internal/words"
)

// Dictionary answers word membership. *words.Dictionary satisfies it.
type Dictionary interface {
	Contains(word string) bool
}

// Directions are the eight unit steps a run can follow, as (row, col) deltas.
var Directions = [8]Pos{
	{0, 1}, {0, -1}, // right, left
	{1, 0}, {-1, 0}, // down, up
	{1, 1}, {1, -1}, // down-right, down-left
	{-1, 1}, {-1, -1}, // up-right, up-left
}

// Detect scans every occupied cell in every direction for runs that spell a
// dictionary word. A run starts at the cell and extends until it leaves the
// grid or meets an empty cell. Runs covering exactly the same set of cells
// are reported once; runs that only overlap are all reported.
// A nil dictionary validates nothing.
func Detect(g *Grid, dict Dictionary) []FoundWord {
	if dict == nil {
		return nil
	}
	var found []FoundWord
	seen := make(map[string]struct{})
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if g[row][col] == empty {
				continue
			}
			for _, d := range Directions {
				w, cells := run(g, Pos{row, col}, d)
				if len(w) < words.MinLength || !dict.Contains(w) {
					continue
				}
				key := cellSetKey(cells)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				found = append(found, FoundWord{Word: w, Points: words.Score(w), Cells: cells})
			}
		}
	}
	return found
}

// run collects letters from start stepping by d while cells stay occupied.
func run(g *Grid, start, d Pos) (string, []Pos) {
	var b strings.Builder
	var cells []Pos
	for p := start; g.Occupied(p); p = (Pos{p.Row + d.Row, p.Col + d.Col}) {
		b.WriteByte(g[p.Row][p.Col])
		cells = append(cells, p)
	}
	return b.String(), cells
}

// cellSetKey is an order-independent identity for a set of cells.
func cellSetKey(cells []Pos) string {
	keys := make([]string, len(cells))
	for i, c := range cells {
		keys[i] = strconv.Itoa(c.Row) + "-" + strconv.Itoa(c.Col)
	}
	slices.Sort(keys)
	return strings.Join(keys, "|")
}

// ClearFound empties every cell of every found word and returns the total
// points and the distinct cells removed. Cells shared by several words are
// removed once.
func ClearFound(g *Grid, found []FoundWord) (points int, cleared []Pos) {
	set := intmap.New[int, struct{}](len(found) * words.MinLength)
	for _, fw := range found {
		points += fw.Points
		for _, c := range fw.Cells {
			idx := c.Row*Cols + c.Col
			if _, ok := set.Get(idx); ok {
				continue
			}
			set.Put(idx, struct{}{})
			cleared = append(cleared, c)
		}
	}
	g.Clear(cleared)
	return points, cleared
}
