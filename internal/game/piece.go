package game

import "github.com/robalobadob/letterfall/internal/letters"

const (
	SpawnX = 4
	SpawnY = 0

	// Permutations is the number of orderings of a piece's four letters.
	Permutations = 24
)

// Offsets are the (row, col) positions of the four letters relative to the
// piece anchor, in letter order.
var Offsets = [4]Pos{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

var factorials = [4]int{1, 1, 2, 6}

// Piece is the falling 2x2 block. Rotation reorders Letters; the footprint
// never changes.
type Piece struct {
	Original  [4]byte // letters as spawned, fixed for the piece's life
	Letters   [4]byte // current ordering, Letters[i] sits at Offsets[i]
	X, Y      int     // anchor column and row
	PermIndex int     // in [0, Permutations)
}

// Spawn returns a piece at the spawn point carrying the queue letters.
func Spawn(l letters.Piece) *Piece {
	return &Piece{
		Original: l,
		Letters:  l,
		X:        SpawnX,
		Y:        SpawnY,
	}
}

// Cells returns the absolute grid cell of each letter.
func (p *Piece) Cells() [4]Pos {
	var out [4]Pos
	for i, o := range Offsets {
		out[i] = Pos{Row: p.Y + o.Row, Col: p.X + o.Col}
	}
	return out
}

// Shifted returns a copy of the piece translated by (dx, dy).
func (p *Piece) Shifted(dx, dy int) *Piece {
	cp := *p
	cp.X += dx
	cp.Y += dy
	return &cp
}

// Rotate steps the permutation index by dir (usually +1 or -1) modulo
// Permutations and reorders the letters to match.
func (p *Piece) Rotate(dir int) {
	p.PermIndex = ((p.PermIndex+dir)%Permutations + Permutations) % Permutations
	p.Letters = Permutation(p.Original, p.PermIndex)
}

// Permutation decodes index as a factorial-base number: each digit, most
// significant first, picks one of the letters not yet taken. Index 0 is the
// identity ordering and 23 is the reverse.
func Permutation(src [4]byte, index int) [4]byte {
	index = ((index % Permutations) + Permutations) % Permutations
	remaining := append([]byte(nil), src[:]...)
	var out [4]byte
	for i := 3; i >= 0; i-- {
		f := factorials[i]
		q := index / f
		index %= f
		out[3-i] = remaining[q]
		remaining = append(remaining[:q], remaining[q+1:]...)
	}
	return out
}

// PermutationIndex is the inverse of Permutation for four distinct letters.
// It returns -1 when perm is not an ordering of src.
func PermutationIndex(src, perm [4]byte) int {
	remaining := append([]byte(nil), src[:]...)
	index := 0
	for i := 3; i >= 0; i-- {
		q := -1
		for j, b := range remaining {
			if b == perm[3-i] {
				q = j
				break
			}
		}
		if q < 0 {
			return -1
		}
		index += q * factorials[i]
		remaining = append(remaining[:q], remaining[q+1:]...)
	}
	return index
}
