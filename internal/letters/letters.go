// internal/letters/letters.go
//
// Weighted letter generation and the lookahead queue of upcoming pieces.
// Responsibilities:
//   - Draw single letters in proportion to an English-like frequency table.
//   - Hold exactly QueueLen pending pieces (PieceSize letters each), FIFO.
//
// Notes:
//   - The random source is injected so tests can seed it.
//   - Draw never fails; a draw that selects nothing yields Fallback.

package letters

import (
	"math/rand/v2"
)

const (
	// QueueLen is the number of upcoming pieces shown to the player.
	QueueLen = 5
	// PieceSize is the number of letters on one 2x2 piece.
	PieceSize = 4
	// Fallback is returned when a weighted draw selects no letter.
	Fallback = 'A'
)

// Weight pairs a letter with its relative draw frequency.
type Weight struct {
	Letter byte
	Weight int
}

// Frequencies is the draw table, walked in this order.
var Frequencies = []Weight{
	{'E', 12}, {'T', 9}, {'A', 8}, {'O', 8}, {'I', 7}, {'N', 7}, {'S', 6}, {'H', 6},
	{'R', 6}, {'D', 4}, {'L', 4}, {'C', 3}, {'U', 3}, {'M', 2}, {'W', 2}, {'F', 2},
	{'G', 2}, {'Y', 2}, {'P', 2}, {'B', 1}, {'V', 1}, {'K', 1}, {'J', 1}, {'X', 1},
	{'Q', 1}, {'Z', 1},
}

// TotalWeight returns the sum of all weights in table.
func TotalWeight(table []Weight) int {
	n := 0
	for _, w := range table {
		n += w.Weight
	}
	return n
}

// Piece is the content of one queue slot.
type Piece [PieceSize]byte

// String renders the piece letters in slot order.
func (p Piece) String() string { return string(p[:]) }

// Generator draws letters from a weight table.
type Generator struct {
	rng   *rand.Rand
	table []Weight
	total float64
}

// NewGenerator returns a Generator over Frequencies using rng.
// A nil rng uses a randomly seeded PCG source.
func NewGenerator(rng *rand.Rand) *Generator {
	return NewGeneratorWithTable(rng, Frequencies)
}

// NewGeneratorWithTable is NewGenerator with a custom weight table.
func NewGeneratorWithTable(rng *rand.Rand, table []Weight) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng, table: table, total: float64(TotalWeight(table))}
}

// Draw returns one letter chosen with probability proportional to its weight.
func (g *Generator) Draw() byte {
	return pick(g.table, g.rng.Float64()*g.total)
}

// pick walks table subtracting weights from v until it drops to zero or below.
func pick(table []Weight, v float64) byte {
	for _, w := range table {
		v -= float64(w.Weight)
		if v <= 0 {
			return w.Letter
		}
	}
	return Fallback
}

// Piece draws PieceSize independent letters.
func (g *Generator) Piece() Piece {
	var p Piece
	for i := range p {
		p[i] = g.Draw()
	}
	return p
}

// Queue is the fixed-length lookahead of upcoming pieces.
type Queue struct {
	gen   *Generator
	slots [QueueLen]Piece
}

// NewQueue returns a Queue backed by gen with every slot filled.
func NewQueue(gen *Generator) *Queue {
	q := &Queue{gen: gen}
	q.FillAll()
	return q
}

// FillSlot regenerates all letters of slot i.
func (q *Queue) FillSlot(i int) {
	q.slots[i] = q.gen.Piece()
}

// FillAll regenerates every slot.
func (q *Queue) FillAll() {
	for i := range q.slots {
		q.FillSlot(i)
	}
}

// Front returns the next piece without consuming it.
func (q *Queue) Front() Piece { return q.slots[0] }

// Pop consumes the front piece, shifts the rest forward and fills the back.
func (q *Queue) Pop() Piece {
	front := q.slots[0]
	copy(q.slots[:], q.slots[1:])
	q.FillSlot(QueueLen - 1)
	return front
}

// Slots returns a copy of the queue, front first.
func (q *Queue) Slots() [QueueLen]Piece { return q.slots }
