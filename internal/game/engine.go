// internal/game/engine.go
//
// Core game engine for a single Letterfall session.
// Responsibilities:
//   - Spawn pieces from the letter queue, let them fall one row per tick.
//   - Apply player commands (move, rotate, drops, pause, new game).
//   - On lock: write letters, compact, detect words, clear and score them,
//     then schedule a second compaction after the settle delay.
//   - Track state transitions: idle → running ⇄ paused → gameover.
//
// Notes:
//   - The engine never reads the wall clock. Ticks and the settle compaction
//     are entries in a sched.Queue, and time moves only through Advance.
//   - A Game is not safe for concurrent use; session.Session serializes access.
//   - Commands that do not apply in the current state are ignored.

package game

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/letterfall/internal/letters"
	"github.com/robalobadob/letterfall/internal/sched"
)

const (
	// TickInterval is the gravity period while running.
	TickInterval = time.Second
	// SettleDelay separates clearing a word from the collapse that follows.
	SettleDelay = time.Second
	// HistoryShown is how many recent words a snapshot carries.
	HistoryShown = 10
)

// Options configures a Game. All fields are optional.
type Options struct {
	Dictionary Dictionary      // nil validates no words
	Rand       *mrand.Rand     // letter source; nil seeds randomly
	Streak     int             // streak carried in from storage
	Theme      string          // daily theme shown to the player
	Logger     *zerolog.Logger // nil disables logging

	// OnGameOver runs synchronously when the game ends, after the streak
	// has been updated.
	OnGameOver func(Result)
}

// Game holds the state of one game session.
type Game struct {
	ID        string
	State     State
	Grid      Grid
	Piece     *Piece // nil unless running or paused
	Queue     *letters.Queue
	Score     int
	Streak    int
	Words     []Record // every word found this game, oldest first
	Highlight []Pos    // cells cleared by the last lock, until they settle
	Theme     string

	dict    Dictionary
	sched   *sched.Queue
	tick    sched.Token
	hasTick bool
	settleT sched.Token
	settles bool
	log     zerolog.Logger
	onOver  func(Result)
}

// New constructs an idle game. Call Start to begin play.
func New(opts Options) *Game {
	lg := zerolog.Nop()
	if opts.Logger != nil {
		lg = *opts.Logger
	}
	return &Game{
		ID:     randomID(),
		State:  StateIdle,
		Queue:  letters.NewQueue(letters.NewGenerator(opts.Rand)),
		Streak: opts.Streak,
		Theme:  opts.Theme,
		dict:   opts.Dictionary,
		sched:  sched.New(),
		log:    lg,
		onOver: opts.OnGameOver,
	}
}

// Start moves an idle game to running: it refills the queue, spawns the
// first piece and schedules the first tick. A spawn collision ends the game
// immediately.
func (g *Game) Start() {
	if g.State != StateIdle {
		return
	}
	g.Queue.FillAll()
	g.State = StateRunning
	if g.spawn() {
		g.scheduleTick()
	}
}

// Advance moves logical time forward, firing due ticks and settle
// compactions in order.
func (g *Game) Advance(d time.Duration) { g.sched.Advance(d) }

// Clock reports the game's logical time.
func (g *Game) Clock() time.Duration { return g.sched.Now() }

// Pending lists scheduled entries by name, soonest first.
func (g *Game) Pending() []string { return g.sched.Pending() }

// Apply dispatches a command. Unknown commands are ignored.
func (g *Game) Apply(c Command) {
	switch c {
	case CmdMoveLeft:
		g.Move(-1)
	case CmdMoveRight:
		g.Move(1)
	case CmdRotateForward:
		g.Rotate(1)
	case CmdRotateBackward:
		g.Rotate(-1)
	case CmdSoftDrop:
		g.SoftDrop()
	case CmdHardDrop:
		g.HardDrop()
	case CmdTogglePause:
		g.TogglePause()
	case CmdNewGame:
		g.NewGame()
	}
}

// Move shifts the piece horizontally when the destination is free.
func (g *Game) Move(dx int) {
	if g.State != StateRunning {
		return
	}
	if next := g.Piece.Shifted(dx, 0); g.Grid.CanPlace(next) {
		g.Piece = next
	}
}

// Rotate cycles the piece letters through their permutations.
func (g *Game) Rotate(dir int) {
	if g.State != StateRunning {
		return
	}
	g.Piece.Rotate(dir)
}

// SoftDrop performs one gravity step without waiting for the tick.
func (g *Game) SoftDrop() {
	if g.State != StateRunning {
		return
	}
	g.step()
}

// HardDrop drops the piece as far as it goes and locks it at once.
func (g *Game) HardDrop() {
	if g.State != StateRunning {
		return
	}
	for {
		next := g.Piece.Shifted(0, 1)
		if !g.Grid.CanPlace(next) {
			break
		}
		g.Piece = next
	}
	g.lock()
}

// TogglePause switches between running and paused. Other states ignore it.
func (g *Game) TogglePause() {
	switch g.State {
	case StateRunning:
		g.State = StatePaused
		g.cancelTick()
	case StatePaused:
		g.State = StateRunning
		g.scheduleTick()
	}
}

// NewGame discards the current game, including any pending tick or settle
// compaction, and starts a fresh one. The streak carries over.
func (g *Game) NewGame() {
	g.sched.CancelAll()
	g.hasTick = false
	g.settles = false
	g.ID = randomID()
	g.State = StateIdle
	g.Grid = Grid{}
	g.Piece = nil
	g.Score = 0
	g.Words = nil
	g.Highlight = nil
	g.Start()
}

// step moves the piece down one row, locking it when blocked.
func (g *Game) step() {
	if next := g.Piece.Shifted(0, 1); g.Grid.CanPlace(next) {
		g.Piece = next
		return
	}
	g.lock()
}

// lock writes the piece into the grid, resolves words and spawns the next
// piece. Detection runs once per lock; the settle compaction does not
// trigger another pass.
func (g *Game) lock() {
	if dropped := g.Grid.Lock(g.Piece); dropped > 0 {
		g.log.Debug().Int("dropped", dropped).Int("row", g.Piece.Y).Msg("letters locked above the grid were lost")
	}
	g.Piece = nil
	g.Grid.Compact()

	found := Detect(&g.Grid, g.dict)
	if len(found) > 0 {
		points, cleared := ClearFound(&g.Grid, found)
		g.Score += points
		for _, fw := range found {
			g.Words = append(g.Words, Record{Word: fw.Word, Points: fw.Points})
		}
		g.Highlight = cleared
		g.scheduleSettle()
		g.log.Debug().Int("words", len(found)).Int("points", points).Msg("words cleared")
	}

	g.spawn()
}

// scheduleSettle arms the settle compaction SettleDelay from now. A clear
// that lands while one is pending re-arms it, so the newest gap always gets
// the full delay.
func (g *Game) scheduleSettle() {
	if g.settles {
		g.sched.Cancel(g.settleT)
	}
	g.settleT = g.sched.After(SettleDelay, "settle", g.settle)
	g.settles = true
}

// settle is the deferred compaction after a clear. When collapsing would
// drop letters into cells the falling piece occupies, the grid is left as is
// and the compaction that runs at the next lock closes the gap instead.
func (g *Game) settle() {
	g.settles = false
	g.Highlight = nil
	next := g.Grid
	next.Compact()
	if g.Piece != nil && next.Collides(g.Piece) {
		g.log.Debug().Int("x", g.Piece.X).Int("y", g.Piece.Y).Msg("settle deferred, piece is inside the gap")
		return
	}
	g.Grid = next
}

// spawn places the front queue piece at the spawn point. When the spawn
// footprint is blocked the game ends without touching the grid or queue.
func (g *Game) spawn() bool {
	p := Spawn(g.Queue.Front())
	if g.Grid.Collides(p) {
		g.gameOver()
		return false
	}
	g.Queue.Pop()
	g.Piece = p
	return true
}

func (g *Game) gameOver() {
	g.State = StateGameOver
	g.Piece = nil
	g.cancelTick()
	if len(g.Words) > 0 {
		g.Streak++
	}
	res := Result{GameID: g.ID, Score: g.Score, Words: len(g.Words), Streak: g.Streak}
	g.log.Info().Int("score", res.Score).Int("words", res.Words).Int("streak", res.Streak).Msg("game over")
	if g.onOver != nil {
		g.onOver(res)
	}
}

func (g *Game) scheduleTick() {
	g.cancelTick()
	g.tick = g.sched.After(TickInterval, "tick", g.onTick)
	g.hasTick = true
}

func (g *Game) cancelTick() {
	if g.hasTick {
		g.sched.Cancel(g.tick)
		g.hasTick = false
	}
}

func (g *Game) onTick() {
	g.hasTick = false
	if g.State != StateRunning {
		return
	}
	g.step()
	if g.State == StateRunning {
		g.scheduleTick()
	}
}

// Snapshot copies the state a renderer needs.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		ID:        g.ID,
		State:     g.State,
		Grid:      g.Grid.Lines(),
		Score:     g.Score,
		Streak:    g.Streak,
		WordCount: len(g.Words),
		Theme:     g.Theme,
		Words:     RecentWords(g.Words, HistoryShown),
	}
	if g.Piece != nil {
		s.Piece = &PieceView{
			Cells:     g.Piece.Cells(),
			Letters:   string(g.Piece.Letters[:]),
			PermIndex: g.Piece.PermIndex,
		}
	}
	for _, p := range g.Queue.Slots() {
		s.Next = append(s.Next, p.String())
	}
	if len(g.Highlight) > 0 {
		s.Highlight = append([]Pos(nil), g.Highlight...)
	}
	return s
}

// RecentWords returns up to n records, newest first.
func RecentWords(all []Record, n int) []Record {
	out := make([]Record, 0, min(n, len(all)))
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out
}

// Result reports the current totals, whether or not the game is over.
func (g *Game) Result() Result {
	return Result{GameID: g.ID, Score: g.Score, Words: len(g.Words), Streak: g.Streak}
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
