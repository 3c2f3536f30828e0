// internal/session/session.go
//
// A Session runs one game.Game on its own goroutine.
// Responsibilities:
//   - Serialize commands, snapshot reads and wall-clock ticks (actor loop).
//   - Convert elapsed wall-clock time into engine logical time.
//   - Load the player's streak on start and persist results on game over.
//
// Notes:
//   - Persistence failures are logged and never change the game state.
//   - A session stops when its context is cancelled or Close is called.
//     Calls on a stopped session return ErrClosed.

package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	mrand "math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/letterfall/internal/game"
	"github.com/robalobadob/letterfall/internal/streak"
)

// ErrClosed is returned for calls on a stopped session.
var ErrClosed = errors.New("session closed")

// DefaultResolution is how often the loop feeds wall-clock time to the engine.
const DefaultResolution = 50 * time.Millisecond

// Summary describes a finished game for persistence.
type Summary struct {
	SessionID  string
	PlayerID   string
	GameID     string
	Theme      string
	Score      int
	Words      int
	Streak     int
	FinishedAt time.Time
}

// Recorder stores finished games.
type Recorder interface {
	RecordResult(ctx context.Context, s Summary) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, s Summary) error

func (f RecorderFunc) RecordResult(ctx context.Context, s Summary) error { return f(ctx, s) }

// Options configures a session. Dictionary and PlayerID are the only fields
// most callers set.
type Options struct {
	PlayerID   string
	Dictionary game.Dictionary
	Theme      string
	Streaks    streak.Store // nil keeps the streak in memory only
	Recorder   Recorder     // nil skips result persistence
	Rand       *mrand.Rand
	Logger     *zerolog.Logger

	// Clock returns wall-clock time. Defaults to time.Now.
	Clock func() time.Time
	// Resolution is the ticker period of the loop. Defaults to DefaultResolution.
	Resolution time.Duration
	// WriteTimeout bounds each persistence call on game over.
	WriteTimeout time.Duration
}

type request struct {
	fn    func(g *game.Game)
	reply chan game.Snapshot
}

// Session owns one game engine.
type Session struct {
	ID       string
	PlayerID string

	reqs chan request
	quit chan struct{}
	done chan struct{}
	once sync.Once

	lastActive atomic.Int64 // unix nanos of the last call

	// loop-owned
	g       *game.Game
	opts    Options
	prev    streak.Record
	last    time.Time
	log     zerolog.Logger
	persist context.Context
}

// Start loads the player's streak, creates a running game and starts the
// session loop. The loop stops when ctx is cancelled.
func Start(ctx context.Context, opts Options) (*Session, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Resolution <= 0 {
		opts.Resolution = DefaultResolution
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	s := &Session{
		ID:       newID(),
		PlayerID: opts.PlayerID,
		reqs:     make(chan request),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		opts:     opts,
	}
	base := log.Logger
	if opts.Logger != nil {
		base = *opts.Logger
	}
	s.log = base.With().Str("session", s.ID).Str("player", opts.PlayerID).Logger()

	now := opts.Clock()
	count := 0
	if opts.Streaks != nil && opts.PlayerID != "" {
		n, rec, err := streak.Load(ctx, opts.Streaks, opts.PlayerID, now)
		if err != nil {
			s.log.Warn().Err(err).Msg("load streak")
		}
		count, s.prev = n, rec
	}

	// Persistence on game over outlives request contexts but not the server.
	s.persist = context.WithoutCancel(ctx)

	engineLog := s.log
	s.g = game.New(game.Options{
		Dictionary: opts.Dictionary,
		Rand:       opts.Rand,
		Streak:     count,
		Theme:      opts.Theme,
		Logger:     &engineLog,
		OnGameOver: s.onGameOver,
	})
	s.g.Start()
	s.last = now
	s.touch(now)

	s.log.Info().Str("game", s.g.ID).Int("streak", count).Msg("session started")
	go s.run(ctx)
	return s, nil
}

// run is the actor loop. Only this goroutine touches s.g.
func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	t := time.NewTicker(s.opts.Resolution)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("session stopped: context done")
			return
		case <-s.quit:
			s.log.Info().Msg("session closed")
			return
		case <-t.C:
			s.advance()
		case req := <-s.reqs:
			s.advance()
			if req.fn != nil {
				req.fn(s.g)
			}
			req.reply <- s.g.Snapshot()
		}
	}
}

// advance feeds the wall-clock time since the last call to the engine.
func (s *Session) advance() {
	now := s.opts.Clock()
	if d := now.Sub(s.last); d > 0 {
		s.g.Advance(d)
	}
	s.last = now
}

func (s *Session) onGameOver(res game.Result) {
	now := s.opts.Clock()
	sum := Summary{
		SessionID:  s.ID,
		PlayerID:   s.PlayerID,
		GameID:     res.GameID,
		Theme:      s.g.Theme,
		Score:      res.Score,
		Words:      res.Words,
		Streak:     res.Streak,
		FinishedAt: now,
	}

	if s.opts.Streaks != nil && s.PlayerID != "" {
		next := streak.Extend(res.Streak, res.Words, now, s.prev)
		if next != s.prev {
			ctx, cancel := context.WithTimeout(s.persist, s.opts.WriteTimeout)
			if err := s.opts.Streaks.Save(ctx, s.PlayerID, next); err != nil {
				s.log.Warn().Err(err).Msg("save streak")
			} else {
				s.prev = next
			}
			cancel()
		}
	}

	if s.opts.Recorder != nil && s.PlayerID != "" {
		ctx, cancel := context.WithTimeout(s.persist, s.opts.WriteTimeout)
		if err := s.opts.Recorder.RecordResult(ctx, sum); err != nil {
			s.log.Warn().Err(err).Str("game", res.GameID).Msg("record result")
		}
		cancel()
	}
}

// Do applies a command and returns the resulting snapshot.
func (s *Session) Do(ctx context.Context, c game.Command) (game.Snapshot, error) {
	return s.call(ctx, func(g *game.Game) { g.Apply(c) })
}

// Snapshot returns the current view after catching up with the clock.
func (s *Session) Snapshot(ctx context.Context) (game.Snapshot, error) {
	return s.call(ctx, nil)
}

func (s *Session) call(ctx context.Context, fn func(*game.Game)) (game.Snapshot, error) {
	req := request{fn: fn, reply: make(chan game.Snapshot, 1)}
	select {
	case s.reqs <- req:
	case <-s.done:
		return game.Snapshot{}, ErrClosed
	case <-ctx.Done():
		return game.Snapshot{}, ctx.Err()
	}
	s.touch(s.opts.Clock())
	select {
	case snap := <-req.reply:
		return snap, nil
	case <-s.done:
		select {
		case snap := <-req.reply:
			return snap, nil
		default:
			return game.Snapshot{}, ErrClosed
		}
	case <-ctx.Done():
		return game.Snapshot{}, ctx.Err()
	}
}

// Close stops the loop and waits for it to exit. It is safe to call twice.
func (s *Session) Close() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}

// Done is closed once the loop has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// LastActive reports when the session last served a call.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch(t time.Time) { s.lastActive.Store(t.UnixNano()) }

// newID returns a compact 16‑hex‑char identifier.
func newID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
