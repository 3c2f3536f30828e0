// Command letterfall-tui plays Letterfall in the terminal.
//
// The game runs in-process through a session.Session; streaks and results
// go to the same SQLite database as the server (DB_PATH). Logs are written to
// LETTERFALL_LOG when set, since stdout belongs to the screen.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/letterfall/internal/config"
	"github.com/robalobadob/letterfall/internal/daily"
	"github.com/robalobadob/letterfall/internal/db"
	"github.com/robalobadob/letterfall/internal/game"
	"github.com/robalobadob/letterfall/internal/players"
	"github.com/robalobadob/letterfall/internal/session"
	"github.com/robalobadob/letterfall/internal/streak"
	"github.com/robalobadob/letterfall/internal/words"
)

const frameInterval = 33 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "letterfall: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	closeLog := setupLogging(cfg.LogLevel, os.Getenv("LETTERFALL_LOG"))
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := session.Options{
		PlayerID:   config.Str("LETTERFALL_PLAYER", "local"),
		Dictionary: words.Init(cfg.DictFile),
		Theme:      daily.Theme(time.Now(), cfg.DailySalt),
	}

	// Without a database the game still runs; the streak lives in memory.
	if sqlDB, err := db.OpenMigrated(cfg.DBPath); err != nil {
		log.Warn().Err(err).Str("path", cfg.DBPath).Msg("database unavailable, progress will not be saved")
		opts.Streaks = streak.NewMemoryStore()
	} else {
		defer sqlDB.Close()
		ps := players.NewStore(sqlDB)
		if err := ps.Ensure(ctx, opts.PlayerID); err != nil {
			return fmt.Errorf("ensure player: %w", err)
		}
		opts.Streaks = ps
		opts.Recorder = session.SQLRecorder{Players: ps, Daily: daily.NewStore(sqlDB)}
	}

	sess, err := session.Start(ctx, opts)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	snd := newSounds()
	if err := snd.init(); err != nil {
		log.Info().Err(err).Msg("audio disabled")
	}
	defer snd.close()

	return loop(ctx, screen, sess, snd)
}

// loop polls input and redraws until the player quits.
func loop(ctx context.Context, screen tcell.Screen, sess *session.Session, snd *sounds) error {
	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	frame := time.NewTicker(frameInterval)
	defer frame.Stop()

	var prev game.Snapshot
	show := func(snap game.Snapshot) {
		cueSounds(snd, prev, snap)
		prev = snap
		draw(screen, snap)
		screen.Show()
	}

	snap, err := sess.Snapshot(ctx)
	if err != nil {
		return err
	}
	prev = snap
	show(snap)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				act, cmd := keyAction(ev)
				switch act {
				case actQuit:
					return nil
				case actCommand:
					snap, err := sess.Do(ctx, cmd)
					if err != nil {
						return err
					}
					show(snap)
				}
			}
		case <-frame.C:
			snap, err := sess.Snapshot(ctx)
			if err != nil {
				return err
			}
			show(snap)
		}
	}
}

// cueSounds compares consecutive snapshots of the same game.
func cueSounds(snd *sounds, prev, next game.Snapshot) {
	if prev.ID != next.ID {
		return
	}
	if n := next.WordCount - prev.WordCount; n > 0 {
		snd.wordCleared(n)
	}
	if next.State == game.StateGameOver && prev.State != game.StateGameOver {
		snd.gameOver()
	}
}

// setupLogging points the global logger at path, or discards logs.
func setupLogging(level, path string) func() {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	var w io.Writer = io.Discard
	closer := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			w = f
			closer = func() { _ = f.Close() }
		}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return closer
}
