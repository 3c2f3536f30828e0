package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/letterfall/internal/config"
	"github.com/robalobadob/letterfall/internal/daily"
	"github.com/robalobadob/letterfall/internal/db"
	"github.com/robalobadob/letterfall/internal/httpserver"
	"github.com/robalobadob/letterfall/internal/players"
	"github.com/robalobadob/letterfall/internal/store"
	"github.com/robalobadob/letterfall/internal/words"
)

func main() {
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dict := words.Init(cfg.DictFile)

	sqlDB, err := db.OpenMigrated(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := store.NewMemoryStore()
	srv := httpserver.New(httpserver.Deps{
		Base:       ctx,
		Config:     cfg,
		Sessions:   sessions,
		Players:    players.NewStore(sqlDB),
		Daily:      daily.NewStore(sqlDB),
		Dictionary: dict,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("starting letterfall server")
		return srv.Serve(gctx, ":"+cfg.Port)
	})
	g.Go(func() error {
		return store.RunReaper(gctx, sessions, time.Minute, cfg.SessionIdle)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server exited")
		return
	}
	log.Info().Msg("server stopped")
}
