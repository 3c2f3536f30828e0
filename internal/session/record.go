package session

import (
	"context"
	"fmt"
	"time"

	"github.com/robalobadob/letterfall/internal/daily"
	"github.com/robalobadob/letterfall/internal/players"
)

// SQLRecorder writes finished games to the player history and the daily
// leaderboard.
type SQLRecorder struct {
	Players *players.Store
	Daily   *daily.Store
}

func (r SQLRecorder) RecordResult(ctx context.Context, s Summary) error {
	if err := r.Players.RecordGame(ctx, players.GameRow{
		ID:         s.GameID,
		PlayerID:   s.PlayerID,
		Theme:      s.Theme,
		Score:      s.Score,
		Words:      s.Words,
		FinishedAt: s.FinishedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("record game: %w", err)
	}
	if err := r.Daily.InsertResult(ctx, daily.Result{
		PlayerID: s.PlayerID,
		Date:     daily.DateKey(s.FinishedAt),
		Score:    s.Score,
		Words:    s.Words,
	}); err != nil {
		return fmt.Errorf("record daily: %w", err)
	}
	return nil
}
