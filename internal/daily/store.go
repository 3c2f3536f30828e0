package daily

import (
	"context"
	"database/sql"
)

// Result is one player's finished game on a given day.
type Result struct {
	PlayerID string `json:"playerId"`
	Date     string `json:"date"`
	Score    int    `json:"score"`
	Words    int    `json:"words"`
}

// Store keeps each player's best game per day in daily_scores.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Played reports whether the player has a recorded game for date.
func (s *Store) Played(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_scores WHERE player_id=? AND date=?",
		playerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records r, keeping the higher score when the player already
// has a row for the day.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_scores(player_id, date, score, words)
VALUES(?,?,?,?)
ON CONFLICT(player_id, date) DO UPDATE SET score=excluded.score, words=excluded.words
WHERE excluded.score > daily_scores.score`,
		r.PlayerID, r.Date, r.Score, r.Words,
	)
	return err
}

type LBRow struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Words    int    `json:"words"`
}

// Leaderboard returns the best scores for date, highest first.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.player_id, COALESCE(p.username, ''), d.score, d.words
FROM daily_scores d LEFT JOIN players p ON p.id = d.player_id
WHERE d.date=?
ORDER BY d.score DESC, d.words DESC, d.created_at ASC
LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Name, &r.Score, &r.Words); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
