// internal/players/players.go
//
// Player persistence backed by SQLite.
// Responsibilities:
//   - Anonymous players (created on first visit) and registered accounts.
//   - Password hashing and verification (bcrypt).
//   - Streak records (implements streak.Store).
//   - Finished-game history and per-player counters.

package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/letterfall/internal/streak"
)

var (
	ErrNotFound      = errors.New("player not found")
	ErrUsernameTaken = errors.New("username taken")
)

// Player matches the players table shape.
type Player struct {
	ID           string    `json:"id"`
	Username     string    `json:"username,omitempty"` // empty for anonymous players
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	GamesPlayed  int       `json:"gamesPlayed"`
	BestScore    int       `json:"bestScore"`
	Streak       int       `json:"streak"`
	LastPlayed   string    `json:"lastPlayed,omitempty"`
}

// GameRow is one finished game.
type GameRow struct {
	ID         string `json:"id"`
	PlayerID   string `json:"-"`
	Theme      string `json:"theme"`
	Score      int    `json:"score"`
	Words      int    `json:"words"`
	FinishedAt string `json:"finishedAt"`
}

// Store is the SQLite-backed player store.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Ensure creates an anonymous player row for id if none exists.
func (s *Store) Ensure(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO players (id, created_at) VALUES (?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Create validates input, checks uniqueness, hashes the password and inserts
// a registered player.
func (s *Store) Create(ctx context.Context, id, username, pw string) (*Player, error) {
	username = NormalizeUsername(username)
	if err := ValidateSignup(username, pw); err != nil {
		return nil, err
	}
	if _, err := s.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, username, string(h), now); err != nil {
		return nil, fmt.Errorf("insert player: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Authenticate returns the player when the password matches.
func (s *Store) Authenticate(ctx context.Context, username, pw string) (*Player, error) {
	p, err := s.FindByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		return nil, err
	}
	if !CheckPassword(p.PasswordHash, pw) {
		return nil, ErrNotFound
	}
	return p, nil
}

const playerCols = `id, COALESCE(username,''), COALESCE(password_hash,''), created_at,
	games_played, best_score, streak, last_played`

func (s *Store) FindByUsername(ctx context.Context, username string) (*Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+playerCols+` FROM players WHERE username=?`, username)
	return scanPlayer(row)
}

func (s *Store) FindByID(ctx context.Context, id string) (*Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+playerCols+` FROM players WHERE id=?`, id)
	return scanPlayer(row)
}

func scanPlayer(row *sql.Row) (*Player, error) {
	var p Player
	var created string
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &created,
		&p.GamesPlayed, &p.BestScore, &p.Streak, &p.LastPlayed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &p, nil
}

// Load implements streak.Store.
func (s *Store) Load(ctx context.Context, playerID string) (streak.Record, error) {
	var r streak.Record
	err := s.db.QueryRowContext(ctx,
		`SELECT streak, last_played FROM players WHERE id=?`, playerID,
	).Scan(&r.Count, &r.LastPlayed)
	if errors.Is(err, sql.ErrNoRows) {
		return r, streak.ErrNotFound
	}
	return r, err
}

// Save implements streak.Store. The player row must exist.
func (s *Store) Save(ctx context.Context, playerID string, r streak.Record) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET streak=?, last_played=? WHERE id=?`, r.Count, r.LastPlayed, playerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordGame stores a finished game and bumps the player's counters in one
// transaction.
func (s *Store) RecordGame(ctx context.Context, g GameRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO games (id, player_id, theme, score, words, finished_at) VALUES (?,?,?,?,?,?)`,
		g.ID, g.PlayerID, g.Theme, g.Score, g.Words, g.FinishedAt); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE players SET games_played = games_played + 1, best_score = MAX(best_score, ?) WHERE id=?`,
		g.Score, g.PlayerID); err != nil {
		return fmt.Errorf("bump stats: %w", err)
	}
	return tx.Commit()
}

// RecentGames lists the player's latest finished games, newest first.
func (s *Store) RecentGames(ctx context.Context, playerID string, limit int) ([]GameRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player_id, theme, score, words, finished_at
		 FROM games WHERE player_id=? ORDER BY finished_at DESC, rowid DESC LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []GameRow{}
	for rows.Next() {
		var g GameRow
		if err := rows.Scan(&g.ID, &g.PlayerID, &g.Theme, &g.Score, &g.Words, &g.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Claim moves an anonymous player's games and daily scores to a registered
// player and keeps the better streak. The anonymous row is deleted.
func (s *Store) Claim(ctx context.Context, anonID, playerID string) error {
	if anonID == "" || playerID == "" || anonID == playerID {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var anonUser sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT username FROM players WHERE id=?`, anonID).Scan(&anonUser)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if anonUser.Valid {
		// Registered accounts are never merged into each other.
		return nil
	}

	stmts := []struct {
		q    string
		args []any
	}{
		{`UPDATE games SET player_id=? WHERE player_id=?`, []any{playerID, anonID}},
		{`UPDATE OR IGNORE daily_scores SET player_id=? WHERE player_id=?`, []any{playerID, anonID}},
		{`UPDATE players SET
			games_played = games_played + (SELECT games_played FROM players WHERE id=?),
			best_score = MAX(best_score, (SELECT best_score FROM players WHERE id=?)),
			streak = CASE WHEN (SELECT streak FROM players WHERE id=?) > streak
				THEN (SELECT streak FROM players WHERE id=?) ELSE streak END,
			last_played = MAX(last_played, (SELECT last_played FROM players WHERE id=?))
		  WHERE id=?`, []any{anonID, anonID, anonID, anonID, anonID, playerID}},
		{`DELETE FROM players WHERE id=?`, []any{anonID}},
	}
	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.q, st.args...); err != nil {
			return fmt.Errorf("claim: %w", err)
		}
	}
	return tx.Commit()
}

// CheckPassword is a bcrypt verifier.
func CheckPassword(hash, pw string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// NormalizeUsername trims whitespace.
func NormalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// ValidateSignup enforces basic username/password rules.
func ValidateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return errors.New("username must be 3–24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return errors.New("password must be 8–100 chars")
	}
	return nil
}
