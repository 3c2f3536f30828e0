// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily theme and leaderboard:
//   - GET /daily/theme       → today's theme (UTC date)
//   - GET /daily/leaderboard → top 20 results for today (or ?date=YYYY-MM-DD)
//
// Results are written by the session recorder when a game ends; these routes
// only read.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/letterfall/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/theme", s.handleTheme)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// themeRes is returned by /daily/theme.
type themeRes struct {
	Date   string `json:"date"`
	Theme  string `json:"theme"`
	Played bool   `json:"played"`
}

// handleTheme returns today's theme and whether the caller already has a
// result for today.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	res := themeRes{Date: daily.DateKey(now), Theme: daily.Theme(now, s.cfg.DailySalt)}
	if pid, err := s.playerID(w, r); err == nil {
		played, err := s.daily.Played(r.Context(), pid, res.Date)
		if err != nil {
			log.Warn().Err(err).Msg("daily played lookup")
		}
		res.Played = played
	}
	_ = json.NewEncoder(w).Encode(res)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_date")
		return
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "server error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
