// internal/httpserver/routes_game.go
//
// HTTP routes for live games:
//   - POST /game/new          → start a session for the caller (closes the previous one)
//   - GET  /game/{id}         → current snapshot
//   - POST /game/{id}/command → apply one command, return the snapshot
//
// A session only answers to the player that created it; other callers get 404.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/letterfall/internal/daily"
	"github.com/robalobadob/letterfall/internal/game"
	"github.com/robalobadob/letterfall/internal/session"
	"github.com/robalobadob/letterfall/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Get("/{id}", s.handleGetGame)
		r.Post("/{id}/command", s.handleCommand)
	})
}

type newGameRes struct {
	GameID   string        `json:"gameId"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type commandReq struct {
	Command string `json:"command"`
}

// handleNewGame starts a session with the caller's streak and today's theme.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	pid, err := s.playerID(w, r)
	if err != nil {
		log.Error().Err(err).Msg("ensure player")
		jsonError(w, http.StatusInternalServerError, "db_error")
		return
	}

	sess, err := session.Start(s.base, session.Options{
		PlayerID:   pid,
		Dictionary: s.dict,
		Theme:      daily.Theme(s.now(), s.cfg.DailySalt),
		Streaks:    s.players,
		Recorder:   session.SQLRecorder{Players: s.players, Daily: s.daily},
		Clock:      s.now,
	})
	if err != nil {
		log.Error().Err(err).Msg("start session")
		jsonError(w, http.StatusInternalServerError, "start_failed")
		return
	}
	if err := s.sessions.Put(r.Context(), sess); err != nil {
		sess.Close()
		jsonError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	snap, err := sess.Snapshot(r.Context())
	if err != nil {
		s.sessionError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Snapshot: snap})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.ownedSession(w, r)
	if !ok {
		return
	}
	snap, err := sess.Snapshot(r.Context())
	if err != nil {
		s.sessionError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}
	cmd, err := game.ParseCommand(req.Command)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, ok := s.ownedSession(w, r)
	if !ok {
		return
	}
	snap, err := sess.Do(r.Context(), cmd)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// ownedSession resolves {id} and checks it belongs to the caller.
func (s *Server) ownedSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "store_error")
		return nil, false
	}
	pid, err := s.playerID(w, r)
	if err != nil || pid != sess.PlayerID {
		jsonError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

func (s *Server) sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrClosed):
		jsonError(w, http.StatusGone, "session_closed")
	default:
		jsonError(w, http.StatusServiceUnavailable, err.Error())
	}
}
