// internal/httpserver/server.go
//
// HTTP server wiring for the Letterfall backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): /game/new, /game/{id}, /game/{id}/command.
//   - Daily endpoints: /daily/theme, /daily/leaderboard.
//   - Auth + stats endpoints: /auth/*, /stats/me.
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled (so cookies work).
//   - Each game is a session.Session owned by the server's base context, so
//     it outlives the request that created it.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/letterfall/internal/config"
	"github.com/robalobadob/letterfall/internal/daily"
	"github.com/robalobadob/letterfall/internal/players"
	"github.com/robalobadob/letterfall/internal/store"
	"github.com/robalobadob/letterfall/internal/streak"
	"github.com/robalobadob/letterfall/internal/words"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Base       context.Context // parent of every game session
	Config     config.Config
	Sessions   store.Store
	Players    *players.Store
	Daily      *daily.Store
	Dictionary *words.Dictionary
	Now        func() time.Time // defaults to time.Now
}

// Server bundles the router and its dependencies.
type Server struct {
	r        *chi.Mux
	base     context.Context
	cfg      config.Config
	sessions store.Store
	players  *players.Store
	daily    *daily.Store
	dict     *words.Dictionary
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Base == nil {
		d.Base = context.Background()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	s := &Server{
		r:        chi.NewRouter(),
		base:     d.Base,
		cfg:      d.Config,
		sessions: d.Sessions,
		players:  d.Players,
		daily:    d.Daily,
		dict:     d.Dictionary,
		now:      d.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"letterfall","endpoints":["/health","POST /game/new","GET /game/{id}","POST /game/{id}/command","/daily/*","/auth/*","/stats/me"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": s.dict.Len(), "sessions": s.sessions.Len()})
	})

	// Game and daily endpoints: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		s.mountGame(r)
		s.mountDaily(r)
		r.Get("/stats/me", s.handleStats)
	})

	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests and http.Server).
func (s *Server) Handler() http.Handler { return s.r }

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ STATS --------------------------------------

type statsRes struct {
	ID          string            `json:"id"`
	Username    string            `json:"username,omitempty"`
	GamesPlayed int               `json:"gamesPlayed"`
	BestScore   int               `json:"bestScore"`
	Streak      int               `json:"streak"`
	Recent      []players.GameRow `json:"recent"`
}

// handleStats reports the caller's counters, current streak and last games.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	pid, err := s.playerID(w, r)
	if err != nil {
		log.Error().Err(err).Msg("ensure player")
		jsonError(w, http.StatusInternalServerError, "db_error")
		return
	}
	p, err := s.players.FindByID(r.Context(), pid)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "db_error")
		return
	}
	recent, err := s.players.RecentGames(r.Context(), pid, 10)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(statsRes{
		ID:          p.ID,
		Username:    p.Username,
		GamesPlayed: p.GamesPlayed,
		BestScore:   p.BestScore,
		Streak:      streak.Current(streak.Record{Count: p.Streak, LastPlayed: p.LastPlayed}, s.now()),
		Recent:      recent,
	})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// jsonError writes {"error": msg} with status.
func jsonError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, map[string]string{"error": msg})
}
