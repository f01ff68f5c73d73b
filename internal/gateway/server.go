package gateway

import (
	"context"
	"net/http"
	"time"

	"scout/internal/agent"
	"scout/internal/history"
)

type Server struct {
	runner agent.Runner
	store  *history.Store
	token  string
	mux    *http.ServeMux
}

func NewServer(runner agent.Runner, store *history.Store, token string) *Server {
	s := &Server{
		runner: runner,
		store:  store,
		token:  token,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /v1/research", s.auth(s.handleResearch))
	s.mux.HandleFunc("GET /v1/runs", s.auth(s.handleListRuns))
	s.mux.HandleFunc("GET /v1/runs/{id}", s.auth(s.handleGetRun))
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
}

// auth checks the bearer token when one is configured.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
