package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
)

type Server struct {
	router      *chi.Mux
	maxBodySize int64
}

type Options func(*Server)

func WithMaxBodySize(size int64) Options {
	return func(s *Server) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

func New(uc interfaces.AnalyzeUsecases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:      r,
		maxBodySize: maxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)

	routes := func(r chi.Router) {
		r.With(limitBodyMiddleware(s.maxBodySize)).Post("/analyze", analyzeHandler(uc))
		r.Get("/history", historyHandler(uc))
	}
	r.Group(routes)
	r.Route("/api", routes)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
