// Package webhook hosts the HTTP endpoint the stream provider posts
// transaction events to.
package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/walletping/walletping/internal/dispatch"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps webhook bodies; provider events are small documents.
const maxBodyBytes = 1 << 20

// Server is the inbound HTTP surface: one provider event route plus a health
// endpoint.
type Server struct {
	dispatcher dispatch.Service
	srv        *http.Server
}

// New builds the server listening on addr.
func New(dispatcher dispatch.Service, addr string) *Server {
	s := &Server{dispatcher: dispatcher}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Post("/streams/moralis", s.handleStreamEvent)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start serves until Shutdown is called or the listener fails. It blocks.
func (s *Server) Start() error {
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
