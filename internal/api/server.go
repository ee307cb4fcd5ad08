package api

import (
	"context"
	"net/http"
	"time"
)

// Server wraps the HTTP server for the report API.
type Server struct {
	httpServer *http.Server
}

func NewServer(addr string, h *Handlers) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      SetupRoutes(h),
			ReadTimeout:  30 * time.Second,
			// Pipeline runs execute inside the trigger request; give the
			// write side room for a full batch pass.
			WriteTimeout: 10 * time.Minute,
			IdleTimeout:  120 * time.Second,
		},
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
