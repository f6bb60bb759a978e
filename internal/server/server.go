package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/employee-be/internal/auth"
	"github.com/hongminglow/employee-be/internal/config"
	"github.com/hongminglow/employee-be/internal/http/handlers"
	"github.com/hongminglow/employee-be/internal/logging"
	"github.com/hongminglow/employee-be/internal/media"
	"github.com/hongminglow/employee-be/internal/middleware"
	"github.com/hongminglow/employee-be/internal/service"
	"github.com/hongminglow/employee-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server. A nil uploader
// disables photo uploads.
func New(cfg config.Config, store storage.Store, uploader media.Uploader, log logging.Logger) *Server {
	return &Server{inner: &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, store, uploader, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}}
}

// Handler builds the full middleware and route stack.
func Handler(cfg config.Config, store storage.Store, uploader media.Uploader, log logging.Logger) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	photos := media.NewResolver(uploader, cfg.MediaFolder)
	directory := service.NewDirectory(store, tokens, photos, log)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), store).Register(mux)
	handlers.NewOperationsHandler(directory, log).Register(mux)

	return middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, middleware.Identity(tokens, mux)))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
