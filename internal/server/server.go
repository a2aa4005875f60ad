// Package server provides the HTTP REST API for the career navigation service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/msaswata15/career-navigation-platform/internal/cache"
	"github.com/msaswata15/career-navigation-platform/internal/db"
	"github.com/msaswata15/career-navigation-platform/internal/engine"
	"github.com/msaswata15/career-navigation-platform/internal/graph"
	"github.com/msaswata15/career-navigation-platform/internal/similarity"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	engine     *engine.Engine
	graph      graph.Store
	oracle     *similarity.Oracle
	cache      *cache.Cache
	history    *db.DB
	validate   *validator.Validate
	log        *zap.Logger
}

// Config holds server configuration. Cache and History may be nil.
type Config struct {
	Addr    string
	Engine  *engine.Engine
	Graph   graph.Store
	Oracle  *similarity.Oracle
	Cache   *cache.Cache
	History *db.DB
	Log     *zap.Logger
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if cfg.Graph == nil {
		return nil, fmt.Errorf("graph store is required")
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	s := &Server{
		engine:   cfg.Engine,
		graph:    cfg.Graph,
		oracle:   cfg.Oracle,
		cache:    cfg.Cache,
		history:  cfg.History,
		validate: validator.New(),
		log:      cfg.Log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/career-paths", s.handleCareerPaths)
	mux.HandleFunc("GET /api/v1/skills/similar/{skill}", s.handleSimilarSkills)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // synthesis and enrichment calls are slow
	}

	return s, nil
}

// Start runs the server until it fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// withCORS allows cross-origin requests from the web frontend.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}
