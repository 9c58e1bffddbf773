package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rickgao/stockboard/internal/config"
	"github.com/rickgao/stockboard/internal/partition"
)

// Server serves the partitioned price data over HTTP. The partition set is
// computed once before New and never mutated, so handlers read it without
// synchronization.
type Server struct {
	cfg        config.ServerConfig
	heat       config.HeatmapConfig
	set        *partition.Set
	sourcePath string
	logger     *slog.Logger

	httpServer *http.Server
	upgrader   websocket.Upgrader
}

// New creates a Server over an immutable partition set. sourcePath is the
// raw file served by the download endpoint.
func New(cfg config.ServerConfig, heat config.HeatmapConfig, set *partition.Set, sourcePath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:        cfg,
		heat:       heat,
		set:        set,
		sourcePath: sourcePath,
		logger:     logger,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the full route table wrapped in access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/all", s.handleAll)
	mux.HandleFunc("/timeframes", s.handleTimeframes)
	mux.HandleFunc("/correlations", s.handleCorrelations)
	mux.HandleFunc("/download", s.handleDownload)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws/rows", s.handleRows)

	return s.withLogging(mux)
}

// ListenAndServe runs the HTTP server until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "addr", s.cfg.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
