package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"hindsight/internal/api/handler"
	"hindsight/internal/api/job"
	"hindsight/internal/api/middleware"
	"hindsight/internal/collector"
	"hindsight/internal/metrics"
	"hindsight/internal/storage/archive"
	"hindsight/internal/strategy"
)

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	APIKey         string
	JobTTL         time.Duration
	MaxJobs        int
	Timeout        time.Duration
	MetricsEnabled bool
	MetricsPath    string
}

// Server is the HTTP front end for running backtests.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	backtests  *handler.BacktestHandler
	archived   *handler.ReportsHandler
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	registry *strategy.Registry,
	provider collector.HistoryProvider,
	reports *archive.Reports,
	reg *metrics.Registry,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	jobs := job.NewStore(cfg.MaxJobs, cfg.JobTTL)

	s := &Server{
		logger:    logger,
		mux:       mux,
		backtests: handler.NewBacktestHandler(jobs, registry, provider, reports, reg, logger, cfg.Timeout),
	}

	auth := middleware.APIKeyAuth(cfg.APIKey)
	s.mux.Handle("/api/backtest", auth(http.HandlerFunc(s.handleBacktest)))
	s.mux.Handle("/api/backtest/", auth(http.HandlerFunc(s.handleBacktestStatus)))
	s.mux.Handle("/api/strategies", auth(http.HandlerFunc(handler.NewStrategiesHandler(registry).List)))
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Archive routes exist only when an archive backend is configured.
	if reports != nil {
		s.archived = handler.NewReportsHandler(reports)
		s.mux.Handle("/api/reports/", auth(http.HandlerFunc(s.handleReports)))
	}

	if cfg.MetricsEnabled && reg != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle(path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	var root http.Handler = mux
	if reg != nil {
		root = metrics.HTTPMiddleware(reg)(root)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the composed handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.backtests.Create(w, r)
}

func (s *Server) handleBacktestStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jobID := strings.TrimPrefix(r.URL.Path, "/api/backtest/")
	if jobID == "" || strings.Contains(jobID, "/") {
		http.NotFound(w, r)
		return
	}
	s.backtests.GetStatus(w, r, jobID)
}

// handleReports dispatches /api/reports/{symbol} listing and
// /api/reports/{symbol}/{file} report retrieval and deletion.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}

	symbol, file, nested := strings.Cut(rest, "/")
	switch {
	case !nested || file == "":
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.archived.ListSymbol(w, r, symbol)
	case strings.Contains(file, "/"):
		http.NotFound(w, r)
	case r.Method == http.MethodGet:
		s.archived.Get(w, r, symbol, file)
	case r.Method == http.MethodDelete:
		s.archived.Delete(w, r, symbol, file)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
