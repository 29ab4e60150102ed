// Package api provides the HTTP server for Trademetriks.
//
// It serves the rendered dashboard, its embedded stylesheet, an RSS feed
// of daily P/L and JSON endpoints for every dashboard section. Each request
// reloads the tradebook and recomputes the dashboard.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seenimoa/trademetriks/internal/analytics"
	"github.com/seenimoa/trademetriks/internal/config"
	"github.com/seenimoa/trademetriks/internal/logger"
	"github.com/seenimoa/trademetriks/internal/report"
	"github.com/seenimoa/trademetriks/internal/tradebook"
	"github.com/seenimoa/trademetriks/pkg/models"
	"github.com/seenimoa/trademetriks/pkg/utils"
	"github.com/seenimoa/trademetriks/web"
)

// Loader returns the current tradebook. It is called once per request.
type Loader func(ctx context.Context) ([]models.Trade, error)

// TradebookLoader loads the CSV configured in the data section.
func TradebookLoader(dc config.DataConfig) (Loader, error) {
	opts, err := tradebook.OptionsFromConfig(dc)
	if err != nil {
		return nil, err
	}
	path := dc.TradesFile
	return func(ctx context.Context) ([]models.Trade, error) {
		return tradebook.Load(ctx, path, opts)
	}, nil
}

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	load    Loader
	opts    report.Options
	now     func() time.Time
	version string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, load Loader) *Server {
	srv := &Server{
		cfg:     cfg,
		load:    load,
		opts:    report.OptionsFromConfig(cfg.Report),
		now:     utils.NowIST,
		version: "dev",
	}
	srv.router = srv.buildRouter()
	return srv
}

// SetVersion sets the version reported by /health.
func (s *Server) SetVersion(v string) {
	s.version = v
}

// SetClock replaces the wall clock used when no as_of is given.
func (s *Server) SetClock(now func() time.Time) {
	s.now = now
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and shuts it down gracefully on
// SIGINT/SIGTERM or when ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", logger.Fields{"addr": addr})
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	// Dashboard page, assets and feed
	r.Get("/", s.handleDashboardHTML)
	r.Get("/feed.xml", s.handleFeed)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.StaticFS())))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/dashboard", s.section(func(db *models.Dashboard) any { return db }))
		r.Get("/kpis", s.section(func(db *models.Dashboard) any { return db.KPIs }))
		r.Get("/series/daily", s.section(func(db *models.Dashboard) any { return db.Daily }))
		r.Get("/series/weekday", s.section(func(db *models.Dashboard) any { return db.Weekday }))
		r.Get("/series/monthly", s.section(func(db *models.Dashboard) any { return db.Monthly }))
		r.Get("/symbols", s.section(func(db *models.Dashboard) any { return db.Symbols }))
		r.Get("/instruments", s.section(func(db *models.Dashboard) any { return db.Instruments }))
		r.Get("/trades/recent", s.handleRecentTrades)

		// Configuration
		r.Get("/config", s.handleGetConfig)
	})

	return r
}

// requestLogger logs method, path, status and latency of every request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		fields := logger.Fields{
			"method":     r.Method,
			"path":       r.URL.RequestURI(),
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"latency":    time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}
		if ww.Status() >= http.StatusInternalServerError {
			logger.Error("request", fields)
			return
		}
		logger.Info("request", fields)
	})
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecentTradesResponse is the payload of GET /api/v1/trades/recent.
type RecentTradesResponse struct {
	Date   models.Date          `json:"date"`
	Total  int                  `json:"total"`
	Trades []models.RecentTrade `json:"trades"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":      "ok",
			"version":     s.version,
			"trades_file": s.cfg.Data.TradesFile,
			"time_ist":    utils.FormatDateTimeIST(s.now()),
		},
	})
}

// section serves one part of the computed dashboard in the JSON envelope.
func (s *Server) section(pick func(*models.Dashboard) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		db, ok := s.compute(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: pick(db)})
	}
}

func (s *Server) handleRecentTrades(w http.ResponseWriter, r *http.Request) {
	db, ok := s.compute(w, r)
	if !ok {
		return
	}
	trades := db.RecentTrades
	if limit := s.opts.RecentTradesLimit; limit > 0 && len(trades) > limit {
		trades = trades[:limit]
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: RecentTradesResponse{
			Date:   db.DataAsOf,
			Total:  len(db.RecentTrades),
			Trades: trades,
		},
	})
}

func (s *Server) handleDashboardHTML(w http.ResponseWriter, r *http.Request) {
	db, ok := s.compute(w, r)
	if !ok {
		return
	}
	page, err := report.GenerateHTML(db, s.opts)
	if err != nil {
		s.fail(w, r, "render dashboard", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(page) //nolint:errcheck
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	db, ok := s.compute(w, r)
	if !ok {
		return
	}
	feed, err := report.GenerateRSS(db, report.FeedOptions{Title: s.opts.Title, Link: baseURL(r)})
	if err != nil {
		s.fail(w, r, "render feed", err)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(feed) //nolint:errcheck
}

// compute loads the tradebook and runs the pipeline for this request. On
// failure it writes the error response and returns false.
func (s *Server) compute(w http.ResponseWriter, r *http.Request) (*models.Dashboard, bool) {
	asOf, err := analytics.ResolveAsOf(r.URL.Query().Get("as_of"), utils.IST, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	trades, err := s.load(r.Context())
	if err != nil {
		s.fail(w, r, "load tradebook", err)
		return nil, false
	}

	db, err := analytics.Compute(r.Context(), trades, asOf)
	if err != nil {
		s.fail(w, r, "compute dashboard", err)
		return nil, false
	}
	return db, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger.Error(op+" failed", logger.Fields{
		"error":      err,
		"request_id": middleware.GetReqID(r.Context()),
	})
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", op, err))
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to write JSON response", logger.Fields{"error": err})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
