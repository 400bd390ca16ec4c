// Package server contains the HTTP layer: routing, request binding, and
// response formatting for the on-device API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cyberguard-ng/cyberguard/internal/audit"
	"github.com/cyberguard-ng/cyberguard/internal/classifier"
	"github.com/cyberguard-ng/cyberguard/internal/metrics"
	"github.com/cyberguard-ng/cyberguard/internal/report"
	"github.com/cyberguard-ng/cyberguard/internal/ruledb"
)

// Server wires the classifiers, rule store, reports and audit emitter
// behind the HTTP API.
type Server struct {
	log        *slog.Logger
	rules      *ruledb.Store
	ussd       *classifier.USSD
	sms        *classifier.SMS
	reports    *report.Store
	emitter    *audit.Emitter
	previewLen int
	started    time.Time

	httpServer *http.Server
}

// Options carries the dependencies for New.
type Options struct {
	Log        *slog.Logger
	Rules      *ruledb.Store
	Reports    *report.Store
	Emitter    *audit.Emitter
	PreviewLen int
}

// New creates a server with all routes registered.
func New(opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	reports := opts.Reports
	if reports == nil {
		reports = report.NewStore()
	}

	s := &Server{
		log:        log,
		rules:      opts.Rules,
		ussd:       classifier.NewUSSD(opts.Rules),
		sms:        classifier.NewSMS(opts.Rules),
		reports:    reports,
		emitter:    opts.Emitter,
		previewLen: opts.PreviewLen,
		started:    time.Now(),
	}
	return s
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/check", s.handleCheck)
	r.Get("/quick-scan", s.handleQuickScan)
	r.Get("/stats", s.handleStats)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			r.Post("/", s.handleSubmitReport)
			r.Get("/", s.handleListReports)
			r.Get("/{id}", s.handleGetReport)
			r.Patch("/{id}/status", s.handleUpdateReportStatus)
		})
	})

	r.Post("/admin/reload", s.handleReload)

	return r
}

// Start runs the HTTP server until ListenAndServe returns.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info("listening", "addr", addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// requestLogger emits one slog record per request and feeds the HTTP
// request counter.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()

		s.log.Info("http",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
