// Package server wires the HTTP surface: routing, auth, rate limiting,
// request logging and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mintforge/packvault/internal/allocation"
	"github.com/mintforge/packvault/internal/catalog"
	"github.com/mintforge/packvault/internal/database"
	"github.com/mintforge/packvault/internal/handler"
	"github.com/mintforge/packvault/internal/logger"
	"github.com/mintforge/packvault/internal/metrics"
)

// Options carries everything NewServer needs beyond the services.
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	catalogService    catalog.Service
	allocationService allocation.Service
}

// NewServer creates a new Server instance with the full middleware stack
// and route tree. An empty APIKey disables auth, which config validation
// only permits outside production.
func NewServer(opts Options, dbPool database.Pool, catalogService catalog.Service, allocationService allocation.Service) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	if opts.APIKey != "" {
		r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	} else {
		slog.Default().Warn(LogMsgAuthDisabled)
	}
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		packHandler := handler.NewPackHandler(catalogService)
		r.Route("/pack", func(r chi.Router) {
			r.Get("/list", packHandler.HandleListPacks)
			r.Get("/items", packHandler.HandleGetPackItems)
			r.Post("/validate", packHandler.HandleValidatePack)
		})

		allocationHandler := handler.NewAllocationHandler(allocationService)
		r.Post("/pack/open", allocationHandler.HandleOpenPack)

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", allocationHandler.HandleGetWallet)
			r.Post("/credit", allocationHandler.HandleCreditWallet)
		})

		r.Get("/allocations", allocationHandler.HandleGetAllocations)
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
		},
		dbPool:            dbPool,
		catalogService:    catalogService,
		allocationService: allocationService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes fire constantly; keep them out of the logs.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
