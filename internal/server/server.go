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

	"github.com/cosmoforge/minecore/internal/accrual"
	"github.com/cosmoforge/minecore/internal/database"
	"github.com/cosmoforge/minecore/internal/eventlog"
	"github.com/cosmoforge/minecore/internal/exchange"
	"github.com/cosmoforge/minecore/internal/handler"
	"github.com/cosmoforge/minecore/internal/logger"
	"github.com/cosmoforge/minecore/internal/metrics"
	"github.com/cosmoforge/minecore/internal/notify"
	"github.com/cosmoforge/minecore/internal/reconcile"
	"github.com/cosmoforge/minecore/internal/stake"
)

type Server struct {
	httpServer      *http.Server
	dbPool          database.Pool
	reconcileClient *reconcile.Client
	simulator       *accrual.Simulator
	stakeService    stake.Service
	exchangeService exchange.Service
	auditService    eventlog.Service
	hub             *notify.Hub
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, reconcileClient *reconcile.Client, simulator *accrual.Simulator, stakeService stake.Service, exchangeService exchange.Service, auditService eventlog.Service, hub *notify.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Live event stream for the Mini-App UI
	r.Get("/events", notify.Handler(hub))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Session routes
		r.Route("/session", func(r chi.Router) {
			r.Post("/activate", handler.HandleActivateSession(reconcileClient, simulator))
			r.Post("/deactivate", handler.HandleDeactivateSession(reconcileClient))
			r.Get("/snapshot", handler.HandleGetSnapshot(reconcileClient))
		})

		// Zone routes
		r.Get("/zones", handler.HandleGetZones(simulator))
		r.Post("/player/{playerID}/zone/{zone}/collect", handler.HandleCollect(simulator, reconcileClient))

		// Stake routes
		stakeHandler := handler.NewStakeHandler(stakeService)
		r.Route("/stake", func(r chi.Router) {
			r.Post("/plans", stakeHandler.HandlePlans)
			r.Post("/create", stakeHandler.HandleCreate)
			r.Post("/withdraw", stakeHandler.HandleWithdraw)
			r.Post("/cancel", stakeHandler.HandleCancel)
			r.Get("/deposits", stakeHandler.HandleGetDeposits)
		})

		// Exchange routes
		r.Route("/exchange", func(r chi.Router) {
			r.Get("/rates", handler.HandleGetRates(exchangeService))
			r.Post("/quote", handler.HandleQuote(exchangeService, reconcileClient))
			r.Post("/convert", handler.HandleConvert(exchangeService, reconcileClient))
		})

		// Audit routes
		r.Get("/audit/history", handler.HandleGetAuditHistory(auditService))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:          dbPool,
		reconcileClient: reconcileClient,
		simulator:       simulator,
		stakeService:    stakeService,
		exchangeService: exchangeService,
		auditService:    auditService,
		hub:             hub,
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
		statusCode:     http.StatusOK, // default status
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

// Flush lets SSE responses stream through the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
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
