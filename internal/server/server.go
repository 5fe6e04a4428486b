package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/modstanding/internal/catalog"
	"github.com/osse101/modstanding/internal/database"
	"github.com/osse101/modstanding/internal/handler"
	"github.com/osse101/modstanding/internal/logger"
	"github.com/osse101/modstanding/internal/metrics"
	"github.com/osse101/modstanding/internal/punishment"
	"github.com/osse101/modstanding/internal/settings"
	"github.com/osse101/modstanding/internal/standing"
)

// Options configures the HTTP listener and its authentication
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
}

// Services are the application services exposed over HTTP
type Services struct {
	Punishment punishment.Service
	Standing   standing.Service
	Catalog    catalog.Service
	Settings   settings.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool: dbPool,
	}
}

// NewRouter builds the chi router with the middleware stack and every route.
// Middleware executes in the order registered, outermost first.
func NewRouter(opts Options, dbPool database.Pool, svc Services) chi.Router {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool, svc.Catalog))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	punishments := handler.NewPunishmentHandler(svc.Punishment)
	standings := handler.NewStandingHandler(svc.Standing)
	types := handler.NewCatalogHandler(svc.Catalog)
	settingsHandler := handler.NewSettingsHandler(svc.Settings)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/players/{playerID}", func(r chi.Router) {
			r.Get("/punishments", punishments.HandleListPunishments)
			r.Post("/punishments", punishments.HandleApplyPunishment)
			r.Get("/standing", standings.HandleGetStanding)
			r.Get("/offense-tier", standings.HandleGetOffenseTier)
		})

		r.Route("/punishments", func(r chi.Router) {
			// static segment, matched ahead of {punishmentID}
			r.Post("/evaluate", punishments.HandleEvaluate)
			r.Route("/{punishmentID}", func(r chi.Router) {
				r.Get("/", punishments.HandleGetPunishment)
				r.Post("/start", punishments.HandleStartPunishment)
				r.Post("/modifications", punishments.HandleAddModification)
				r.Post("/notes", punishments.HandleAddNote)
			})
		})

		r.Get("/punishment-types", types.HandleListTypes)
		r.Get("/punishment-types/{ordinal}", types.HandleGetType)

		r.Route("/admin", func(r chi.Router) {
			r.Put("/punishment-types/{ordinal}", types.HandleUpsertType)
			r.Get("/settings/thresholds", settingsHandler.HandleGetThresholds)
			r.Put("/settings/thresholds", settingsHandler.HandleUpdateThresholds)
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
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

// unloggedPaths are probed constantly and would drown the request log
var unloggedPaths = []string{"/healthz", "/readyz", "/metrics"}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range unloggedPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// Start serves until Stop is called
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
