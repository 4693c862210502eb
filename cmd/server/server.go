package main

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"

	"github.com/cours-de-latin/reducer/config"
)

var tracer = otel.Tracer("github.com/cours-de-latin/reducer/cmd/server")

// requestIDHeader carries the request id in both directions.
const requestIDHeader = "X-Request-ID"

type ctxKey struct{}

// server serves the reducer and the lexicon over HTTP.
type server struct {
	rt      *config.Runtime
	logger  *slog.Logger
	metrics *metrics
	maxBody int64
}

func newServer(rt *config.Runtime, cfg config.ServerConfig, logger *slog.Logger) *server {
	return &server{
		rt:      rt,
		logger:  logger,
		metrics: newMetrics(rt.Cache),
		maxBody: cfg.MaxBodyBytes,
	}
}

// handler returns the routed, CORS-wrapped handler.
func (s *server) handler(allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(s.instrument)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/reduce", s.handleReduce).Methods(http.MethodPost)
	api.HandleFunc("/meanings", s.handleMeanings).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).
		Methods(http.MethodGet)

	// Subrouters do not inherit these handlers from their parent.
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.writeError(w, req, http.StatusMethodNotAllowed, "method not allowed")
	})
	notFound := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.writeError(w, req, http.StatusNotFound, "not found")
	})
	for _, rt := range []*mux.Router{r, api} {
		rt.MethodNotAllowedHandler = methodNotAllowed
		rt.NotFoundHandler = notFound
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(r)
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// instrument tags the request with an id and a request logger, then
// logs and counts it.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		logger := s.logger.With(slog.String("request_id", id))
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, logger))

		route := r.URL.Path
		if cr := mux.CurrentRoute(r); cr != nil {
			if tmpl, err := cr.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.requestLatency.WithLabelValues(route).Observe(elapsed.Seconds())
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", elapsed))
	})
}

// requestLogger returns the logger set by instrument.
func (s *server) requestLogger(r *http.Request) *slog.Logger {
	if l, ok := r.Context().Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return s.logger
}
