// Package api serves horizon searches over HTTP as JSON.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/thurmanmarka/horizon"
	"github.com/thurmanmarka/horizon/internal/logging"
	"github.com/thurmanmarka/horizon/internal/metrics"
)

// Options bound what a single request may ask for.
type Options struct {
	MaxWindow  time.Duration // longest /v1/crossings window
	MaxFrames  int           // most /v1/observations frames
	Refraction float64       // degrees, for target=lunar
}

// Server wires HTTP routes to a Finder.
type Server struct {
	finder  *horizon.Finder
	opts    Options
	log     *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewServer creates an API server. rec may be nil, in which case no
// request metrics are recorded and /metrics is not served.
func NewServer(f *horizon.Finder, opts Options, log *slog.Logger, rec *metrics.Recorder) *Server {
	if log == nil {
		log = logging.Discard()
	}
	if opts.MaxWindow <= 0 {
		opts.MaxWindow = 31 * 24 * time.Hour
	}
	if opts.MaxFrames < 2 {
		opts.MaxFrames = 1440
	}
	return &Server{finder: f, opts: opts, log: log, metrics: rec, now: time.Now}
}

// Register attaches all routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/riseset", s.handleRiseSet)
	mux.HandleFunc("GET /v1/crossings", s.handleCrossings)
	mux.HandleFunc("GET /v1/moon/events", s.handleMoonEvents)
	mux.HandleFunc("GET /v1/twilight", s.handleTwilight)
	mux.HandleFunc("GET /v1/position", s.handlePosition)
	mux.HandleFunc("GET /v1/observations", s.handleObservations)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// Handler returns the routes wrapped in the middleware chain:
// request ID -> tracing -> access log -> metrics -> mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)

	var h http.Handler = mux
	if s.metrics != nil {
		h = s.metrics.Middleware(h)
	}
	h = loggingMiddleware(s.log)(h)
	h = tracingMiddleware(h)
	h = requestIDMiddleware(s.log)(h)
	return h
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log := logging.FromContext(r.Context(), s.log)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
	} else {
		log.DebugContext(r.Context(), "bad request", slog.String("error", err.Error()))
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
}
