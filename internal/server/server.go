// Package server exposes map generation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeongen/internal/presets"
	"github.com/samdwyer/dungeongen/internal/raster"
	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/world"
)

const (
	// DefaultTimeout bounds a single generation request.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxCandidates caps the candidates query parameter.
	DefaultMaxCandidates = 2000
)

// Defaults apply to requests that leave a setting out.
type Defaults struct {
	Preset   string
	MaxSteps int
	// Seed returns the seed for requests without one. Nil means time-based.
	Seed func() int64
	// Timeout bounds each generation; zero means DefaultTimeout.
	Timeout time.Duration
	// MaxCandidates rejects larger candidate pools; zero means
	// DefaultMaxCandidates.
	MaxCandidates int
}

// Server handles generation requests.
type Server struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	registry  *presets.Registry
	defaults  Defaults
	generator *world.Generator
	mux       *http.ServeMux
}

// New creates the HTTP handler.
func New(logger *slog.Logger, registry *presets.Registry, defaults Defaults) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if defaults.Seed == nil {
		defaults.Seed = func() int64 { return time.Now().UnixNano() }
	}
	if defaults.Timeout <= 0 {
		defaults.Timeout = DefaultTimeout
	}
	if defaults.MaxCandidates <= 0 {
		defaults.MaxCandidates = DefaultMaxCandidates
	}
	s := &Server{
		logger:    logger,
		tracer:    telemetry.Tracer("server"),
		registry:  registry,
		defaults:  defaults,
		generator: world.New(world.WithLogger(logger)),
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /gen", s.handleGen)
	s.mux.HandleFunc("GET /presets", s.handlePresets)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// WithTracer replaces the request tracer.
func (s *Server) WithTracer(t trace.Tracer) *Server {
	s.tracer = t
	s.generator = world.New(world.WithLogger(s.logger), world.WithTracer(t))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

func (s *Server) handleGen(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.defaults.Timeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, "http.gen")
	defer span.End()

	p, err := s.params(r.URL.Query())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, http.StatusBadRequest, err)
		return
	}
	span.SetAttributes(attribute.Int64("dungeon.seed", p.Seed))

	m, err := s.generator.Generate(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeError(w, statusFor(err), err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(m.String()))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type presetsResponse struct {
	Default string           `json:"default"`
	Presets []presets.Preset `json:"presets"`
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, presetsResponse{
		Default: s.registry.Default().Name,
		Presets: s.registry.All(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// params resolves the preset and applies query overrides on top of it.
func (s *Server) params(q url.Values) (world.Params, error) {
	name := q.Get("preset")
	if name == "" {
		name = s.defaults.Preset
	}
	preset, err := s.registry.Get(name)
	if err != nil {
		return world.Params{}, err
	}

	seed := s.defaults.Seed()
	if v := q.Get("seed"); v != "" {
		if seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return world.Params{}, fmt.Errorf("seed: %w", err)
		}
	}
	p := preset.Params(seed)
	p.MaxSteps = s.defaults.MaxSteps

	if err := intParam(q, "candidates", &p.Candidates); err != nil {
		return p, err
	}
	if p.Candidates > s.defaults.MaxCandidates {
		return p, fmt.Errorf("candidates: %d exceeds the limit of %d", p.Candidates, s.defaults.MaxCandidates)
	}
	if err := intParam(q, "count", &p.Rooms.Count); err != nil {
		return p, err
	}
	if err := floatParam(q, "radius", &p.Radius); err != nil {
		return p, err
	}
	if err := floatParam(q, "increment", &p.Increment); err != nil {
		return p, err
	}
	if v := q.Get("diagonal"); v != "" {
		if p.Diagonal, err = raster.ParseDiagonal(v); err != nil {
			return p, err
		}
	}
	return p, nil
}

func intParam(q url.Values, key string, dst *int) error {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func floatParam(q url.Values, key string, dst *float64) error {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

// statusFor maps generation errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case world.IsParamError(err):
		return http.StatusBadRequest
	case world.IsInvariantViolation(err):
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
