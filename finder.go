package horizon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/thurmanmarka/horizon/internal/ephemeris"
	"github.com/thurmanmarka/horizon/internal/solver"
)

// Observer is notified after every search a Finder runs.
type Observer interface {
	ObserveSearch(op string, body Body, stats SearchStats)
}

// SearchStats summarises one search.
type SearchStats struct {
	Evaluations int // altitude evaluations
	Iterations  int // bisection steps
	Samples     int // coarse samples
	Events      int // crossings found
	Duration    time.Duration
	Err         error
}

// Defaults are the sampling parameters used when a call passes no
// SearchOption.
type Defaults struct {
	RiseSetStep  time.Duration // default 6m
	CrossingStep time.Duration // default 5m
	Tolerance    time.Duration // default 1s
}

// Finder runs altitude-crossing searches against one ephemeris model. It is
// immutable once built and safe for concurrent use.
type Finder struct {
	model    string
	provider ephemeris.Provider
	log      *slog.Logger
	observer Observer
	defaults Defaults
}

// Option configures a Finder.
type Option func(*Finder)

// WithModel selects the ephemeris model: "meeus" (default) or "approx".
func WithModel(name string) Option {
	return func(f *Finder) { f.model = name }
}

// WithLogger sets the logger searches report to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(f *Finder) {
		if l != nil {
			f.log = l
		}
	}
}

// WithObserver registers an Observer for search statistics.
func WithObserver(o Observer) Option {
	return func(f *Finder) { f.observer = o }
}

// WithDefaults overrides the default sampling parameters. Zero fields keep
// the built-in values.
func WithDefaults(d Defaults) Option {
	return func(f *Finder) {
		if d.RiseSetStep != 0 {
			f.defaults.RiseSetStep = d.RiseSetStep
		}
		if d.CrossingStep != 0 {
			f.defaults.CrossingStep = d.CrossingStep
		}
		if d.Tolerance != 0 {
			f.defaults.Tolerance = d.Tolerance
		}
	}
}

// New builds a Finder.
func New(opts ...Option) (*Finder, error) {
	f := &Finder{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults: Defaults{
			RiseSetStep:  solver.DefaultDailyStep,
			CrossingStep: solver.DefaultCrossingStep,
			Tolerance:    solver.DefaultTolerance,
		},
	}
	for _, opt := range opts {
		opt(f)
	}

	p, err := ephemeris.New(ephemeris.Config{Model: f.model})
	if err != nil {
		return nil, fmt.Errorf("horizon: %w", err)
	}
	f.provider = p
	f.model = p.Name()
	return f, nil
}

// Model returns the name of the ephemeris model in use.
func (f *Finder) Model() string { return f.model }

// SearchOption adjusts a single search.
type SearchOption func(*search)

type search struct {
	step      time.Duration
	tolerance time.Duration
}

// WithStep sets the coarse sampling interval.
func WithStep(d time.Duration) SearchOption {
	return func(s *search) { s.step = d }
}

// WithTolerance sets the width to which each bracket is narrowed.
func WithTolerance(d time.Duration) SearchOption {
	return func(s *search) { s.tolerance = d }
}

func (f *Finder) searchOptions(step time.Duration, opts []SearchOption) search {
	s := search{step: step, tolerance: f.defaults.Tolerance}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// bodySource binds a provider to a body and observer.
type bodySource struct {
	p    ephemeris.Provider
	body ephemeris.Body
	obs  ephemeris.Observer
}

func (s bodySource) Altitude(t time.Time) float64 {
	return s.p.Altitude(s.body, s.obs, t)
}

func (s bodySource) Altitudes(ts []time.Time) []float64 {
	return s.p.Altitudes(s.body, s.obs, ts)
}

func (f *Finder) source(body Body, loc Coordinates) bodySource {
	return bodySource{p: f.provider, body: body.eph(), obs: loc.observer()}
}

func threshold(t Target) solver.Threshold {
	return t.AltitudeAt
}

func (f *Finder) validate(body Body, loc Coordinates, target Target) error {
	if !body.eph().Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownBody, body)
	}
	if target == nil {
		return fmt.Errorf("%w: nil target", ErrInvalidInput)
	}
	return loc.Validate()
}

func (f *Finder) observe(op string, body Body, started time.Time, stats solver.Stats, events int, err error) {
	ss := SearchStats{
		Evaluations: stats.Evaluations,
		Iterations:  stats.Iterations,
		Samples:     stats.Samples,
		Events:      events,
		Duration:    time.Since(started),
		Err:         err,
	}
	if f.observer != nil {
		f.observer.ObserveSearch(op, body, ss)
	}
	if err != nil {
		f.log.LogAttrs(context.Background(), slog.LevelDebug, "search failed",
			slog.String("op", op), slog.String("body", body.String()), slog.String("error", err.Error()))
		return
	}
	f.log.LogAttrs(context.Background(), slog.LevelDebug, "search complete",
		slog.String("op", op),
		slog.String("body", body.String()),
		slog.String("model", f.model),
		slog.Int("samples", ss.Samples),
		slog.Int("evaluations", ss.Evaluations),
		slog.Int("iterations", ss.Iterations),
		slog.Int("events", events),
		slog.Duration("elapsed", ss.Duration),
	)
}
