// Package config defines the horizon binaries' configuration and how it is
// layered from defaults, an optional YAML file and the environment.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"cloudeng.io/errors"

	"github.com/thurmanmarka/horizon/internal/logging"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Model names the ephemeris: meeus or approx.
	Model string `koanf:"model"`

	// RiseSetStep and CrossingStep are the coarse sampling intervals of the
	// daily and the multi-crossing searches.
	RiseSetStep  time.Duration `koanf:"riseset_step"`
	CrossingStep time.Duration `koanf:"crossing_step"`

	// Tolerance is the bracket width at which refinement stops.
	Tolerance time.Duration `koanf:"tolerance"`

	// Refraction in degrees, used for the lunar limb target.
	Refraction float64 `koanf:"refraction"`

	// MaxWindow caps the span of a single crossings request.
	MaxWindow time.Duration `koanf:"max_window"`

	// MaxFrames caps GET /v1/observations?frames.
	MaxFrames int `koanf:"max_frames"`

	// Workers bounds concurrent searches in batch jobs.
	Workers int `koanf:"workers"`

	TracingEnabled     bool    `koanf:"tracing_enabled"`
	TracingExporter    string  `koanf:"tracing_exporter"`
	TracingEndpoint    string  `koanf:"tracing_endpoint"`
	TracingSampleRatio float64 `koanf:"tracing_sample_ratio"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":8080",
		Model:              "meeus",
		RiseSetStep:        6 * time.Minute,
		CrossingStep:       5 * time.Minute,
		Tolerance:          time.Second,
		Refraction:         0.566,
		MaxWindow:          31 * 24 * time.Hour,
		MaxFrames:          1440,
		Workers:            runtime.NumCPU(),
		TracingExporter:    "stdout",
		TracingSampleRatio: 1,
	}
}

// Validate reports every invalid setting at once, wrapped in
// ErrInvalidConfig.
func (c *Config) Validate() error {
	errs := &errors.M{}
	if !logging.ValidLevel(c.LogLevel) {
		errs.Append(fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs.Append(fmt.Errorf("log_format: must be text or json, got %q", c.LogFormat))
	}
	if c.Addr == "" {
		errs.Append(errors.New("addr: must not be empty"))
	}
	switch strings.ToLower(strings.TrimSpace(c.Model)) {
	case "", "meeus", "approx":
	default:
		errs.Append(fmt.Errorf("model: must be meeus or approx, got %q", c.Model))
	}
	if c.RiseSetStep <= 0 {
		errs.Append(fmt.Errorf("riseset_step: must be positive, got %v", c.RiseSetStep))
	}
	if c.CrossingStep <= 0 {
		errs.Append(fmt.Errorf("crossing_step: must be positive, got %v", c.CrossingStep))
	}
	if c.Tolerance <= 0 {
		errs.Append(fmt.Errorf("tolerance: must be positive, got %v", c.Tolerance))
	}
	if c.Refraction < 0 || c.Refraction > 2 {
		errs.Append(fmt.Errorf("refraction: must be within [0, 2] degrees, got %v", c.Refraction))
	}
	if c.MaxWindow < 24*time.Hour {
		errs.Append(fmt.Errorf("max_window: must be at least 24h, got %v", c.MaxWindow))
	}
	if c.MaxFrames < 2 {
		errs.Append(fmt.Errorf("max_frames: must be at least 2, got %d", c.MaxFrames))
	}
	if c.Workers < 1 {
		errs.Append(fmt.Errorf("workers: must be at least 1, got %d", c.Workers))
	}
	if c.TracingEnabled {
		switch strings.ToLower(c.TracingExporter) {
		case "stdout", "otlp", "otlpgrpc":
		default:
			errs.Append(fmt.Errorf("tracing_exporter: unsupported exporter %q", c.TracingExporter))
		}
	}
	if c.TracingSampleRatio < 0 || c.TracingSampleRatio > 1 {
		errs.Append(fmt.Errorf("tracing_sample_ratio: must be within [0, 1], got %v", c.TracingSampleRatio))
	}
	if err := errs.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
