// Package ephemeris supplies body positions to the crossing solver. Each model
// is a Provider; the solver never looks past this interface.
package ephemeris

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Body identifies a solar-system body the providers know about.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return fmt.Sprintf("body(%d)", int(b))
	}
}

// Valid reports whether b is a body the providers can compute.
func (b Body) Valid() bool { return b == Sun || b == Moon }

// Observer is a point on the Earth's surface.
type Observer struct {
	Lat       float64 // degrees, north positive
	Lon       float64 // degrees, east positive
	Elevation float64 // meters above sea level
}

// Position describes a body as seen by an observer at one instant.
type Position struct {
	Altitude         float64 // geometric altitude, degrees (topocentric for the Moon)
	ApparentAltitude float64 // Altitude plus standard refraction
	Azimuth          float64 // degrees from north through east
	RA               float64 // geocentric right ascension, degrees
	Dec              float64 // geocentric declination, degrees
	DistanceKm       float64 // geocentric distance
}

// Provider computes body positions. Altitudes are geometric: refraction is
// never included, callers fold it into their target altitude.
type Provider interface {
	// Name identifies the model, e.g. "meeus".
	Name() string
	// Altitude returns the altitude in degrees of body at t.
	Altitude(body Body, obs Observer, t time.Time) float64
	// Altitudes evaluates Altitude for every element of ts and returns a
	// slice of the same length.
	Altitudes(body Body, obs Observer, ts []time.Time) []float64
	// Position returns the full position of body at t.
	Position(body Body, obs Observer, t time.Time) Position
}

const (
	ModelMeeus  = "meeus"
	ModelApprox = "approx"
)

var (
	// ErrUnknownModel is returned by New for an unrecognised model name.
	ErrUnknownModel = errors.New("unknown ephemeris model")
)

// Config selects an ephemeris model.
type Config struct {
	Model string // "meeus" (default) or "approx"
}

// New returns the provider named by cfg.Model.
func New(cfg Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Model)) {
	case "", ModelMeeus:
		return Meeus{}, nil
	case ModelApprox:
		return Approx{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, cfg.Model)
	}
}

// Models lists the names New accepts.
func Models() []string { return []string{ModelMeeus, ModelApprox} }

func altitudes(p Provider, body Body, obs Observer, ts []time.Time) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = p.Altitude(body, obs, t)
	}
	return out
}
