package horizon

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/horizon/internal/timeutil"
)

// Position is where a body appears to an observer at one instant.
type Position struct {
	Time             time.Time
	Altitude         float64 // geometric, degrees (topocentric for the Moon)
	ApparentAltitude float64 // with standard refraction
	Azimuth          float64 // degrees, 0=N 90=E 180=S 270=W
	RA               float64 // geocentric right ascension, degrees
	Dec              float64 // geocentric declination, degrees
	DistanceKm       float64
	JulianDate       float64 // UT
	Visible          bool    // geometric altitude above 0
}

// Position returns the position of body seen from loc at t.
func (f *Finder) Position(body Body, loc Coordinates, t time.Time) (Position, error) {
	if err := f.validate(body, loc, Degrees(0)); err != nil {
		return Position{}, err
	}
	p := f.provider.Position(body.eph(), loc.observer(), t)
	return Position{
		Time:             t,
		Altitude:         p.Altitude,
		ApparentAltitude: p.ApparentAltitude,
		Azimuth:          p.Azimuth,
		RA:               p.RA,
		Dec:              p.Dec,
		DistanceKm:       p.DistanceKm,
		JulianDate:       timeutil.JulianDay(t),
		Visible:          p.Altitude > 0,
	}, nil
}

// Observation is one frame of Observe.
type Observation struct {
	Time time.Time
	Sun  Position
	Moon Position
}

// Observe returns frames evenly spaced positions of the Sun and the Moon
// from start to end inclusive. frames must be at least 2.
func (f *Finder) Observe(loc Coordinates, start, end time.Time, frames int) ([]Observation, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if frames < 2 {
		return nil, fmt.Errorf("%w: frame count must be at least 2, got %d", ErrInvalidInput, frames)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	// Same overflow-safe spacing as the sampler.
	window := end.Sub(start)
	d := time.Duration(frames - 1)
	q, r := window/d, window%d

	out := make([]Observation, frames)
	for i := range out {
		k := time.Duration(i)
		t := start.Add(q*k + r*k/d)
		sun, err := f.Position(Sun, loc, t)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		moon, err := f.Position(Moon, loc, t)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		out[i] = Observation{Time: t, Sun: sun, Moon: moon}
	}
	return out, nil
}
