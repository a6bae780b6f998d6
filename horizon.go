// Package horizon computes when the Sun or the Moon crosses a target altitude
// as seen from a point on Earth: rise and set, twilight, golden and blue hour,
// and every crossing inside an arbitrary window.
//
// A Finder samples the body's altitude from an ephemeris model, brackets each
// sign change of altitude minus target and refines it by bisection to
// sub-second precision. Bodies that never rise, never set, or cross several
// times in one window are reported as such rather than as errors.
//
// Package-level functions use a shared Finder backed by the default "meeus"
// ephemeris.
package horizon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thurmanmarka/horizon/internal/ephemeris"
	"github.com/thurmanmarka/horizon/internal/solver"
)

// Body represents a celestial body.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string { return ephemeris.Body(b).String() }

// ParseBody accepts "sun" or "moon", case-insensitively.
func ParseBody(s string) (Body, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sun":
		return Sun, nil
	case "moon":
		return Moon, nil
	default:
		return 0, fmt.Errorf("%w: %q (use sun or moon)", ErrUnknownBody, s)
	}
}

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat       float64 // degrees, north positive
	Lon       float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
	Elevation float64 // meters above sea level
}

// Validate checks that the coordinates are on the globe.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90 degrees, got %v", ErrInvalidInput, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180 degrees, got %v", ErrInvalidInput, c.Lon)
	}
	return nil
}

func (c Coordinates) observer() ephemeris.Observer {
	return ephemeris.Observer{Lat: c.Lat, Lon: c.Lon, Elevation: c.Elevation}
}

// Direction says whether a crossing is a rise or a set.
type Direction = solver.Direction

const (
	Rising  = solver.Rising
	Setting = solver.Setting
)

// Crossing is one instant at which the body's altitude equals the target.
type Crossing struct {
	Time      time.Time
	Direction Direction
}

// Status explains why an event is or is not present in a RiseSet.
type Status = solver.Status

const (
	StatusCrossed       = solver.Crossed
	StatusAlwaysAbove   = solver.AlwaysAbove
	StatusAlwaysBelow   = solver.AlwaysBelow
	StatusOutsideWindow = solver.OutsideWindow
)

// RiseSet holds rise and set times of a body on a given date. Rise and Set
// are only meaningful when HasRise and HasSet are true; RiseStatus and
// SetStatus say why an event is missing.
type RiseSet struct {
	Rise       time.Time
	Set        time.Time
	HasRise    bool
	HasSet     bool
	RiseStatus Status
	SetStatus  Status
}

var (
	// ErrNoRiseNoSet is returned when a body does not rise or set on that date at that location.
	ErrNoRiseNoSet = errors.New("body does not rise or set on this date")

	// ErrUnknownBody is returned for a body other than Sun or Moon.
	ErrUnknownBody = errors.New("unknown body")

	// ErrInvalidInput reports malformed search parameters or coordinates.
	ErrInvalidInput = solver.ErrInvalidInput

	// ErrInvalidBracket reports a bracket that does not straddle the target.
	ErrInvalidBracket = solver.ErrInvalidBracket
)

func (b Body) eph() ephemeris.Body { return ephemeris.Body(b) }
