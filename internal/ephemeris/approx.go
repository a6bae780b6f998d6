package ephemeris

import (
	"math"
	"time"

	"github.com/thurmanmarka/horizon/internal/moon"
	"github.com/thurmanmarka/horizon/internal/sun"
	"github.com/thurmanmarka/horizon/internal/timeutil"
)

// Approx is a fast low-precision model: truncated analytic series for both
// bodies and mean sidereal time. Rise/set times are good to a minute or two.
type Approx struct{}

func (Approx) Name() string { return ModelApprox }

func (Approx) Altitude(body Body, obs Observer, t time.Time) float64 {
	switch body {
	case Sun:
		return sun.Altitude(obs.Lat, obs.Lon, t)
	case Moon:
		return moon.Altitude(obs.Lat, obs.Lon, obs.Elevation, t)
	default:
		return math.NaN()
	}
}

func (a Approx) Altitudes(body Body, obs Observer, ts []time.Time) []float64 {
	return altitudes(a, body, obs, ts)
}

func (Approx) Position(body Body, obs Observer, t time.Time) Position {
	var p Position
	switch body {
	case Sun:
		alt, az, eq := sun.Horizontal(obs.Lat, obs.Lon, t)
		p = Position{Altitude: alt, Azimuth: az, RA: eq.RA, Dec: eq.Dec, DistanceKm: eq.Distance}
	case Moon:
		alt, az, eq := moon.Horizontal(obs.Lat, obs.Lon, obs.Elevation, t)
		p = Position{Altitude: alt, Azimuth: az, RA: eq.RA, Dec: eq.Dec, DistanceKm: eq.Distance}
	default:
		return Position{Altitude: math.NaN(), ApparentAltitude: math.NaN()}
	}
	p.ApparentAltitude = p.Altitude + timeutil.ApproxRefraction(p.Altitude)
	return p
}
