// Package sun is a low-precision analytic model of the Sun's apparent path,
// used when the caller selects the "approx" ephemeris.
package sun

import (
	"time"

	"github.com/thurmanmarka/horizon/internal/timeutil"
)

// Horizontal returns the Sun's geometric altitude and azimuth (degrees) for
// an observer at (lat, lon) at t. Refraction is not applied; solar parallax
// (under 9 arcseconds) is ignored.
func Horizontal(lat, lon float64, t time.Time) (alt, az float64, eq Equatorial) {
	eq = GeocentricEquatorialApprox(t)
	lst := timeutil.LocalSidereal(t, lon)
	alt, az = timeutil.Horizontal(eq.RA, eq.Dec, lat, lst)
	return alt, az, eq
}

// Altitude returns the Sun's geometric altitude in degrees.
func Altitude(lat, lon float64, t time.Time) float64 {
	alt, _, _ := Horizontal(lat, lon, t)
	return alt
}
