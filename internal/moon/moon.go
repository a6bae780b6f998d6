// Package moon is a low-precision analytic model of the Moon, used when the
// caller selects the "approx" ephemeris.
package moon

import (
	"math"
	"time"

	"github.com/thurmanmarka/horizon/internal/timeutil"
)

const (
	// equatorialRadiusKm is the Earth's equatorial radius.
	equatorialRadiusKm = 6378.14
	// flattening of the reference ellipsoid (b/a = 1 - f).
	flattening = 1 / 298.257
)

// Horizontal returns the Moon's topocentric geometric altitude and azimuth
// (degrees) for an observer at (lat, lon, elevationM). The geocentric
// coordinates are returned alongside since callers usually want the distance.
func Horizontal(lat, lon, elevationM float64, t time.Time) (alt, az float64, eq Equatorial) {
	eq = GeocentricEquatorialApprox(t)
	lst := timeutil.LocalSidereal(t, lon)

	raTopo, decTopo := topocentric(eq, lat, elevationM, lst)
	alt, az = timeutil.Horizontal(raTopo, decTopo, lat, lst)
	return alt, az, eq
}

// Altitude returns the Moon's topocentric geometric altitude in degrees.
func Altitude(lat, lon, elevationM float64, t time.Time) float64 {
	alt, _, _ := Horizontal(lat, lon, elevationM, t)
	return alt
}

// topocentric applies diurnal parallax to a geocentric position (Meeus ch. 40).
func topocentric(eq Equatorial, lat, elevationM, lstDeg float64) (raDeg, decDeg float64) {
	rhoSin, rhoCos := parallaxConstants(lat, elevationM)

	sinPi := math.Sin(horizontalParallax(eq.Distance))
	dec := timeutil.Deg2Rad(eq.Dec)
	H := timeutil.WrapPi(timeutil.Deg2Rad(lstDeg - eq.RA))

	cosDec := math.Cos(dec)
	den := cosDec - rhoCos*sinPi*math.Cos(H)
	dRA := math.Atan2(-rhoCos*sinPi*math.Sin(H), den)

	decTopo := math.Atan2((math.Sin(dec)-rhoSin*sinPi)*math.Cos(dRA), den)

	return timeutil.Normalize360(eq.RA + timeutil.Rad2Deg(dRA)), timeutil.Rad2Deg(decTopo)
}

// parallaxConstants returns ρ sin φ' and ρ cos φ' for a geodetic latitude and
// height above sea level.
func parallaxConstants(lat, elevationM float64) (rhoSin, rhoCos float64) {
	phi := timeutil.Deg2Rad(lat)
	u := math.Atan((1 - flattening) * math.Tan(phi))
	h := elevationM / (equatorialRadiusKm * 1000)
	rhoSin = (1-flattening)*math.Sin(u) + h*math.Sin(phi)
	rhoCos = math.Cos(u) + h*math.Cos(phi)
	return rhoSin, rhoCos
}

// horizontalParallax returns the equatorial horizontal parallax in radians.
func horizontalParallax(distanceKm float64) float64 {
	if distanceKm <= equatorialRadiusKm {
		return timeutil.Deg2Rad(1.0)
	}
	return math.Asin(equatorialRadiusKm / distanceKm)
}
