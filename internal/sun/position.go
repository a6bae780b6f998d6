package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/horizon/internal/timeutil"
)

// auKm is one astronomical unit in kilometres.
const auKm = 149597870.7

// Equatorial holds geocentric equatorial coordinates of the Sun.
type Equatorial struct {
	RA       float64 // right ascension, degrees [0, 360)
	Dec      float64 // declination, degrees
	Distance float64 // km
}

// GeocentricEquatorialApprox returns a low-precision geocentric RA/Dec and
// distance for the Sun at t, good to about an arcminute.
//
//	g   = mean anomaly of the Sun
//	q   = mean longitude of the Sun
//	L   = ecliptic longitude of the Sun
//	eps = obliquity of the ecliptic
func GeocentricEquatorialApprox(t time.Time) Equatorial {
	d := timeutil.DaysSinceJ2000(t)

	g := timeutil.Deg2Rad(timeutil.Normalize360(357.529 + 0.98560028*d))
	q := timeutil.Deg2Rad(timeutil.Normalize360(280.459 + 0.98564736*d))

	// Equation of centre.
	L := q + timeutil.Deg2Rad(1.915)*math.Sin(g) + timeutil.Deg2Rad(0.020)*math.Sin(2*g)
	R := 1.00014 - 0.01671*math.Cos(g) - 0.00014*math.Cos(2*g)

	eps := timeutil.Deg2Rad(23.439 - 0.00000036*d)

	ra := math.Atan2(math.Cos(eps)*math.Sin(L), math.Cos(L))
	dec := math.Asin(math.Sin(eps) * math.Sin(L))

	return Equatorial{
		RA:       timeutil.Normalize360(timeutil.Rad2Deg(ra)),
		Dec:      timeutil.Rad2Deg(dec),
		Distance: R * auKm,
	}
}
