package moon

import (
	"math"
	"time"

	"github.com/thurmanmarka/horizon/internal/timeutil"
)

// Equatorial holds geocentric equatorial coordinates of the Moon.
type Equatorial struct {
	RA       float64 // right ascension, degrees [0, 360)
	Dec      float64 // declination, degrees
	Distance float64 // centre-to-centre distance, km
}

// GeocentricEquatorialApprox returns the Moon's geocentric RA/Dec and distance
// at t from the dominant periodic terms of the lunar theory. Positions are
// good to a few arcminutes, distance to a few hundred km.
//
//	L'  = mean longitude of the Moon
//	M   = mean anomaly of the Sun
//	Mm  = mean anomaly of the Moon
//	D   = mean elongation of the Moon from the Sun
//	F   = argument of latitude of the Moon
func GeocentricEquatorialApprox(t time.Time) Equatorial {
	d := timeutil.DaysSinceJ2000(t)

	// Fundamental arguments, deg/day.
	Lprime := 218.3164477 + 13.17639648*d // mean longitude of the Moon
	M := 357.5291092 + 0.98560028*d       // mean anomaly of the Sun
	Mm := 134.9633964 + 13.06499295*d     // mean anomaly of the Moon
	D := 297.8501921 + 12.19074912*d      // mean elongation from the Sun
	F := 93.2720950 + 13.22935024*d       // argument of latitude

	Lprime = timeutil.Normalize360(Lprime)
	M = timeutil.Normalize360(M)
	Mm = timeutil.Normalize360(Mm)
	D = timeutil.Normalize360(D)
	F = timeutil.Normalize360(F)

	Lr := timeutil.Deg2Rad(Lprime)
	Mr := timeutil.Deg2Rad(M)
	Mmr := timeutil.Deg2Rad(Mm)
	Dr := timeutil.Deg2Rad(D)
	Fr := timeutil.Deg2Rad(F)

	// Ecliptic longitude λ.
	lon := Lr +
		timeutil.Deg2Rad(6.289)*math.Sin(Mmr) +
		timeutil.Deg2Rad(1.274)*math.Sin(2*Dr-Mmr) +
		timeutil.Deg2Rad(0.658)*math.Sin(2*Dr) +
		timeutil.Deg2Rad(0.214)*math.Sin(2*Mmr) -
		timeutil.Deg2Rad(0.186)*math.Sin(Mr) -
		timeutil.Deg2Rad(0.114)*math.Sin(2*Fr)

	// Ecliptic latitude β.
	lat := timeutil.Deg2Rad(5.128)*math.Sin(Fr) +
		timeutil.Deg2Rad(0.280)*math.Sin(Mmr+Fr) +
		timeutil.Deg2Rad(0.277)*math.Sin(Mmr-Fr) +
		timeutil.Deg2Rad(0.173)*math.Sin(2*Dr-Fr)

	// Distance Δ in km.
	dist := 385000.56 -
		20905.0*math.Cos(Mmr) -
		3699.0*math.Cos(2*Dr-Mmr) -
		2956.0*math.Cos(2*Dr) -
		570.0*math.Cos(2*Mmr) -
		246.0*math.Cos(2*Dr+Mmr)

	// Mean obliquity of the ecliptic ε.
	eps := timeutil.Deg2Rad(23.439291 - 0.0000004*d)

	x := math.Cos(lat) * math.Cos(lon)
	y := math.Cos(lat) * math.Sin(lon)
	z := math.Sin(lat)

	xEq := x
	yEq := y*math.Cos(eps) - z*math.Sin(eps)
	zEq := y*math.Sin(eps) + z*math.Cos(eps)

	return Equatorial{
		RA:       timeutil.Normalize360(timeutil.Rad2Deg(math.Atan2(yEq, xEq))),
		Dec:      timeutil.Rad2Deg(math.Asin(zEq)),
		Distance: dist,
	}
}
