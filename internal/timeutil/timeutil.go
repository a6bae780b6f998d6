package timeutil

import (
	"math"
	"time"

	"github.com/joshuaferrara/go-satellite"
)

// j2000JD is the Julian day of the J2000.0 epoch (2000-01-01 12:00 TT).
const j2000JD = 2451545.0

// JulianDay returns the Julian day of t (UTC). go-satellite only resolves whole
// seconds, the sub-second remainder is added here.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()
	jd := satellite.JDay(year, int(month), day, u.Hour(), u.Minute(), u.Second())
	return jd + float64(u.Nanosecond())/(86400.0*1e9)
}

// DaysSinceJ2000 returns the number of (UTC) days since the J2000.0 epoch.
//
// This is an approximation suitable for low/medium-precision astronomy; the
// difference between UT and TT is ignored.
func DaysSinceJ2000(t time.Time) float64 {
	return JulianDay(t) - j2000JD
}

// JulianCenturies returns centuries since J2000.0.
func JulianCenturies(t time.Time) float64 {
	return DaysSinceJ2000(t) / 36525.0
}

// GreenwichSidereal returns Greenwich mean sidereal time at t in degrees [0, 360).
func GreenwichSidereal(t time.Time) float64 {
	return Normalize360(Rad2Deg(satellite.ThetaG_JD(JulianDay(t))))
}

// LocalSidereal returns local mean sidereal time in degrees for an
// east-positive longitude.
func LocalSidereal(t time.Time, lonDeg float64) float64 {
	return Normalize360(GreenwichSidereal(t) + lonDeg)
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// WrapPi folds an angle in radians into (-π, π].
func WrapPi(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r > math.Pi {
		r -= 2 * math.Pi
	} else if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// ApproxRefraction returns an approximation of atmospheric refraction (in
// degrees) for a geometric altitude altDeg under standard conditions.
//
// Positive return means "add this to the geometric altitude to get apparent
// altitude". Saemundsson-style formula:
//
//	R (arcmin) ≈ 1.02 / tan( (alt + 10.3 / (alt + 5.11)) in degrees )
func ApproxRefraction(altDeg float64) float64 {
	// Below -1° refraction isn't meaningfully defined for our purposes.
	if altDeg < -1.0 || altDeg > 90 {
		return 0
	}

	alt := altDeg
	if alt < -0.5 {
		alt = -0.5
	}

	t := math.Tan(Deg2Rad(alt + 10.3/(alt+5.11)))
	if t == 0 {
		return 0
	}

	arcmin := 1.02 / t
	return arcmin / 60.0
}

// Horizontal converts equatorial coordinates (degrees) to altitude and azimuth
// (degrees, azimuth from north through east) for an observer at latDeg with
// local sidereal time lstDeg.
func Horizontal(raDeg, decDeg, latDeg, lstDeg float64) (altDeg, azDeg float64) {
	H := WrapPi(Deg2Rad(lstDeg - raDeg))
	dec := Deg2Rad(decDeg)
	lat := Deg2Rad(latDeg)

	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(H)
	alt := math.Asin(math.Max(-1, math.Min(1, sinAlt)))

	az := math.Atan2(-math.Sin(H)*math.Cos(dec), math.Cos(lat)*math.Sin(dec)-math.Sin(lat)*math.Cos(dec)*math.Cos(H))
	return Rad2Deg(alt), Normalize360(Rad2Deg(az))
}
