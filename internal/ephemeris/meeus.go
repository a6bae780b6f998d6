package ephemeris

import (
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/coord"
	"github.com/mooncaker816/learnmeeus/v3/globe"
	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/moonposition"
	"github.com/mooncaker816/learnmeeus/v3/nutation"
	"github.com/mooncaker816/learnmeeus/v3/parallax"
	"github.com/mooncaker816/learnmeeus/v3/sidereal"
	"github.com/mooncaker816/learnmeeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/horizon/internal/timeutil"
)

const (
	// deltaT is TT-UT in seconds, held fixed; it drifts by well under a
	// second per year around 2025.
	deltaT = 69.2

	auKm = 149597870.7
)

// Meeus computes positions from the full series in Meeus, "Astronomical
// Algorithms": VSOP87-based Sun, ELP-2000 truncated Moon, IAU 1980 nutation
// and topocentric parallax on the IAU 1976 ellipsoid.
type Meeus struct{}

func (Meeus) Name() string { return ModelMeeus }

func (m Meeus) Altitude(body Body, obs Observer, t time.Time) float64 {
	return m.Position(body, obs, t).Altitude
}

func (m Meeus) Altitudes(body Body, obs Observer, ts []time.Time) []float64 {
	return altitudes(m, body, obs, ts)
}

func (Meeus) Position(body Body, obs Observer, t time.Time) Position {
	jd := julian.TimeToJD(t.UTC())
	jde := jd + deltaT/86400

	var (
		ra, dec   float64 // geocentric, degrees
		raT, decT float64 // topocentric, degrees
		distKm    float64
	)

	switch body {
	case Sun:
		α, δ := solar.ApparentEquatorial(jde)
		ra, dec = timeutil.Rad2Deg(α.Rad()), δ.Deg()
		distKm = solar.Radius((jde-2451545)/36525) * auKm
		raT, decT = ra, dec
	case Moon:
		λ, β, Δ := moonposition.Position(jde)
		Δψ, Δε := nutation.Nutation(jde)
		ε := nutation.MeanObliquity(jde) + Δε
		α, δ := coord.EclToEq(λ+Δψ, β, math.Sin(ε.Rad()), math.Cos(ε.Rad()))
		ra, dec = timeutil.Rad2Deg(α.Rad()), δ.Deg()
		distKm = Δ

		ρs, ρc := globe.Earth76.ParallaxConstants(unit.AngleFromDeg(obs.Lat), obs.Elevation)
		// Meeus measures longitude positive west.
		αt, δt := parallax.Topocentric(α, δ, Δ/auKm, ρs, ρc, unit.AngleFromDeg(-obs.Lon), jde)
		raT, decT = timeutil.Rad2Deg(αt.Rad()), δt.Deg()
	default:
		return Position{Altitude: math.NaN(), ApparentAltitude: math.NaN()}
	}

	lst := timeutil.Normalize360(timeutil.Rad2Deg(sidereal.Apparent(jd).Rad()) + obs.Lon)
	alt, az := timeutil.Horizontal(raT, decT, obs.Lat, lst)

	return Position{
		Altitude:         alt,
		ApparentAltitude: alt + timeutil.ApproxRefraction(alt),
		Azimuth:          az,
		RA:               timeutil.Normalize360(ra),
		Dec:              dec,
		DistanceKm:       distKm,
	}
}
