package horizon

import (
	"math"
	"time"
)

const (
	// SunStandardAltitude is the altitude of the Sun's centre when its upper
	// limb touches the horizon under standard refraction.
	SunStandardAltitude = -0.833

	// MoonStandardAltitude is the conventional lunar rise/set altitude at
	// mean distance.
	MoonStandardAltitude = -0.816

	// StandardRefraction is the horizon refraction in degrees under
	// standard atmospheric conditions.
	StandardRefraction = 0.566

	// moonRadiusKm is the Moon's mean radius.
	moonRadiusKm = 1737.4
)

// Target is the altitude a search looks for. It may vary with time.
type Target interface {
	// AltitudeAt returns the target altitude in degrees at t.
	AltitudeAt(t time.Time) float64
}

// Degrees is a constant target altitude.
type Degrees float64

func (d Degrees) AltitudeAt(time.Time) float64 { return float64(d) }

// Semidiameter returns the apparent angular radius of the Moon in degrees
// at the given centre-to-centre distance. A distance at or inside the
// lunar radius, or NaN, yields 90.
func Semidiameter(distanceKm float64) float64 {
	if !(distanceKm > moonRadiusKm) {
		return 90
	}
	return math.Asin(moonRadiusKm/distanceKm) * 180 / math.Pi
}

// lunarTarget places the Moon's upper limb on the refracted horizon.
type lunarTarget struct {
	f          *Finder
	loc        Coordinates
	refraction float64
}

func (l lunarTarget) AltitudeAt(t time.Time) float64 {
	return l.f.RecommendedTargetAltitude(l.loc, t, l.refraction)
}

// RecommendedTargetAltitude returns the altitude of the Moon's centre at
// which its upper limb sits on the horizon at t: -(refraction + semidiameter).
// Pass StandardRefraction unless local conditions are known.
func (f *Finder) RecommendedTargetAltitude(loc Coordinates, t time.Time, refraction float64) float64 {
	p := f.provider.Position(Moon.eph(), loc.observer(), t)
	return -(refraction + Semidiameter(p.DistanceKm))
}

// LunarTarget returns a Target that re-evaluates RecommendedTargetAltitude
// at every instant the search probes.
func (f *Finder) LunarTarget(loc Coordinates, refraction float64) Target {
	return lunarTarget{f: f, loc: loc, refraction: refraction}
}
