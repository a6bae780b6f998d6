package horizon

import (
	"sync"
	"time"
)

var defaultFinder = sync.OnceValue(func() *Finder {
	f, err := New()
	if err != nil {
		// The default model is always registered.
		panic(err)
	}
	return f
})

// Default returns the shared Finder used by the package-level functions.
func Default() *Finder { return defaultFinder() }

// FindRiseSet calls Default().FindRiseSet.
func FindRiseSet(body Body, loc Coordinates, date time.Time, target Target, opts ...SearchOption) (RiseSet, error) {
	return Default().FindRiseSet(body, loc, date, target, opts...)
}

// FindCrossings calls Default().FindCrossings.
func FindCrossings(body Body, loc Coordinates, start, end time.Time, target Target, opts ...SearchOption) ([]Crossing, error) {
	return Default().FindCrossings(body, loc, start, end, target, opts...)
}

// RecommendedTargetAltitude calls Default().RecommendedTargetAltitude.
func RecommendedTargetAltitude(loc Coordinates, t time.Time, refraction float64) float64 {
	return Default().RecommendedTargetAltitude(loc, t, refraction)
}

// RiseSetFor returns rise and set times for the given body and location on a
// date. The date's time zone is used for the returned times.
func RiseSetFor(body Body, loc Coordinates, date time.Time) (RiseSet, error) {
	return Default().RiseSetFor(body, loc, date)
}

// SlideIntoSunset returns sunrise and sunset at the given location and date.
func SlideIntoSunset(loc Coordinates, date time.Time) (RiseSet, error) {
	return Default().SlideIntoSunset(loc, date)
}

// DaylightHours calls Default().DaylightHours.
func DaylightHours(loc Coordinates, date time.Time) (float64, error) {
	return Default().DaylightHours(loc, date)
}

// MoonEvents calls Default().MoonEvents.
func MoonEvents(loc Coordinates, date time.Time, opts ...SearchOption) ([]Crossing, error) {
	return Default().MoonEvents(loc, date, opts...)
}

func TwilightFor(loc Coordinates, date time.Time, kind TwilightKind) (RiseSet, error) {
	return Default().TwilightFor(loc, date, kind)
}

func GoldenHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return Default().GoldenHourFor(loc, date)
}

func BlueHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return Default().BlueHourFor(loc, date)
}

func PositionAt(body Body, loc Coordinates, t time.Time) (Position, error) {
	return Default().Position(body, loc, t)
}
