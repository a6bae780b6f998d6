package horizon

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/horizon/internal/solver"
)

// meanLocalNoon returns 12:00 local mean time on date's calendar day at
// longitude lon, expressed in UTC.
func meanLocalNoon(date time.Time, lon float64) time.Time {
	y, m, d := date.Date()
	noonUTC := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return noonUTC.Add(-time.Duration(lon / 15 * float64(time.Hour)))
}

// FindRiseSet finds at most one rise and one set of body through target in
// the 24 hours centred on mean local noon of date's calendar day. The rise
// precedes the day's highest point and the set follows it. Either or both
// may be absent; RiseStatus and SetStatus say why. Times are returned in
// date's Location.
//
// The window is sampled every 6 minutes and each event refined to 1 second
// unless overridden with WithStep and WithTolerance.
func (f *Finder) FindRiseSet(body Body, loc Coordinates, date time.Time, target Target, opts ...SearchOption) (RiseSet, error) {
	started := time.Now()
	if err := f.validate(body, loc, target); err != nil {
		f.observe("riseset", body, started, solver.Stats{}, 0, err)
		return RiseSet{}, err
	}
	s := f.searchOptions(f.defaults.RiseSetStep, opts)

	daily, err := solver.DailyRiseSet(f.source(body, loc), threshold(target), meanLocalNoon(date, loc.Lon), solver.DailyOptions{
		Step:      s.step,
		Tolerance: s.tolerance,
	})
	if err != nil {
		err = fmt.Errorf("%v rise/set on %s: %w", body, date.Format(time.DateOnly), err)
		f.observe("riseset", body, started, solver.Stats{}, 0, err)
		return RiseSet{}, err
	}

	tz := date.Location()
	rs := RiseSet{
		HasRise:    daily.Rise.Found,
		HasSet:     daily.Set.Found,
		RiseStatus: daily.Rise.Status,
		SetStatus:  daily.Set.Status,
	}
	events := 0
	if rs.HasRise {
		rs.Rise = daily.Rise.Time.In(tz)
		events++
	}
	if rs.HasSet {
		rs.Set = daily.Set.Time.In(tz)
		events++
	}
	f.observe("riseset", body, started, daily.Stats, events, nil)
	return rs, nil
}

// RiseSetFor returns rise and set times for the given body and location on
// date's calendar day, in date's time zone, using the standard horizon for
// each body.
//
// For the Sun this is FindRiseSet at SunStandardAltitude. The Moon's rise and
// set drift by about 50 minutes a day and need not bracket its transit, so
// they are the first rise and first set among MoonEvents for that day.
//
// ErrNoRiseNoSet is returned when neither event occurs.
func (f *Finder) RiseSetFor(body Body, loc Coordinates, date time.Time) (RiseSet, error) {
	var (
		rs  RiseSet
		err error
	)
	switch body {
	case Sun:
		rs, err = f.FindRiseSet(Sun, loc, date, Degrees(SunStandardAltitude))
	case Moon:
		rs, err = f.moonRiseSet(loc, date)
	default:
		return RiseSet{}, fmt.Errorf("%w: %v", ErrUnknownBody, body)
	}
	if err != nil {
		return RiseSet{}, err
	}
	if !rs.HasRise && !rs.HasSet {
		return rs, ErrNoRiseNoSet
	}
	return rs, nil
}

func (f *Finder) moonRiseSet(loc Coordinates, date time.Time) (RiseSet, error) {
	events, err := f.MoonEvents(loc, date)
	if err != nil {
		return RiseSet{}, err
	}

	rs := RiseSet{RiseStatus: StatusOutsideWindow, SetStatus: StatusOutsideWindow}
	for _, e := range events {
		switch {
		case e.Direction == Rising && !rs.HasRise:
			rs.Rise, rs.HasRise, rs.RiseStatus = e.Time, true, StatusCrossed
		case e.Direction == Setting && !rs.HasSet:
			rs.Set, rs.HasSet, rs.SetStatus = e.Time, true, StatusCrossed
		}
	}
	if len(events) == 0 {
		status := StatusAlwaysBelow
		start := localMidnight(date)
		if f.provider.Altitude(Moon.eph(), loc.observer(), start) > MoonStandardAltitude {
			status = StatusAlwaysAbove
		}
		rs.RiseStatus, rs.SetStatus = status, status
	}
	return rs, nil
}

// SlideIntoSunset is your glorious convenience helper:
// it returns sunrise and sunset for the Sun at the given location and date.
func (f *Finder) SlideIntoSunset(loc Coordinates, date time.Time) (RiseSet, error) {
	return f.RiseSetFor(Sun, loc, date)
}

// DaylightHours returns the hours between sunrise and sunset on date.
//
// If the Sun does not both rise and set (polar day or night) it returns 0 and
// ErrNoRiseNoSet; the RiseSet statuses from SlideIntoSunset tell the two apart.
func (f *Finder) DaylightHours(loc Coordinates, date time.Time) (float64, error) {
	rs, err := f.SlideIntoSunset(loc, date)
	if err != nil {
		return 0, err
	}
	if !rs.HasRise || !rs.HasSet {
		return 0, ErrNoRiseNoSet
	}
	return rs.Set.Sub(rs.Rise).Hours(), nil
}

// MoonEvents returns every lunar rise and set during date's calendar day
// (midnight to midnight in date's Location) at MoonStandardAltitude.
func (f *Finder) MoonEvents(loc Coordinates, date time.Time, opts ...SearchOption) ([]Crossing, error) {
	start := localMidnight(date)
	return f.FindCrossings(Moon, loc, start, start.AddDate(0, 0, 1), Degrees(MoonStandardAltitude), opts...)
}

func localMidnight(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}
