package horizon

import (
	"fmt"
	"strings"
	"time"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

// Altitude returns the Sun's altitude in degrees that bounds this twilight.
func (k TwilightKind) Altitude() (float64, error) {
	switch k {
	case TwilightCivil:
		return -6, nil
	case TwilightNautical:
		return -12, nil
	case TwilightAstronomical:
		return -18, nil
	default:
		return 0, fmt.Errorf("%w: unknown TwilightKind %d", ErrInvalidInput, int(k))
	}
}

func (k TwilightKind) String() string {
	switch k {
	case TwilightCivil:
		return "civil"
	case TwilightNautical:
		return "nautical"
	case TwilightAstronomical:
		return "astronomical"
	default:
		return fmt.Sprintf("twilight(%d)", int(k))
	}
}

// ParseTwilightKind accepts "civil", "nautical" or "astronomical".
func ParseTwilightKind(s string) (TwilightKind, error) {
	for _, k := range []TwilightKind{TwilightCivil, TwilightNautical, TwilightAstronomical} {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown twilight kind %q (use civil, nautical, or astronomical)", ErrInvalidInput, s)
}

// PhaseWindow represents a continuous time interval where the Sun's altitude
// stays within a particular range (e.g. golden hour or blue hour).
type PhaseWindow struct {
	Start time.Time
	End   time.Time
}

// DaylightPhases holds the morning and evening windows for a given phase
// (e.g. golden hour or blue hour).
type DaylightPhases struct {
	// Morning is the interval after dawn / sunrise.
	Morning PhaseWindow
	// Evening is the interval before dusk / sunset.
	Evening PhaseWindow

	// HasMorning / HasEvening indicate whether the corresponding window
	// exists on this date at this location (high latitudes can be weird).
	HasMorning bool
	HasEvening bool
}

// TwilightFor computes twilight times (dawn and dusk) of the given kind for
// a location and local calendar date. The returned RiseSet uses Rise as the
// "dawn" time (upward crossing of the twilight altitude) and Set as the
// "dusk" time (downward crossing).
func (f *Finder) TwilightFor(loc Coordinates, date time.Time, kind TwilightKind) (RiseSet, error) {
	alt, err := kind.Altitude()
	if err != nil {
		return RiseSet{}, err
	}
	rs, err := f.FindRiseSet(Sun, loc, date, Degrees(alt))
	if err != nil {
		return RiseSet{}, err
	}
	if !rs.HasRise && !rs.HasSet {
		return rs, ErrNoRiseNoSet
	}
	return rs, nil
}

// GoldenHourFor computes the golden hour intervals for the given local
// calendar date and location: the Sun's centre between -4° and +6°.
//
// If neither morning nor evening golden hour exists, ErrNoRiseNoSet is
// returned.
func (f *Finder) GoldenHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return f.phases(loc, date, -4, 6)
}

// BlueHourFor computes the blue hour intervals for the given local calendar
// date and location: the Sun's centre between -6° and -4°.
//
// If neither morning nor evening blue hour exists, ErrNoRiseNoSet is returned.
func (f *Finder) BlueHourFor(loc Coordinates, date time.Time) (DaylightPhases, error) {
	return f.phases(loc, date, -6, -4)
}

// phases finds the morning climb from low to high and the evening descent
// from high to low.
func (f *Finder) phases(loc Coordinates, date time.Time, low, high float64) (DaylightPhases, error) {
	lo, err := f.FindRiseSet(Sun, loc, date, Degrees(low))
	if err != nil {
		return DaylightPhases{}, err
	}
	hi, err := f.FindRiseSet(Sun, loc, date, Degrees(high))
	if err != nil {
		return DaylightPhases{}, err
	}

	var phases DaylightPhases
	if lo.HasRise && hi.HasRise && hi.Rise.After(lo.Rise) {
		phases.Morning = PhaseWindow{Start: lo.Rise, End: hi.Rise}
		phases.HasMorning = true
	}
	if hi.HasSet && lo.HasSet && lo.Set.After(hi.Set) {
		phases.Evening = PhaseWindow{Start: hi.Set, End: lo.Set}
		phases.HasEvening = true
	}

	if !phases.HasMorning && !phases.HasEvening {
		return DaylightPhases{}, ErrNoRiseNoSet
	}
	return phases, nil
}
