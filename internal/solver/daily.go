package solver

import (
	"time"

	"cloudeng.io/errors"
)

// Status explains the outcome of a single event search.
type Status int

const (
	// Crossed means the event was found.
	Crossed Status = iota
	// AlwaysAbove means the body stayed above the target for the whole window.
	AlwaysAbove
	// AlwaysBelow means the body stayed below the target for the whole window.
	AlwaysBelow
	// OutsideWindow means the body does cross the target, but this event
	// falls outside the searched window.
	OutsideWindow
)

func (s Status) String() string {
	switch s {
	case Crossed:
		return "crossed"
	case AlwaysAbove:
		return "always_above"
	case AlwaysBelow:
		return "always_below"
	case OutsideWindow:
		return "outside_window"
	default:
		return "unknown"
	}
}

// Event is the outcome of a rise or set search. Time is only meaningful when
// Found is true.
type Event struct {
	Time   time.Time
	Found  bool
	Status Status
}

// Daily is the result of DailyRiseSet.
type Daily struct {
	Rise, Set Event
	Noon      time.Time // instant of the highest sample
	Stats     Stats
}

// Stats counts the work a search did.
type Stats struct {
	Evaluations int // altitude evaluations, including the coarse samples
	Iterations  int // bisection steps over all brackets
	Samples     int
}

// DailyOptions configures DailyRiseSet. Step and Tolerance must be positive;
// a zero HalfWindow means DefaultHalfWindow.
type DailyOptions struct {
	HalfWindow time.Duration
	Step       time.Duration
	Tolerance  time.Duration
}

const (
	DefaultHalfWindow   = 12 * time.Hour
	DefaultDailyStep    = 6 * time.Minute
	DefaultCrossingStep = 5 * time.Minute
	DefaultTolerance    = time.Second
)

// DefaultDailyOptions returns a 6 minute step and 1 second tolerance over
// the default window.
func DefaultDailyOptions() DailyOptions {
	return DailyOptions{HalfWindow: DefaultHalfWindow, Step: DefaultDailyStep, Tolerance: DefaultTolerance}
}

func (o DailyOptions) withDefaults() DailyOptions {
	if o.HalfWindow == 0 {
		o.HalfWindow = DefaultHalfWindow
	}
	return o
}

// DailyRiseSet finds at most one rise and one set in the window centred on
// noon. The highest sample splits the window: the rise is the first sample
// before it at or above the target, the set the first sample after it at or
// below the target. Each is then refined against the preceding sample.
//
// Every combination of found and missing events is legal.
func DailyRiseSet(src Source, target Threshold, noon time.Time, opts DailyOptions) (Daily, error) {
	opts = opts.withDefaults()

	errs := &errors.M{}
	checkTolerance(errs, opts.Tolerance)
	checkWindow(errs, noon.Add(-opts.HalfWindow), noon.Add(opts.HalfWindow), opts.Step)
	if err := errs.Err(); err != nil {
		return Daily{}, err
	}

	cs := &counting{Source: src}
	series, err := SampleWindow(cs, target, noon.Add(-opts.HalfWindow), noon.Add(opts.HalfWindow), opts.Step)
	if err != nil {
		return Daily{}, err
	}

	out := Daily{Noon: series.Samples[series.Noon].Time}
	var iters int
	out.Rise, iters = dailyRise(cs, target, series, opts.Tolerance)
	out.Stats.Iterations += iters
	out.Set, iters = dailySet(cs, target, series, opts.Tolerance)
	out.Stats.Iterations += iters

	out.Stats.Evaluations = cs.n
	out.Stats.Samples = len(series.Samples)
	return out, nil
}

func dailyRise(src Source, target Threshold, series Series, tol time.Duration) (Event, int) {
	samples := series.Samples
	idx := -1
	for i := 0; i <= series.Noon; i++ {
		if samples[i].Diff() >= 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return missing(series), 0
	}

	left, ok := widenLeft(samples, idx, true)
	if !ok {
		if samples[idx].Diff() == 0 {
			return Event{Time: samples[idx].Time, Found: true, Status: Crossed}, 0
		}
		return missing(series), 0
	}

	c := refine(src, target, Bracket{Left: samples[left], Right: samples[idx]}, tol)
	return Event{Time: c.Time, Found: true, Status: Crossed}, c.Iterations
}

func dailySet(src Source, target Threshold, series Series, tol time.Duration) (Event, int) {
	samples := series.Samples
	idx := -1
	for i := series.Noon; i < len(samples); i++ {
		if samples[i].Diff() <= 0 {
			idx = i
			break
		}
	}
	// At or below the target at the highest point: it never got up.
	if idx <= series.Noon {
		return missing(series), 0
	}

	left, ok := widenLeft(samples, idx, false)
	if !ok {
		return missing(series), 0
	}

	c := refine(src, target, Bracket{Left: samples[left], Right: samples[idx]}, tol)
	return Event{Time: c.Time, Found: true, Status: Crossed}, c.Iterations
}

// missing classifies an event that was not found from the extremes of the
// coarse samples.
func missing(series Series) Event {
	switch {
	case series.Min() > 0:
		return Event{Status: AlwaysAbove}
	case series.Max() < 0:
		return Event{Status: AlwaysBelow}
	default:
		return Event{Status: OutsideWindow}
	}
}
