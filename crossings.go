package horizon

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/horizon/internal/solver"
)

// FindCrossings returns every instant in [start, end] at which body's
// altitude crosses target, in chronological order, each marked as a rise or
// a set. A window with no crossing yields an empty slice, not an error.
// Times are returned in start's Location.
//
// The window is sampled every 5 minutes unless overridden with WithStep;
// crossings closer together than the step can be missed.
func (f *Finder) FindCrossings(body Body, loc Coordinates, start, end time.Time, target Target, opts ...SearchOption) ([]Crossing, error) {
	started := time.Now()
	if err := f.validate(body, loc, target); err != nil {
		f.observe("crossings", body, started, solver.Stats{}, 0, err)
		return nil, err
	}
	s := f.searchOptions(f.defaults.CrossingStep, opts)

	found, stats, err := solver.FindCrossings(f.source(body, loc), threshold(target), start, end, s.step, s.tolerance)
	if err != nil {
		err = fmt.Errorf("%v crossings: %w", body, err)
		f.observe("crossings", body, started, stats, 0, err)
		return nil, err
	}

	tz := start.Location()
	out := make([]Crossing, len(found))
	for i, c := range found {
		out[i] = Crossing{Time: c.Time.In(tz), Direction: c.Direction}
	}
	f.observe("crossings", body, started, stats, len(out), nil)
	return out, nil
}
