package solver

import (
	"time"

	"cloudeng.io/errors"
)

// FindCrossings returns every crossing of target in [start, end], in
// chronological order. The window is sampled every step (at most); each
// adjacent pair of samples on opposite sides of the target is refined
// independently to within tol. A sample exactly on target is reported as is,
// once per run of such samples, so a tangent touch is one event from either
// side. No sign change yields an empty result.
//
// Crossings closer together than step may be missed.
func FindCrossings(src Source, target Threshold, start, end time.Time, step, tol time.Duration) ([]Crossing, Stats, error) {
	errs := &errors.M{}
	checkWindow(errs, start, end, step)
	checkTolerance(errs, tol)
	if err := errs.Err(); err != nil {
		return nil, Stats{}, err
	}

	cs := &counting{Source: src}
	series, err := SampleWindow(cs, target, start, end, step)
	if err != nil {
		return nil, Stats{}, err
	}

	brackets := signChanges(series.Samples)
	out := make([]Crossing, 0, len(brackets))
	stats := Stats{Samples: len(series.Samples)}
	for _, b := range brackets {
		c := refine(cs, target, b, tol)
		stats.Iterations += c.Iterations
		out = append(out, c)
	}
	stats.Evaluations = cs.n
	return out, stats, nil
}
