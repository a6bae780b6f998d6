package solver

import (
	"fmt"
	"math"
	"time"

	"cloudeng.io/errors"
)

// Series is an evenly spaced set of samples across a window.
type Series struct {
	Samples []Sample
	// Noon is the index of the highest altitude (first one on ties).
	Noon int
}

// Min and Max return the extreme Diff values of the series.
func (s Series) Min() float64 {
	m := math.Inf(1)
	for _, sm := range s.Samples {
		m = math.Min(m, sm.Diff())
	}
	return m
}

func (s Series) Max() float64 {
	m := math.Inf(-1)
	for _, sm := range s.Samples {
		m = math.Max(m, sm.Diff())
	}
	return m
}

// SampleWindow evaluates src at evenly spaced instants covering [start, end],
// both ends included, no more than step apart. The altitudes are fetched with
// a single vectorized call.
func SampleWindow(src Source, target Threshold, start, end time.Time, step time.Duration) (Series, error) {
	errs := &errors.M{}
	checkWindow(errs, start, end, step)
	if err := errs.Err(); err != nil {
		return Series{}, err
	}

	times := linspace(start, end, step)
	alts := src.Altitudes(times)
	if len(alts) != len(times) {
		return Series{}, fmt.Errorf("%w: asked for %d, got %d", ErrSampleCount, len(times), len(alts))
	}

	series := Series{Samples: make([]Sample, len(times))}
	for i, t := range times {
		series.Samples[i] = Sample{Time: t, Altitude: alts[i], Target: target(t)}
		if alts[i] > series.Samples[series.Noon].Altitude {
			series.Noon = i
		}
	}
	return series, nil
}

// linspace returns ceil((end-start)/step)+1 instants evenly dividing
// [start, end].
func linspace(start, end time.Time, step time.Duration) []time.Time {
	window := end.Sub(start)
	n := int(math.Ceil(float64(window)/float64(step))) + 1

	// window*i/(n-1) without overflowing for long windows.
	d := time.Duration(n - 1)
	q, r := window/d, window%d

	out := make([]time.Time, n)
	for i := 0; i < n-1; i++ {
		k := time.Duration(i)
		out[i] = start.Add(q*k + r*k/d)
	}
	out[n-1] = end
	return out
}

func checkWindow(errs *errors.M, start, end time.Time, step time.Duration) {
	if !end.After(start) {
		errs.Append(fmt.Errorf("%w: end %s is not after start %s", ErrInvalidInput,
			end.UTC().Format(time.RFC3339), start.UTC().Format(time.RFC3339)))
	}
	if step <= 0 {
		errs.Append(fmt.Errorf("%w: step must be positive, got %v", ErrInvalidInput, step))
	} else if end.After(start) && step > end.Sub(start) {
		errs.Append(fmt.Errorf("%w: step %v exceeds window %v", ErrInvalidInput, step, end.Sub(start)))
	}
}

func checkTolerance(errs *errors.M, tol time.Duration) {
	if tol <= 0 {
		errs.Append(fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidInput, tol))
	}
}
