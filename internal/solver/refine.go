package solver

import (
	"fmt"
	"time"

	"cloudeng.io/errors"
)

const (
	// maxIterations bounds bisection. 64 halvings shrink any time.Duration
	// to under a nanosecond.
	maxIterations = 64

	// slopeStep is the offset either side of a crossing used to decide
	// whether the body is rising or setting.
	slopeStep = time.Minute
)

// Bracket is a pair of samples on opposite sides of the target.
type Bracket struct {
	Left, Right Sample
}

// rising reports whether the bracket goes from below to at-or-above the
// target. A bracket starting exactly on target takes the sign of its right
// end.
func (b Bracket) rising() bool {
	if l := b.Left.Diff(); l != 0 {
		return l < 0
	}
	return b.Right.Diff() > 0
}

func (b Bracket) valid() bool {
	l, r := b.Left.Diff(), b.Right.Diff()
	switch {
	case !b.Right.Time.After(b.Left.Time):
		return false
	case l == 0 && r == 0:
		return false
	case l == 0 || r == 0:
		return true
	default:
		return (l < 0) != (r < 0)
	}
}

// Crossing is a refined instant at which altitude equals the target.
type Crossing struct {
	Time       time.Time
	Direction  Direction
	Iterations int
}

// Refine narrows b by bisection until it is no wider than tol and returns
// its right end. For a rising bracket a diff >= 0 counts as the target being
// reached, for a setting bracket a diff <= 0 does. A bracket whose left end
// is exactly on target is returned as is.
func Refine(src Source, target Threshold, b Bracket, tol time.Duration) (Crossing, error) {
	errs := &errors.M{}
	checkTolerance(errs, tol)
	if !b.valid() {
		errs.Append(fmt.Errorf("%w: [%s %+.6f, %s %+.6f]", ErrInvalidBracket,
			b.Left.Time.UTC().Format(time.RFC3339), b.Left.Diff(),
			b.Right.Time.UTC().Format(time.RFC3339), b.Right.Diff()))
	}
	if err := errs.Err(); err != nil {
		return Crossing{}, err
	}
	return refine(src, target, b, tol), nil
}

// refine assumes b is valid and tol positive.
func refine(src Source, target Threshold, b Bracket, tol time.Duration) Crossing {
	if b.Left.Diff() == 0 {
		return Crossing{Time: b.Left.Time, Direction: direction(src, b.Left.Time)}
	}

	up := b.rising()
	reached := func(d float64) bool {
		if up {
			return d >= 0
		}
		return d <= 0
	}

	left, right := b.Left.Time, b.Right.Time
	var i int
	for ; right.Sub(left) > tol && i < maxIterations; i++ {
		mid := left.Add(right.Sub(left) / 2)
		if reached(src.Altitude(mid) - target(mid)) {
			right = mid
		} else {
			left = mid
		}
	}

	return Crossing{Time: right, Direction: direction(src, right), Iterations: i}
}

// direction compares the altitude a minute either side of t.
func direction(src Source, t time.Time) Direction {
	if src.Altitude(t.Add(slopeStep)) > src.Altitude(t.Add(-slopeStep)) {
		return Rising
	}
	return Setting
}
