// Package solver finds the instants at which a body's altitude crosses a
// target altitude. It samples a window coarsely, brackets sign changes of
// altitude minus target and refines each bracket by bisection.
//
// The package knows nothing about ephemerides: altitudes come from a Source.
package solver

import (
	"time"
)

// Source yields altitudes in degrees.
type Source interface {
	Altitude(t time.Time) float64
	// Altitudes must return one value per element of ts.
	Altitudes(ts []time.Time) []float64
}

// AltitudeFunc adapts a plain function to a Source.
type AltitudeFunc func(t time.Time) float64

func (f AltitudeFunc) Altitude(t time.Time) float64 { return f(t) }

func (f AltitudeFunc) Altitudes(ts []time.Time) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = f(t)
	}
	return out
}

// Threshold returns the target altitude in degrees at t. Most targets are
// constant; the Moon's depends on its distance.
type Threshold func(t time.Time) float64

// Constant returns a Threshold that is always deg.
func Constant(deg float64) Threshold {
	return func(time.Time) float64 { return deg }
}

// Direction says which way the altitude moves through the target.
type Direction int

const (
	// Rising means altitude is increasing through the target value.
	Rising Direction = iota
	// Setting means altitude is decreasing through the target value.
	Setting
)

func (d Direction) String() string {
	if d == Rising {
		return "rise"
	}
	return "set"
}

// Sample is one evaluation of the altitude function.
type Sample struct {
	Time     time.Time
	Altitude float64
	Target   float64
}

// Diff is altitude minus target; its sign says which side of the target the
// body is on.
func (s Sample) Diff() float64 { return s.Altitude - s.Target }

// counting wraps a Source and tallies evaluations.
type counting struct {
	Source
	n int
}

func (c *counting) Altitude(t time.Time) float64 {
	c.n++
	return c.Source.Altitude(t)
}

func (c *counting) Altitudes(ts []time.Time) []float64 {
	c.n += len(ts)
	return c.Source.Altitudes(ts)
}
