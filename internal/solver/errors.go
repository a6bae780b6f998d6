package solver

import (
	"cloudeng.io/errors"
)

var (
	// ErrInvalidInput reports a malformed search request: non-positive
	// tolerance or step, an empty window, or a step wider than the window.
	ErrInvalidInput = errors.New("invalid search input")

	// ErrInvalidBracket reports a bracket whose endpoints are not on opposite
	// sides of the target.
	ErrInvalidBracket = errors.New("bracket does not straddle the target")

	// ErrSampleCount reports a Source whose vectorized call returned the
	// wrong number of altitudes.
	ErrSampleCount = errors.New("source returned wrong number of samples")
)
