package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloudeng.io/sync/errgroup"

	"github.com/thurmanmarka/horizon"
)

// result compares one computed day against its reference row.
type result struct {
	row        refRow
	got        horizon.RiseSet
	riseErr    float64
	setErr     float64
	riseSigned float64
	setSigned  float64
}

// computeFunc computes the events for one calendar day.
type computeFunc func(row refRow) (horizon.RiseSet, error)

// profile runs compute for every row on at most workers goroutines. Results
// keep the order of rows; rows that fail are left out and their errors
// returned together.
func profile(ctx context.Context, rows []refRow, workers int, compute computeFunc) ([]result, error) {
	if workers < 1 {
		workers = 1
	}
	slots := make([]*result, len(rows))

	g := &errgroup.T{}
	g = errgroup.WithConcurrency(g, workers)
	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("row %d: %w", row.line, err)
			}
			rs, err := compute(row)
			if err != nil && !errors.Is(err, horizon.ErrNoRiseNoSet) {
				return fmt.Errorf("row %d: %w", row.line, err)
			}
			slots[i] = compare(row, rs)
			return nil
		})
	}
	err := g.Wait()

	out := make([]result, 0, len(rows))
	for _, r := range slots {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, err
}

func compare(row refRow, rs horizon.RiseSet) *result {
	// Compare in local time zone; missing events stay zero.
	loc := row.date.Location()
	var gotRise, gotSet time.Time
	if rs.HasRise {
		gotRise = rs.Rise.In(loc)
	}
	if rs.HasSet {
		gotSet = rs.Set.In(loc)
	}
	return &result{
		row:        row,
		got:        rs,
		riseErr:    diffMinutes(gotRise, row.rise),
		setErr:     diffMinutes(gotSet, row.set),
		riseSigned: diffMinutesSigned(gotRise, row.rise),
		setSigned:  diffMinutesSigned(gotSet, row.set),
	}
}
