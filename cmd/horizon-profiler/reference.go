package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"cloudeng.io/errors"
	"github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/horizon"
)

// refRow is one day of reference rise/set times. A zero Rise or Set means
// the reference has no such event.
type refRow struct {
	line int
	date time.Time
	rise time.Time
	set  time.Time
}

// readReference parses a reference CSV:
//
//	date,rise,set
//	2025-01-01,07:32,17:12
//	2025-01-02,07:32,17:13
//
// date is YYYY-MM-DD, rise/set are local times in HH:MM or HH:MM:SS in loc.
// A rise or set of "" or "--" means the reference lists no event. Bad rows
// are skipped and returned together as one error.
func readReference(r io.Reader, loc *time.Location) ([]refRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // allow variable, we validate

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty CSV file")
	}

	// If first row looks like a header, skip it.
	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		startIdx = 1
	}

	errs := &errors.M{}
	rows := make([]refRow, 0, len(records)-startIdx)
	for i := startIdx; i < len(records); i++ {
		row, err := parseRow(i+1, records[i], loc)
		if err != nil {
			errs.Append(err)
			continue
		}
		rows = append(rows, row)
	}
	return rows, errs.Err()
}

func parseRow(line int, rec []string, loc *time.Location) (refRow, error) {
	if len(rec) < 3 {
		return refRow{}, fmt.Errorf("row %d: expected at least 3 columns (date,rise,set), got %d", line, len(rec))
	}
	dateStr := strings.TrimSpace(rec[0])
	date, err := time.ParseInLocation(time.DateOnly, dateStr, loc)
	if err != nil {
		return refRow{}, fmt.Errorf("row %d: invalid date %q: %w", line, dateStr, err)
	}
	rise, err := parseLocalTime(date, strings.TrimSpace(rec[1]), loc)
	if err != nil {
		return refRow{}, fmt.Errorf("row %d: invalid rise time %q: %w", line, rec[1], err)
	}
	set, err := parseLocalTime(date, strings.TrimSpace(rec[2]), loc)
	if err != nil {
		return refRow{}, fmt.Errorf("row %d: invalid set time %q: %w", line, rec[2], err)
	}
	return refRow{line: line, date: date, rise: rise, set: set}, nil
}

func parseLocalTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	if hhmm == "" || hhmm == "--" {
		return time.Time{}, nil
	}
	// Expect HH:MM (optionally HH:MM:SS).
	layout := "15:04"
	if strings.Count(hhmm, ":") == 2 {
		layout = "15:04:05"
	}
	parsed, err := time.ParseInLocation(layout, hhmm, loc)
	if err != nil {
		return time.Time{}, err
	}
	// Combine parsed clock time with date.
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), nil
}

// oracleRows builds reference rows for every day in [from, to] from the
// sunrise equation.
func oracleRows(coords horizon.Coordinates, from, to time.Time, loc *time.Location) []refRow {
	var rows []refRow
	for d, line := from, 1; !d.After(to); d, line = d.AddDate(0, 0, 1), line+1 {
		rise, set := sunrise.SunriseSunset(coords.Lat, coords.Lon, d.Year(), d.Month(), d.Day())
		row := refRow{line: line, date: d}
		if !rise.IsZero() {
			row.rise = rise.In(loc)
		}
		if !set.IsZero() {
			row.set = set.In(loc)
		}
		rows = append(rows, row)
	}
	return rows
}
