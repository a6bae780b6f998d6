package horizon

import (
	"testing"
	"time"
)

// diffMinutes returns the absolute difference between two times in minutes.
func diffMinutes(a, b time.Time) float64 {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d.Minutes()
}

// Published tables use slightly different horizon conventions.
const moonToleranceMinutes = 10.0

func TestMoonRiseSet(t *testing.T) {
	tests := []struct {
		name      string
		tz        string
		coords    Coordinates
		rise, set string // HH:MM local
	}{
		// Ephemeris tables, Phoenix AZ, 2025-11-30.
		{"Phoenix", "America/Phoenix", Coordinates{Lat: 33.4484, Lon: -112.0740}, "14:10", "02:13"},
		// Ephemeris tables, New York City, 2025-11-30.
		{"NewYork", "America/New_York", Coordinates{Lat: 40.7128, Lon: -74.0060}, "13:30", "01:36"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tz, err := time.LoadLocation(tt.tz)
			if err != nil {
				t.Fatalf("failed to load %s: %v", tt.tz, err)
			}
			date := time.Date(2025, time.November, 30, 0, 0, 0, 0, tz)

			rs, err := RiseSetFor(Moon, tt.coords, date)
			if err != nil {
				t.Fatalf("RiseSetFor(Moon) returned error: %v", err)
			}
			if !rs.HasRise || !rs.HasSet {
				t.Fatalf("want both events, got %+v", rs)
			}

			expectedRise := clock(t, date, tt.rise)
			expectedSet := clock(t, date, tt.set)

			if got := diffMinutes(rs.Rise, expectedRise); got > moonToleranceMinutes {
				t.Errorf("moonrise off by %.1f minutes (got %v, want ~%v)", got, rs.Rise, expectedRise)
			}
			if got := diffMinutes(rs.Set, expectedSet); got > moonToleranceMinutes {
				t.Errorf("moonset off by %.1f minutes (got %v, want ~%v)", got, rs.Set, expectedSet)
			}
			if rs.Rise.Location() != tz {
				t.Errorf("rise returned in %v, want %v", rs.Rise.Location(), tz)
			}

			// For many dates the Moon sets in the early morning and rises in
			// the afternoon, so rise < set is not asserted.
		})
	}
}

func TestMoonEvents_FollowCalendarDay(t *testing.T) {
	tz, err := time.LoadLocation("America/Phoenix")
	if err != nil {
		t.Fatalf("failed to load America/Phoenix: %v", err)
	}
	date := time.Date(2025, time.November, 30, 15, 0, 0, 0, tz)
	events, err := MoonEvents(Coordinates{Lat: 33.4484, Lon: -112.0740}, date)
	if err != nil {
		t.Fatalf("MoonEvents() error = %v", err)
	}

	start := time.Date(2025, time.November, 30, 0, 0, 0, 0, tz)
	for i, e := range events {
		if e.Time.Before(start) || !e.Time.Before(start.AddDate(0, 0, 1)) {
			t.Errorf("event %d at %v outside the local day", i, e.Time)
		}
		if i > 0 && !e.Time.After(events[i-1].Time) {
			t.Errorf("event %d not after event %d", i, i-1)
		}
		t.Logf("%v %s", e.Direction, e.Time.Format(time.RFC3339))
	}
	if len(events) != 2 || events[0].Direction != Setting || events[1].Direction != Rising {
		t.Errorf("want [set, rise], got %+v", events)
	}
}

func clock(t *testing.T, date time.Time, hhmm string) time.Time {
	t.Helper()
	c, err := time.ParseInLocation("15:04", hhmm, date.Location())
	if err != nil {
		t.Fatalf("parse %q: %v", hhmm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, date.Location())
}
