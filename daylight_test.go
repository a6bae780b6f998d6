package horizon_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/thurmanmarka/horizon"
)

func TestDaylightHours(t *testing.T) {
	phoenix := horizon.Coordinates{
		Lat: 33.4484,
		Lon: -112.0740,
	}

	locPHX, _ := time.LoadLocation("America/Phoenix")

	tests := []struct {
		name         string
		date         time.Time
		wantMinHours float64 // minimum expected hours
		wantMaxHours float64 // maximum expected hours
	}{
		{
			name:         "Phoenix Summer Solstice",
			date:         time.Date(2025, time.June, 21, 0, 0, 0, 0, locPHX),
			wantMinHours: 14.0,
			wantMaxHours: 14.5,
		},
		{
			name:         "Phoenix Winter Solstice",
			date:         time.Date(2025, time.December, 21, 0, 0, 0, 0, locPHX),
			wantMinHours: 9.8,
			wantMaxHours: 10.2,
		},
		{
			name:         "Phoenix Spring Equinox",
			date:         time.Date(2025, time.March, 20, 0, 0, 0, 0, locPHX),
			wantMinHours: 11.9,
			wantMaxHours: 12.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := horizon.DaylightHours(phoenix, tt.date)
			if err != nil {
				t.Fatalf("DaylightHours() error = %v", err)
			}

			if hours < tt.wantMinHours || hours > tt.wantMaxHours {
				t.Errorf("DaylightHours() = %.2f hours, want between %.2f and %.2f",
					hours, tt.wantMinHours, tt.wantMaxHours)
			}

			t.Logf("%s: %.2f hours of daylight", tt.name, hours)
		})
	}
}

func TestDaylightHours_Equator(t *testing.T) {
	// At the equator, daylight should be ~12 hours year-round
	quito := horizon.Coordinates{
		Lat: -0.1807,
		Lon: -78.4678,
	}

	locQuito, _ := time.LoadLocation("America/Guayaquil")

	dates := []time.Time{
		time.Date(2025, time.March, 20, 0, 0, 0, 0, locQuito),
		time.Date(2025, time.June, 21, 0, 0, 0, 0, locQuito),
		time.Date(2025, time.September, 22, 0, 0, 0, 0, locQuito),
		time.Date(2025, time.December, 21, 0, 0, 0, 0, locQuito),
	}

	for _, date := range dates {
		hours, err := horizon.DaylightHours(quito, date)
		if err != nil {
			t.Fatalf("DaylightHours() error = %v for %s", err, date.Format("2006-01-02"))
		}

		// At the equator, expect ~12 hours ± 15 minutes
		if math.Abs(hours-12.0) > 0.25 {
			t.Errorf("Quito %s: got %.2f hours, expected ~12 hours",
				date.Format("2006-01-02"), hours)
		}

		t.Logf("Quito %s: %.2f hours", date.Format("2006-01-02"), hours)
	}
}

func TestRiseSet_EquatorSpan(t *testing.T) {
	rs, err := horizon.FindRiseSet(horizon.Sun, horizon.Coordinates{}, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		horizon.Degrees(horizon.SunStandardAltitude))
	if err != nil {
		t.Fatalf("FindRiseSet() error = %v", err)
	}
	if !rs.HasRise || !rs.HasSet {
		t.Fatalf("want both events, got %+v", rs)
	}
	span := rs.Set.Sub(rs.Rise)
	if d := span - 12*time.Hour; d < -15*time.Minute || d > 15*time.Minute {
		t.Errorf("span = %v, want 12h ± 15m", span)
	}
	t.Logf("rise %s set %s span %v", rs.Rise.Format(time.TimeOnly), rs.Set.Format(time.TimeOnly), span)
}

func TestDaylight_LondonSolsticeIsLongest(t *testing.T) {
	london := horizon.Coordinates{Lat: 51.5, Lon: -0.127}

	// Neighbouring days differ by about a second, so refine well below that.
	span := func(day int) time.Duration {
		t.Helper()
		rs, err := horizon.FindRiseSet(horizon.Sun, london, time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC),
			horizon.Degrees(horizon.SunStandardAltitude), horizon.WithTolerance(10*time.Millisecond))
		if err != nil {
			t.Fatalf("FindRiseSet(June %d) error = %v", day, err)
		}
		if !rs.HasRise || !rs.HasSet {
			t.Fatalf("June %d: missing event %+v", day, rs)
		}
		return rs.Set.Sub(rs.Rise)
	}

	d20, d21, d22 := span(20), span(21), span(22)
	t.Logf("June 20 %v, June 21 %v, June 22 %v", d20, d21, d22)
	if d21 <= d20 || d21 <= d22 {
		t.Errorf("June 21 (%v) should be longer than June 20 (%v) and June 22 (%v)", d21, d20, d22)
	}
}

func TestRiseSet_Poles(t *testing.T) {
	solstice := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		lat    float64
		status horizon.Status
	}{
		{"north pole midnight sun", 90, horizon.StatusAlwaysAbove},
		{"south pole polar night", -90, horizon.StatusAlwaysBelow},
		{"Svalbard midnight sun", 78.2, horizon.StatusAlwaysAbove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := horizon.Coordinates{Lat: tt.lat, Lon: 15.6}
			rs, err := horizon.FindRiseSet(horizon.Sun, loc, solstice, horizon.Degrees(horizon.SunStandardAltitude))
			if err != nil {
				t.Fatalf("FindRiseSet() error = %v", err)
			}
			if rs.HasRise || rs.HasSet {
				t.Errorf("want (None, None), got %+v", rs)
			}
			if rs.RiseStatus != tt.status || rs.SetStatus != tt.status {
				t.Errorf("status = (%v, %v), want %v", rs.RiseStatus, rs.SetStatus, tt.status)
			}

			if _, err := horizon.DaylightHours(loc, solstice); !errors.Is(err, horizon.ErrNoRiseNoSet) {
				t.Errorf("DaylightHours error = %v, want ErrNoRiseNoSet", err)
			}
		})
	}
}

func TestFindRiseSet_Idempotent(t *testing.T) {
	loc := horizon.Coordinates{Lat: 33.4484, Lon: -112.0740, Elevation: 331}
	date := time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC)

	for _, body := range []horizon.Body{horizon.Sun, horizon.Moon} {
		a, err := horizon.FindRiseSet(body, loc, date, horizon.Degrees(-0.833))
		if err != nil {
			t.Fatal(err)
		}
		b, err := horizon.FindRiseSet(body, loc, date, horizon.Degrees(-0.833))
		if err != nil {
			t.Fatal(err)
		}
		if !a.Rise.Equal(b.Rise) || !a.Set.Equal(b.Set) || a.HasRise != b.HasRise || a.HasSet != b.HasSet {
			t.Errorf("%v: repeated search differs: %+v vs %+v", body, a, b)
		}
	}
}
