package horizon_test

import (
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/horizon"
)

// TestSunAgainstSunrise cross-checks the Sun against an independent
// implementation of the standard sunrise equation.
func TestSunAgainstSunrise(t *testing.T) {
	places := []struct {
		name string
		loc  horizon.Coordinates
	}{
		{"London", horizon.Coordinates{Lat: 51.5, Lon: -0.127}},
		{"Phoenix", horizon.Coordinates{Lat: 33.4484, Lon: -112.0740}},
		{"Sydney", horizon.Coordinates{Lat: -33.8688, Lon: 151.2093}},
		{"Quito", horizon.Coordinates{Lat: -0.1807, Lon: -78.4678}},
		{"Reykjavik", horizon.Coordinates{Lat: 64.1466, Lon: -21.9426}},
	}
	dates := []time.Time{
		time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC),
	}

	// The sunrise equation is good to about a minute.
	const tol = 3 * time.Minute

	for _, p := range places {
		for _, d := range dates {
			name := p.name + "/" + d.Format(time.DateOnly)
			t.Run(name, func(t *testing.T) {
				rs, err := horizon.FindRiseSet(horizon.Sun, p.loc, d, horizon.Degrees(horizon.SunStandardAltitude))
				if err != nil {
					t.Fatalf("FindRiseSet() error = %v", err)
				}
				rise, set := sunrise.SunriseSunset(p.loc.Lat, p.loc.Lon, d.Year(), d.Month(), d.Day())
				if rise.IsZero() || set.IsZero() || !rs.HasRise || !rs.HasSet {
					t.Skipf("no rise/set: ours=%+v oracle=(%v, %v)", rs, rise, set)
				}

				if e := rs.Rise.Sub(rise).Abs(); e > tol {
					t.Errorf("rise %s vs oracle %s (off %v)", rs.Rise.Format(time.RFC3339), rise.Format(time.RFC3339), e)
				}
				if e := rs.Set.Sub(set).Abs(); e > tol {
					t.Errorf("set %s vs oracle %s (off %v)", rs.Set.Format(time.RFC3339), set.Format(time.RFC3339), e)
				}
			})
		}
	}
}
