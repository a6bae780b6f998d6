package ephemeris

import (
	"errors"
	"math"
	"testing"
	"time"
)

// tdInstant returns the UTC instant whose JDE under the fixed ΔT is td.
func tdInstant(td time.Time) time.Time {
	return td.Add(-time.Duration(deltaT * float64(time.Second)))
}

func TestMeeus_Moon_Example47a(t *testing.T) {
	p := Meeus{}.Position(Moon, Observer{}, tdInstant(time.Date(1992, time.April, 12, 0, 0, 0, 0, time.UTC)))

	if math.Abs(p.RA-134.688470) > 1e-3 {
		t.Errorf("RA = %.6f°, want 134.688470°", p.RA)
	}
	if math.Abs(p.Dec-13.768368) > 1e-3 {
		t.Errorf("Dec = %.6f°, want 13.768368°", p.Dec)
	}
	if math.Abs(p.DistanceKm-368409.7) > 0.5 {
		t.Errorf("Distance = %.1f km, want 368409.7 km", p.DistanceKm)
	}
}

func TestMeeus_Sun_Example25a(t *testing.T) {
	p := Meeus{}.Position(Sun, Observer{}, tdInstant(time.Date(1992, time.October, 13, 0, 0, 0, 0, time.UTC)))

	if math.Abs(p.RA-198.38083) > 2e-3 {
		t.Errorf("RA = %.5f°, want 198.38083°", p.RA)
	}
	if math.Abs(p.Dec-(-7.78507)) > 2e-3 {
		t.Errorf("Dec = %.5f°, want -7.78507°", p.Dec)
	}
	if au := p.DistanceKm / auKm; math.Abs(au-0.99766) > 1e-4 {
		t.Errorf("Distance = %.5f AU, want 0.99766 AU", au)
	}
}

func TestModelsAgree(t *testing.T) {
	obs := Observer{Lat: 33.4484, Lon: -112.0740, Elevation: 331}
	start := time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		body Body
		tol  float64
	}{
		{Sun, 0.05},
		{Moon, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.body.String(), func(t *testing.T) {
			var worst float64
			for h := 0; h < 48; h++ {
				ts := start.Add(time.Duration(h) * 30 * time.Minute)
				a := Meeus{}.Altitude(tt.body, obs, ts)
				b := Approx{}.Altitude(tt.body, obs, ts)
				worst = math.Max(worst, math.Abs(a-b))
			}
			if worst > tt.tol {
				t.Errorf("max |meeus-approx| = %.3f°, want <= %.3f°", worst, tt.tol)
			}
			t.Logf("%s: max altitude difference %.4f°", tt.body, worst)
		})
	}
}

func TestAltitudesMatchesAltitude(t *testing.T) {
	obs := Observer{Lat: 51.5, Lon: -0.127}
	ts := []time.Time{
		time.Date(2025, time.April, 28, 4, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 28, 12, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 28, 20, 0, 0, 0, time.UTC),
	}
	for _, p := range []Provider{Meeus{}, Approx{}} {
		got := p.Altitudes(Moon, obs, ts)
		if len(got) != len(ts) {
			t.Fatalf("%s: len = %d, want %d", p.Name(), len(got), len(ts))
		}
		for i := range ts {
			if want := p.Altitude(Moon, obs, ts[i]); got[i] != want {
				t.Errorf("%s[%d] = %f, want %f", p.Name(), i, got[i], want)
			}
		}
	}
}

func TestPosition(t *testing.T) {
	obs := Observer{Lat: 51.5, Lon: -0.127}
	noon := time.Date(2025, time.June, 21, 12, 2, 0, 0, time.UTC)

	p := Meeus{}.Position(Sun, obs, noon)
	if math.Abs(p.Azimuth-180) > 2 {
		t.Errorf("noon azimuth = %.2f°, want ~180°", p.Azimuth)
	}
	if math.Abs(p.Altitude-(90-51.5+23.44)) > 0.1 {
		t.Errorf("solstice noon altitude = %.3f°", p.Altitude)
	}
	if p.ApparentAltitude <= p.Altitude {
		t.Errorf("apparent altitude %.4f not above geometric %.4f", p.ApparentAltitude, p.Altitude)
	}

	if p := (Meeus{}).Position(Body(9), obs, noon); !math.IsNaN(p.Altitude) {
		t.Errorf("unknown body altitude = %f, want NaN", p.Altitude)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		model string
		want  string
		err   error
	}{
		{"", ModelMeeus, nil},
		{"meeus", ModelMeeus, nil},
		{" Approx ", ModelApprox, nil},
		{"vsop2013", "", ErrUnknownModel},
	}
	for _, tt := range tests {
		p, err := New(Config{Model: tt.model})
		if !errors.Is(err, tt.err) {
			t.Errorf("New(%q) error = %v, want %v", tt.model, err, tt.err)
			continue
		}
		if err == nil && p.Name() != tt.want {
			t.Errorf("New(%q) = %s, want %s", tt.model, p.Name(), tt.want)
		}
	}
}
