package timeutil

import (
	"math"
	"testing"
	"time"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"J2000", time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Meeus 7.a", time.Date(1957, time.October, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"half second", time.Date(2000, time.January, 1, 12, 0, 0, 500_000_000, time.UTC), 2451545.0 + 0.5/86400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDay(tt.t)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("JulianDay() = %.8f, want %.8f", got, tt.want)
			}
		})
	}
}

func TestJulianDay_IgnoresLocation(t *testing.T) {
	phx, err := time.LoadLocation("America/Phoenix")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	utc := time.Date(2025, time.June, 21, 19, 0, 0, 0, time.UTC)
	if a, b := JulianDay(utc), JulianDay(utc.In(phx)); a != b {
		t.Errorf("JulianDay differs by location: %f vs %f", a, b)
	}
}

func TestGreenwichSidereal(t *testing.T) {
	// Meeus example 12.a: 1987-04-10 0h UT, mean sidereal time 13h10m46.3668s.
	got := GreenwichSidereal(time.Date(1987, time.April, 10, 0, 0, 0, 0, time.UTC))
	want := (13 + 10.0/60 + 46.3668/3600) * 15
	if math.Abs(got-want) > 0.01 {
		t.Errorf("GreenwichSidereal() = %.5f°, want %.5f°", got, want)
	}
}

func TestWrapPi(t *testing.T) {
	for _, in := range []float64{0, 1, -1, 3 * math.Pi, -3 * math.Pi, 7.5} {
		got := WrapPi(in)
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("WrapPi(%f) = %f out of range", in, got)
		}
		if d := math.Mod(math.Abs(got-in), 2*math.Pi); d > 1e-9 && math.Abs(d-2*math.Pi) > 1e-9 {
			t.Errorf("WrapPi(%f) = %f not congruent", in, got)
		}
	}
}

func TestApproxRefraction(t *testing.T) {
	horizon := ApproxRefraction(0)
	// Geometric altitude 0° refracts by roughly 29 arcminutes.
	if math.Abs(horizon-0.483) > 0.01 {
		t.Errorf("refraction at horizon = %.3f°, want ~0.483°", horizon)
	}
	if ApproxRefraction(-5) != 0 {
		t.Errorf("refraction well below horizon should be 0")
	}
	if r := ApproxRefraction(45); r <= 0 || r > 0.02 {
		t.Errorf("refraction at 45° = %.4f°", r)
	}
}

func TestHorizontal(t *testing.T) {
	// Object on the meridian at the observer's declination is at the zenith.
	alt, _ := Horizontal(100, 40, 40, 100)
	if math.Abs(alt-90) > 1e-5 {
		t.Errorf("zenith alt = %f", alt)
	}

	// Equator observer, object on the celestial equator six hours east of the
	// meridian is rising due east.
	alt, az := Horizontal(90, 0, 0, 0)
	if math.Abs(alt) > 1e-9 || math.Abs(az-90) > 1e-9 {
		t.Errorf("rising point = (%f, %f), want (0, 90)", alt, az)
	}
}
