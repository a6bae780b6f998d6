package moon

import (
	"math"
	"testing"
	"time"

	"github.com/thurmanmarka/horizon/internal/timeutil"
)

func TestGeocentricEquatorialApprox_Meeus47a(t *testing.T) {
	// Meeus example 47.a: 1992-04-12 0h TD.
	// α = 134.688470°, δ = 13.768368°, Δ = 368409.7 km.
	eq := GeocentricEquatorialApprox(time.Date(1992, time.April, 12, 0, 0, 0, 0, time.UTC))

	if math.Abs(eq.RA-134.688) > 0.5 {
		t.Errorf("RA = %.3f°, want ~134.688°", eq.RA)
	}
	if math.Abs(eq.Dec-13.768) > 0.5 {
		t.Errorf("Dec = %.3f°, want ~13.768°", eq.Dec)
	}
	if math.Abs(eq.Distance-368409.7) > 1000 {
		t.Errorf("Distance = %.1f km, want ~368409.7 km", eq.Distance)
	}
}

func TestTopocentricParallax(t *testing.T) {
	// Parallax lowers the Moon by up to ~1° near the horizon.
	ts := time.Date(2025, time.November, 30, 21, 10, 0, 0, time.UTC)
	alt, _, eq := Horizontal(33.4484, -112.074, 0, ts)

	geoAlt := geocentricAltitude(eq, 33.4484, -112.074, ts)
	drop := geoAlt - alt
	if drop < 0.5 || drop > 1.05 {
		t.Errorf("parallax drop = %.3f°, want between 0.5° and 1.05°", drop)
	}
	t.Logf("geocentric %.3f°, topocentric %.3f°", geoAlt, alt)
}

func TestParallaxConstants(t *testing.T) {
	// Meeus example 11.a: Palomar, φ = 33°21'22", h = 1706 m.
	s, c := parallaxConstants(33+21.0/60+22.0/3600, 1706)
	if math.Abs(s-0.546861) > 1e-5 || math.Abs(c-0.836339) > 1e-5 {
		t.Errorf("ρ sin φ' = %.6f, ρ cos φ' = %.6f", s, c)
	}
}

func geocentricAltitude(eq Equatorial, lat, lon float64, ts time.Time) float64 {
	alt, _ := timeutil.Horizontal(eq.RA, eq.Dec, lat, timeutil.LocalSidereal(ts, lon))
	return alt
}
