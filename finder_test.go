package horizon_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/thurmanmarka/horizon"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
	stats []horizon.SearchStats
}

func (r *recorder) ObserveSearch(op string, body horizon.Body, s horizon.SearchStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, op+"/"+body.String())
	r.stats = append(r.stats, s)
}

var london = horizon.Coordinates{Lat: 51.5, Lon: -0.127}

func TestNew_UnknownModel(t *testing.T) {
	if _, err := horizon.New(horizon.WithModel("vsop87")); err == nil {
		t.Fatal("expected error for unknown model")
	}
	for _, name := range []string{"", "meeus", " Approx "} {
		f, err := horizon.New(horizon.WithModel(name))
		if err != nil {
			t.Fatalf("New(%q) error = %v", name, err)
		}
		if f.Model() == "" {
			t.Errorf("New(%q).Model() is empty", name)
		}
	}
}

func TestFinder_Observer(t *testing.T) {
	rec := &recorder{}
	f, err := horizon.New(horizon.WithObserver(rec))
	if err != nil {
		t.Fatal(err)
	}
	date := time.Date(2025, time.April, 28, 0, 0, 0, 0, time.UTC)

	if _, err := f.FindRiseSet(horizon.Sun, london, date, horizon.Degrees(horizon.SunStandardAltitude)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.FindCrossings(horizon.Moon, london, date, date.Add(24*time.Hour), horizon.Degrees(0)); err != nil {
		t.Fatal(err)
	}
	_, _ = f.FindRiseSet(horizon.Sun, horizon.Coordinates{Lat: 91}, date, horizon.Degrees(0))

	if want := []string{"riseset/sun", "crossings/moon", "riseset/sun"}; strings.Join(rec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("observed %v, want %v", rec.calls, want)
	}

	rs := rec.stats[0]
	if rs.Samples != 241 || rs.Events != 2 || rs.Err != nil {
		t.Errorf("riseset stats = %+v", rs)
	}
	// Coarse samples plus the bisection probes of both events.
	if rs.Evaluations < rs.Samples+rs.Iterations {
		t.Errorf("evaluations %d < samples %d + iterations %d", rs.Evaluations, rs.Samples, rs.Iterations)
	}
	if cs := rec.stats[1]; cs.Samples != 289 {
		t.Errorf("crossings samples = %d, want 289", cs.Samples)
	}
	if bad := rec.stats[2]; !errors.Is(bad.Err, horizon.ErrInvalidInput) {
		t.Errorf("invalid search err = %v", bad.Err)
	}
}

func TestFinder_LogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f, err := horizon.New(horizon.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.SlideIntoSunset(london, time.Date(2025, time.April, 28, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"search complete", "op=riseset", "body=sun", "model=meeus"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestFindRiseSet_InvalidInput(t *testing.T) {
	date := time.Date(2025, time.April, 28, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		opts []horizon.SearchOption
	}{
		{"zero tolerance", []horizon.SearchOption{horizon.WithTolerance(0)}},
		{"negative tolerance", []horizon.SearchOption{horizon.WithTolerance(-time.Second)}},
		{"zero step", []horizon.SearchOption{horizon.WithStep(0)}},
		{"step wider than window", []horizon.SearchOption{horizon.WithStep(25 * time.Hour)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := horizon.FindRiseSet(horizon.Sun, london, date, horizon.Degrees(horizon.SunStandardAltitude), tt.opts...)
			if !errors.Is(err, horizon.ErrInvalidInput) {
				t.Errorf("FindRiseSet error = %v, want ErrInvalidInput", err)
			}
			_, err = horizon.FindCrossings(horizon.Sun, london, date, date.Add(24*time.Hour), horizon.Degrees(horizon.SunStandardAltitude), tt.opts...)
			if !errors.Is(err, horizon.ErrInvalidInput) {
				t.Errorf("FindCrossings error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestFinder_Defaults(t *testing.T) {
	rec := &recorder{}
	f, err := horizon.New(horizon.WithObserver(rec), horizon.WithDefaults(horizon.Defaults{RiseSetStep: 12 * time.Minute}))
	if err != nil {
		t.Fatal(err)
	}
	date := time.Date(2025, time.April, 28, 0, 0, 0, 0, time.UTC)
	if _, err := f.FindRiseSet(horizon.Sun, london, date, horizon.Degrees(0)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.FindRiseSet(horizon.Sun, london, date, horizon.Degrees(0), horizon.WithStep(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if got := rec.stats[0].Samples; got != 121 {
		t.Errorf("default step samples = %d, want 121", got)
	}
	if got := rec.stats[1].Samples; got != 25 {
		t.Errorf("per-call step samples = %d, want 25", got)
	}
}

func TestModelsAgree(t *testing.T) {
	approx, err := horizon.New(horizon.WithModel("approx"))
	if err != nil {
		t.Fatal(err)
	}
	meeus := horizon.Default()

	places := []horizon.Coordinates{
		london,
		{Lat: 33.4484, Lon: -112.0740},
		{Lat: -33.8688, Lon: 151.2093},
	}
	date := time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC)

	for _, loc := range places {
		for _, body := range []horizon.Body{horizon.Sun, horizon.Moon} {
			a, err := approx.RiseSetFor(body, loc, date)
			if err != nil {
				t.Fatalf("approx %v: %v", body, err)
			}
			m, err := meeus.RiseSetFor(body, loc, date)
			if err != nil {
				t.Fatalf("meeus %v: %v", body, err)
			}
			// The low-precision lunar series is good to a few minutes. An
			// event close to midnight may fall on either side of it.
			tol := 2 * time.Minute
			if body == horizon.Moon {
				tol = 10 * time.Minute
			}
			if body == horizon.Sun && (a.HasRise != m.HasRise || a.HasSet != m.HasSet) {
				t.Errorf("%v at %+v: approx %+v, meeus %+v", body, loc, a, m)
				continue
			}
			if a.HasRise && m.HasRise && a.Rise.Sub(m.Rise).Abs() > tol {
				t.Errorf("%v rise at %+v: approx %v, meeus %v", body, loc, a.Rise, m.Rise)
			}
			if a.HasSet && m.HasSet && a.Set.Sub(m.Set).Abs() > tol {
				t.Errorf("%v set at %+v: approx %v, meeus %v", body, loc, a.Set, m.Set)
			}
		}
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		in      string
		want    horizon.Body
		wantErr bool
	}{
		{"sun", horizon.Sun, false},
		{" Moon ", horizon.Moon, false},
		{"MOON", horizon.Moon, false},
		{"mars", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := horizon.ParseBody(tt.in)
		if tt.wantErr {
			if !errors.Is(err, horizon.ErrUnknownBody) {
				t.Errorf("ParseBody(%q) err = %v, want ErrUnknownBody", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseBody(%q) = %v, %v", tt.in, got, err)
		}
	}
}
