package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/thurmanmarka/horizon"
)

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

func requiredFloat(q url.Values, key string) (float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, badRequest("missing %s", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, badRequest("invalid %s %q", key, raw)
	}
	return v, nil
}

func optionalFloat(q url.Values, key string, def float64) (float64, error) {
	if strings.TrimSpace(q.Get(key)) == "" {
		return def, nil
	}
	return requiredFloat(q, key)
}

// coordinates reads lat, lon and the optional elevation in meters.
func coordinates(q url.Values) (horizon.Coordinates, error) {
	lat, err := requiredFloat(q, "lat")
	if err != nil {
		return horizon.Coordinates{}, err
	}
	lon, err := requiredFloat(q, "lon")
	if err != nil {
		return horizon.Coordinates{}, err
	}
	elev, err := optionalFloat(q, "elevation", 0)
	if err != nil {
		return horizon.Coordinates{}, err
	}
	loc := horizon.Coordinates{Lat: lat, Lon: lon, Elevation: elev}
	return loc, loc.Validate()
}

// body reads the body parameter, defaulting to the Sun.
func body(q url.Values) (horizon.Body, error) {
	raw := q.Get("body")
	if raw == "" {
		return horizon.Sun, nil
	}
	return horizon.ParseBody(raw)
}

// date reads date (YYYY-MM-DD) in the time zone named by tz, defaulting to
// today in that zone.
func date(q url.Values, now time.Time) (time.Time, error) {
	tz := time.UTC
	if name := q.Get("tz"); name != "" {
		l, err := time.LoadLocation(name)
		if err != nil {
			return time.Time{}, badRequest("unknown tz %q", name)
		}
		tz = l
	}
	raw := q.Get("date")
	if raw == "" {
		y, m, d := now.In(tz).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, tz), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, tz)
	if err != nil {
		return time.Time{}, badRequest("invalid date %q, want YYYY-MM-DD", raw)
	}
	return t, nil
}

func instant(q url.Values, key string) (time.Time, error) {
	raw := q.Get(key)
	if raw == "" {
		return time.Time{}, badRequest("missing %s", key)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, badRequest("invalid %s %q, want RFC3339", key, raw)
	}
	return t, nil
}

// target reads the target altitude in degrees. "lunar" selects the Moon's
// distance-dependent upper-limb target; absent means the body's standard
// altitude.
func (s *Server) target(q url.Values, b horizon.Body, loc horizon.Coordinates) (horizon.Target, error) {
	raw := strings.TrimSpace(q.Get("target"))
	switch {
	case raw == "" && b == horizon.Moon:
		return horizon.Degrees(horizon.MoonStandardAltitude), nil
	case raw == "":
		return horizon.Degrees(horizon.SunStandardAltitude), nil
	case strings.EqualFold(raw, "lunar"):
		if b != horizon.Moon {
			return nil, badRequest("target=lunar applies to the moon only")
		}
		return s.finder.LunarTarget(loc, s.opts.Refraction), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < -90 || v > 90 {
		return nil, badRequest("invalid target %q", raw)
	}
	return horizon.Degrees(v), nil
}

// searchOptions reads the optional step and tolerance durations.
func searchOptions(q url.Values) ([]horizon.SearchOption, error) {
	var opts []horizon.SearchOption
	for _, p := range []struct {
		key string
		opt func(time.Duration) horizon.SearchOption
	}{
		{"step", horizon.WithStep},
		{"tolerance", horizon.WithTolerance},
	} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, badRequest("invalid %s %q", p.key, raw)
		}
		opts = append(opts, p.opt(d))
	}
	return opts, nil
}
