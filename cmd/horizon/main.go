package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thurmanmarka/horizon"
	"github.com/thurmanmarka/horizon/internal/config"
	"github.com/thurmanmarka/horizon/internal/logging"
)

func main() {
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// - If no args or first arg starts with "-", run rise/set mode.
	// - Otherwise treat the first arg as a subcommand.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runRiseSet(cfg, os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "crossings":
		runCrossings(cfg, os.Args[2:])
	case "twilight":
		runTwilight(cfg, os.Args[2:])
	case "position":
		runPosition(cfg, os.Args[2:])
	case "target":
		runTarget(cfg, os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `horizon – when the Sun and Moon cross the horizon

Usage:
  horizon [flags]              # Sun/Moon rise/set (default mode)
  horizon crossings [flags]    # every crossing of a target altitude in a window
  horizon twilight [flags]     # civil/nautical/astronomical twilight, golden and blue hour
  horizon position [flags]     # altitude, azimuth and distance at an instant
  horizon target [flags]       # recommended lunar target altitude at an instant

Defaults are read from $HORIZON_CONFIG and HORIZON_* environment variables.
Run "horizon <subcommand> -h" for the flags of each mode.
`)
}

// ---------------------
// Shared flags
// ---------------------

type common struct {
	lat, lon, elev *float64
	tz             *string
	model          *string
	jsonOut        *bool
}

func commonFlags(fs *flag.FlagSet, cfg *config.Config) common {
	return common{
		lat:     fs.Float64("lat", 0, "latitude in degrees (north positive)"),
		lon:     fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)"),
		elev:    fs.Float64("elev", 0, "observer elevation in meters"),
		tz:      fs.String("tz", "Local", "IANA time zone name for dates and output (e.g. America/Phoenix)"),
		model:   fs.String("model", cfg.Model, "ephemeris model: meeus or approx"),
		jsonOut: fs.Bool("json", false, "output result as JSON"),
	}
}

func (c common) coordinates() horizon.Coordinates {
	if *c.lat == 0 && *c.lon == 0 {
		log.Println("warning: lat=0 lon=0 (Gulf of Guinea). Use -lat and -lon to set a real location.")
	}
	return horizon.Coordinates{Lat: *c.lat, Lon: *c.lon, Elevation: *c.elev}
}

func (c common) location() *time.Location {
	loc, err := time.LoadLocation(*c.tz)
	if err != nil {
		log.Fatalf("invalid time zone %q: %v", *c.tz, err)
	}
	return loc
}

func (c common) finder(cfg *config.Config) *horizon.Finder {
	f, err := horizon.New(
		horizon.WithModel(*c.model),
		horizon.WithLogger(logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})),
		horizon.WithDefaults(horizon.Defaults{
			RiseSetStep:  cfg.RiseSetStep,
			CrossingStep: cfg.CrossingStep,
			Tolerance:    cfg.Tolerance,
		}),
	)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return f
}

func parseBody(s string) horizon.Body {
	b, err := horizon.ParseBody(s)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return b
}

// parseDate returns midnight of dateS in loc, or of today when empty.
func parseDate(dateS string, loc *time.Location) time.Time {
	if dateS == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	}
	date, err := time.ParseInLocation(time.DateOnly, dateS, loc)
	if err != nil {
		log.Fatalf("invalid -date %q: %v", dateS, err)
	}
	return date
}

// parseTime tries a couple of common formats, defaulting to now.
func parseTime(name, s string, loc *time.Location) time.Time {
	if s == "" {
		return time.Now().In(loc)
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		time.DateOnly,
	}
	var parseErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t
		}
		parseErr = err
	}
	log.Fatalf("could not parse -%s %q: %v", name, s, parseErr)
	return time.Time{}
}

// parseTarget reads -target: empty for the body's standard altitude,
// "lunar" for the distance-dependent lunar limb target, or degrees.
func parseTarget(f *horizon.Finder, s string, body horizon.Body, coords horizon.Coordinates, refraction float64) horizon.Target {
	switch {
	case s == "" && body == horizon.Moon:
		return horizon.Degrees(horizon.MoonStandardAltitude)
	case s == "":
		return horizon.Degrees(horizon.SunStandardAltitude)
	case strings.EqualFold(s, "lunar"):
		return f.LunarTarget(coords, refraction)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatalf("invalid -target %q: want degrees or \"lunar\"", s)
	}
	return horizon.Degrees(v)
}

func searchOptions(step, tol time.Duration) []horizon.SearchOption {
	var opts []horizon.SearchOption
	if step > 0 {
		opts = append(opts, horizon.WithStep(step))
	}
	if tol > 0 {
		opts = append(opts, horizon.WithTolerance(tol))
	}
	return opts
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
}

func formatEvent(t time.Time, found bool, status horizon.Status) string {
	if !found {
		return "none (" + status.String() + ")"
	}
	return t.Format(time.RFC3339)
}

// ---------------------
// Rise/set (default) mode
// ---------------------

func runRiseSet(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("horizon", flag.ExitOnError)
	c := commonFlags(fs, cfg)
	dateS := fs.String("date", "", "date in YYYY-MM-DD (optional, defaults to today in -tz)")
	bodyS := fs.String("body", "sun", "celestial body: sun or moon")
	event := fs.String("event", "both", "event: rise, set, or both")
	targetS := fs.String("target", "", `target altitude in degrees, or "lunar" (default: the body's standard altitude)`)
	step := fs.Duration("step", 0, "coarse sampling interval (default from config)")
	tol := fs.Duration("tolerance", 0, "refinement tolerance (default from config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: horizon [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	body := parseBody(*bodyS)
	coords := c.coordinates()
	date := parseDate(*dateS, c.location())
	f := c.finder(cfg)

	var (
		rs  horizon.RiseSet
		err error
	)
	if *targetS == "" && *step == 0 && *tol == 0 {
		rs, err = f.RiseSetFor(body, coords, date)
	} else {
		target := parseTarget(f, *targetS, body, coords, cfg.Refraction)
		rs, err = f.FindRiseSet(body, coords, date, target, searchOptions(*step, *tol)...)
	}
	if err != nil && !errors.Is(err, horizon.ErrNoRiseNoSet) {
		log.Fatalf("error computing rise/set: %v", err)
	}

	if *c.jsonOut {
		printRiseSetJSON(body, coords, date, *event, rs)
	} else {
		printRiseSetHuman(body, coords, date, *event, rs)
	}
}

func printRiseSetHuman(body horizon.Body, coords horizon.Coordinates, date time.Time, event string, rs horizon.RiseSet) {
	name := map[horizon.Body]string{
		horizon.Sun:  "Sun",
		horizon.Moon: "Moon",
	}[body]

	fmt.Printf("%s rise/set for lat=%.6f lon=%.6f\n", name, coords.Lat, coords.Lon)
	fmt.Printf("Date: %s (%s)\n\n", date.Format(time.DateOnly), date.Location())

	rise := formatEvent(rs.Rise, rs.HasRise, rs.RiseStatus)
	set := formatEvent(rs.Set, rs.HasSet, rs.SetStatus)
	switch strings.ToLower(event) {
	case "rise":
		fmt.Printf("Rise: %s\n", rise)
	case "set":
		fmt.Printf("Set:  %s\n", set)
	case "both":
		fmt.Printf("Rise: %s\n", rise)
		fmt.Printf("Set:  %s\n", set)
	default:
		fmt.Fprintf(os.Stderr, "unknown event %q, showing both\n", event)
		fmt.Printf("Rise: %s\n", rise)
		fmt.Printf("Set:  %s\n", set)
	}
}

type riseSetOutput struct {
	Body       string     `json:"body"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Date       string     `json:"date"` // YYYY-MM-DD
	Rise       *time.Time `json:"rise,omitempty"`
	Set        *time.Time `json:"set,omitempty"`
	RiseStatus string     `json:"rise_status"`
	SetStatus  string     `json:"set_status"`
	Timezone   string     `json:"timezone"`
}

func printRiseSetJSON(body horizon.Body, coords horizon.Coordinates, date time.Time, event string, rs horizon.RiseSet) {
	out := riseSetOutput{
		Body:       body.String(),
		Latitude:   coords.Lat,
		Longitude:  coords.Lon,
		Date:       date.Format(time.DateOnly),
		RiseStatus: rs.RiseStatus.String(),
		SetStatus:  rs.SetStatus.String(),
		Timezone:   date.Location().String(),
	}
	e := strings.ToLower(event)
	if rs.HasRise && e != "set" {
		out.Rise = &rs.Rise
	}
	if rs.HasSet && e != "rise" {
		out.Set = &rs.Set
	}
	printJSON(out)
}

// ---------------------
// crossings subcommand
// ---------------------

func runCrossings(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("crossings", flag.ExitOnError)
	c := commonFlags(fs, cfg)
	bodyS := fs.String("body", "sun", "celestial body: sun or moon")
	dateS := fs.String("date", "", "search this calendar day (used when -start/-end are absent)")
	startS := fs.String("start", "", "window start (RFC3339 or YYYY-MM-DDTHH:MM in -tz)")
	endS := fs.String("end", "", "window end (RFC3339 or YYYY-MM-DDTHH:MM in -tz)")
	targetS := fs.String("target", "", `target altitude in degrees, or "lunar"`)
	step := fs.Duration("step", 0, "coarse sampling interval (default from config)")
	tol := fs.Duration("tolerance", 0, "refinement tolerance (default from config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: horizon crossings [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	body := parseBody(*bodyS)
	coords := c.coordinates()
	loc := c.location()
	f := c.finder(cfg)

	var start, end time.Time
	if *startS == "" && *endS == "" {
		start = parseDate(*dateS, loc)
		end = start.AddDate(0, 0, 1)
	} else {
		start = parseTime("start", *startS, loc)
		end = parseTime("end", *endS, loc)
	}
	if end.Sub(start) > cfg.MaxWindow {
		log.Fatalf("window %v exceeds max_window %v", end.Sub(start), cfg.MaxWindow)
	}

	target := parseTarget(f, *targetS, body, coords, cfg.Refraction)
	found, err := f.FindCrossings(body, coords, start, end, target, searchOptions(*step, *tol)...)
	if err != nil {
		log.Fatalf("error finding crossings: %v", err)
	}

	if *c.jsonOut {
		type crossing struct {
			Time      time.Time `json:"time"`
			Direction string    `json:"direction"`
		}
		out := make([]crossing, len(found))
		for i, x := range found {
			out[i] = crossing{Time: x.Time.In(loc), Direction: x.Direction.String()}
		}
		printJSON(map[string]any{
			"body":      body.String(),
			"start":     start,
			"end":       end,
			"crossings": out,
		})
		return
	}

	fmt.Printf("%s crossings for lat=%.6f lon=%.6f\n", body, coords.Lat, coords.Lon)
	fmt.Printf("Window: %s .. %s\n\n", start.Format(time.RFC3339), end.Format(time.RFC3339))
	if len(found) == 0 {
		fmt.Println("(no crossings)")
		return
	}
	for _, x := range found {
		fmt.Printf("%-4s %s\n", x.Direction, x.Time.In(loc).Format(time.RFC3339))
	}
}

// ---------------------
// twilight subcommand
// ---------------------

func runTwilight(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("twilight", flag.ExitOnError)
	c := commonFlags(fs, cfg)
	dateS := fs.String("date", "", "date in YYYY-MM-DD (optional, defaults to today in -tz)")
	kind := fs.String("kind", "civil", "civil, nautical, astronomical, golden or blue")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: horizon twilight [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	coords := c.coordinates()
	date := parseDate(*dateS, c.location())
	f := c.finder(cfg)

	switch strings.ToLower(*kind) {
	case "golden", "blue":
		find := f.GoldenHourFor
		if strings.EqualFold(*kind, "blue") {
			find = f.BlueHourFor
		}
		phases, err := find(coords, date)
		if err != nil && !errors.Is(err, horizon.ErrNoRiseNoSet) {
			log.Fatalf("error computing %s hour: %v", *kind, err)
		}
		if *c.jsonOut {
			printJSON(phases)
			return
		}
		fmt.Printf("%s hour on %s (%s)\n\n", *kind, date.Format(time.DateOnly), date.Location())
		printPhase("Morning", phases.Morning, phases.HasMorning)
		printPhase("Evening", phases.Evening, phases.HasEvening)
	default:
		tk, err := horizon.ParseTwilightKind(*kind)
		if err != nil {
			log.Fatalf("%v", err)
		}
		rs, err := f.TwilightFor(coords, date, tk)
		if err != nil && !errors.Is(err, horizon.ErrNoRiseNoSet) {
			log.Fatalf("error computing twilight: %v", err)
		}
		if *c.jsonOut {
			printRiseSetJSON(horizon.Sun, coords, date, "both", rs)
			return
		}
		fmt.Printf("%s twilight on %s (%s)\n\n", tk, date.Format(time.DateOnly), date.Location())
		fmt.Printf("Dawn: %s\n", formatEvent(rs.Rise, rs.HasRise, rs.RiseStatus))
		fmt.Printf("Dusk: %s\n", formatEvent(rs.Set, rs.HasSet, rs.SetStatus))
	}
}

func printPhase(label string, w horizon.PhaseWindow, ok bool) {
	if !ok {
		fmt.Printf("%s: none\n", label)
		return
	}
	fmt.Printf("%s: %s – %s (%s)\n", label, w.Start.Format("15:04:05"), w.End.Format("15:04:05"), w.End.Sub(w.Start).Round(time.Second))
}

// ---------------------
// position subcommand
// ---------------------

func runPosition(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("position", flag.ExitOnError)
	c := commonFlags(fs, cfg)
	bodyS := fs.String("body", "sun", "celestial body: sun or moon")
	timeS := fs.String("time", "", "time in RFC3339 or 'YYYY-MM-DDTHH:MM' (optional, defaults to now in -tz)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: horizon position [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	body := parseBody(*bodyS)
	coords := c.coordinates()
	t := parseTime("time", *timeS, c.location())
	p, err := c.finder(cfg).Position(body, coords, t)
	if err != nil {
		log.Fatalf("error computing position: %v", err)
	}

	if *c.jsonOut {
		printJSON(p)
		return
	}
	fmt.Printf("%s at %s\n", body, t.Format(time.RFC3339))
	fmt.Printf("  Altitude  : %.4f° (apparent %.4f°)\n", p.Altitude, p.ApparentAltitude)
	fmt.Printf("  Azimuth   : %.4f°\n", p.Azimuth)
	fmt.Printf("  RA / Dec  : %.4f° / %.4f°\n", p.RA, p.Dec)
	fmt.Printf("  Distance  : %.1f km\n", p.DistanceKm)
	fmt.Printf("  Visible   : %t\n", p.Visible)
}

// ---------------------
// target subcommand
// ---------------------

func runTarget(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("target", flag.ExitOnError)
	c := commonFlags(fs, cfg)
	timeS := fs.String("time", "", "time in RFC3339 or 'YYYY-MM-DDTHH:MM' (optional, defaults to now in -tz)")
	refraction := fs.Float64("refraction", cfg.Refraction, "horizon refraction in degrees")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: horizon target [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	coords := c.coordinates()
	t := parseTime("time", *timeS, c.location())
	f := c.finder(cfg)
	p, err := f.Position(horizon.Moon, coords, t)
	if err != nil {
		log.Fatalf("error computing lunar distance: %v", err)
	}
	alt := f.RecommendedTargetAltitude(coords, t, *refraction)

	if *c.jsonOut {
		printJSON(map[string]any{
			"time":         t,
			"distance_km":  p.DistanceKm,
			"semidiameter": horizon.Semidiameter(p.DistanceKm),
			"refraction":   *refraction,
			"target":       alt,
		})
		return
	}
	fmt.Printf("Lunar target altitude at %s\n", t.Format(time.RFC3339))
	fmt.Printf("  Distance     : %.1f km\n", p.DistanceKm)
	fmt.Printf("  Semidiameter : %.4f°\n", horizon.Semidiameter(p.DistanceKm))
	fmt.Printf("  Refraction   : %.4f°\n", *refraction)
	fmt.Printf("  Target       : %.4f°\n", alt)
}
