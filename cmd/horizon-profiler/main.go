package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/thurmanmarka/horizon"
	"github.com/thurmanmarka/horizon/internal/config"
	"github.com/thurmanmarka/horizon/internal/logging"
)

// The profiler compares computed rise/set (or twilight) times against a
// reference table, either a CSV (see readReference) or, with -oracle, the
// sunrise equation over a date range.
func main() {
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var (
		lat      = flag.Float64("lat", 0, "latitude in degrees (north positive)")
		lon      = flag.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
		elev     = flag.Float64("elev", 0, "observer elevation in meters")
		tzName   = flag.String("tz", "UTC", "IANA time zone name (e.g. America/Phoenix)")
		bodyS    = flag.String("body", "sun", "celestial body: sun or moon")
		model    = flag.String("model", cfg.Model, "ephemeris model: meeus or approx")
		year     = flag.Int("year", 0, "year of the ephemeris data (optional, used for sanity checks)")
		refCSV   = flag.String("refcsv", "", "path to reference ephemeris CSV file (date,rise,set)")
		oracle   = flag.Bool("oracle", false, "compare the Sun against the sunrise equation instead of a CSV")
		fromS    = flag.String("from", "", "first date (YYYY-MM-DD) for -oracle")
		toS      = flag.String("to", "", "last date (YYYY-MM-DD) for -oracle")
		verbose  = flag.Bool("verbose", false, "print per-day errors instead of only summary")
		twilight = flag.String("twilight", "", "twilight kind: civil, nautical, astronomical (Sun only)")
		outCSV   = flag.String("outcsv", "", "optional path to write per-row error CSV")
		workers  = flag.Int("workers", cfg.Workers, "number of days computed concurrently")
	)
	flag.Parse()

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		log.Fatalf("failed to load timezone %q: %v", *tzName, err)
	}
	body, err := horizon.ParseBody(*bodyS)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var (
		useTwilight  bool
		twilightKind horizon.TwilightKind
	)
	if *twilight != "" {
		if body != horizon.Sun {
			log.Fatalf("twilight mode only supported for -body sun")
		}
		if twilightKind, err = horizon.ParseTwilightKind(*twilight); err != nil {
			log.Fatalf("%v", err)
		}
		useTwilight = true
	}
	if *oracle && (body != horizon.Sun || useTwilight) {
		log.Fatalf("-oracle compares sunrise and sunset only; use -body sun without -twilight")
	}

	// Build mode description once
	modeDesc := strings.ToUpper(body.String())
	if useTwilight {
		modeDesc = fmt.Sprintf("SUN (%s TWILIGHT)", strings.ToUpper(twilightKind.String()))
	}
	if *oracle {
		modeDesc += " vs SUNRISE EQUATION"
	}

	if *lat == 0 && *lon == 0 {
		log.Println("warning: lat=0 lon=0 (Gulf of Guinea). Did you mean to set -lat/-lon?")
	}
	coords := horizon.Coordinates{Lat: *lat, Lon: *lon, Elevation: *elev}

	rows, skipped := loadRows(*oracle, *refCSV, *fromS, *toS, coords, loc)
	if *year != 0 {
		for _, r := range rows {
			if r.date.Year() != *year {
				// Just warn; don't skip.
				log.Printf("row %d: warning: date %s not in year %d", r.line, r.date.Format(time.DateOnly), *year)
			}
		}
	}

	f, err := horizon.New(
		horizon.WithModel(*model),
		horizon.WithLogger(logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})),
		horizon.WithDefaults(horizon.Defaults{RiseSetStep: cfg.RiseSetStep, CrossingStep: cfg.CrossingStep, Tolerance: cfg.Tolerance}),
	)
	if err != nil {
		log.Fatalf("%v", err)
	}

	compute := func(r refRow) (horizon.RiseSet, error) {
		if useTwilight {
			// In twilight mode, interpret CSV "rise" as dawn and "set" as dusk.
			return f.TwilightFor(coords, r.date, twilightKind)
		}
		return f.RiseSetFor(body, coords, r.date)
	}

	started := time.Now()
	results, err := profile(context.Background(), rows, *workers, compute)
	if err != nil {
		log.Printf("some rows failed:\n%v", err)
	}
	skipped += len(rows) - len(results)
	elapsed := time.Since(started)

	if *outCSV != "" {
		if err := writeResults(*outCSV, modeDesc, results); err != nil {
			log.Fatalf("%v", err)
		}
	}

	var riseStats, setStats, riseSignedStats, setSignedStats stats
	for _, r := range results {
		riseStats.add(r.riseErr)
		setStats.add(r.setErr)
		riseSignedStats.add(r.riseSigned)
		setSignedStats.add(r.setSigned)

		if *verbose {
			fmt.Printf("%s %s: rise err=%.2f min (got=%s ref=%s), set err=%.2f min (got=%s ref=%s)\n",
				r.row.date.Format(time.DateOnly), modeDesc,
				r.riseErr, clock(r.got.Rise, r.got.HasRise), clock(r.row.rise, !r.row.rise.IsZero()),
				r.setErr, clock(r.got.Set, r.got.HasSet), clock(r.row.set, !r.row.set.IsZero()))
		}
	}

	fmt.Println("=== horizon profiler summary ===")
	fmt.Printf("Mode:    %s\n", modeDesc)
	fmt.Printf("Model:   %s\n", f.Model())
	fmt.Printf("Lat/Lon: %.4f / %.4f\n", *lat, *lon)
	fmt.Printf("TZ:      %s\n", loc.String())
	fmt.Printf("Rows:    %d (processed), %d skipped\n", len(results), skipped)
	fmt.Printf("Elapsed: %s (%d workers)\n", elapsed.Round(time.Millisecond), *workers)

	if riseStats.count == 0 && setStats.count == 0 {
		fmt.Println("No valid rows to compute stats.")
		return
	}

	riseStats.print(os.Stdout, "Rise error (minutes)", "avg")
	setStats.print(os.Stdout, "Set error (minutes)", "avg")
	riseSignedStats.print(os.Stdout, "Rise signed error (minutes, our - ref)", "mean")
	setSignedStats.print(os.Stdout, "Set signed error (minutes, our - ref)", "mean")
}

// loadRows returns the reference rows and the number of unparseable rows.
func loadRows(oracle bool, refCSV, fromS, toS string, coords horizon.Coordinates, loc *time.Location) ([]refRow, int) {
	if oracle {
		if fromS == "" || toS == "" {
			log.Fatalf("-oracle needs -from and -to")
		}
		from, err := time.ParseInLocation(time.DateOnly, fromS, loc)
		if err != nil {
			log.Fatalf("invalid -from %q: %v", fromS, err)
		}
		to, err := time.ParseInLocation(time.DateOnly, toS, loc)
		if err != nil {
			log.Fatalf("invalid -to %q: %v", toS, err)
		}
		if to.Before(from) {
			log.Fatalf("-to %s is before -from %s", toS, fromS)
		}
		return oracleRows(coords, from, to, loc), 0
	}

	if refCSV == "" {
		log.Fatalf("missing -refcsv (path to reference CSV) or -oracle")
	}
	file, err := os.Open(refCSV)
	if err != nil {
		log.Fatalf("failed to open refcsv %q: %v", refCSV, err)
	}
	defer file.Close()

	rows, err := readReference(file, loc)
	if err != nil {
		if len(rows) == 0 {
			log.Fatalf("%v", err)
		}
		log.Printf("skipping rows:\n%v", err)
		return rows, countLines(err)
	}
	return rows, 0
}

// countLines counts the messages in a (possibly multi-) error.
func countLines(err error) int {
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		return len(u.Unwrap())
	}
	return 1
}

func clock(t time.Time, ok bool) string {
	if !ok {
		return "--:--"
	}
	return t.Format("15:04")
}

func writeResults(path, modeDesc string, results []result) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create outcsv %q: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{
		"date",
		"mode",
		"rise_err",
		"set_err",
		"rise_signed",
		"set_signed",
		"rise_status",
		"set_status",
	}); err != nil {
		return fmt.Errorf("failed to write outcsv header: %w", err)
	}
	for _, r := range results {
		if err := w.Write([]string{
			r.row.date.Format(time.DateOnly),
			modeDesc,
			fmt.Sprintf("%.6f", r.riseErr),
			fmt.Sprintf("%.6f", r.setErr),
			fmt.Sprintf("%.6f", r.riseSigned),
			fmt.Sprintf("%.6f", r.setSigned),
			r.got.RiseStatus.String(),
			r.got.SetStatus.String(),
		}); err != nil {
			return fmt.Errorf("row %d: failed to write outcsv: %w", r.row.line, err)
		}
	}
	w.Flush()
	return w.Error()
}
