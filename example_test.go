package horizon_test

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/horizon"
)

// ExampleSlideIntoSunset demonstrates computing sunrise and sunset for a location.
func ExampleSlideIntoSunset() {
	loc := horizon.Coordinates{
		Lat: 40.7128,  // New York City latitude
		Lon: -74.0060, // New York City longitude
	}

	// Use a local date; the time zone is taken from the date's Location.
	locNY, _ := time.LoadLocation("America/New_York")
	date := time.Date(2025, time.November, 30, 0, 0, 0, 0, locNY)

	rs, err := horizon.SlideIntoSunset(loc, date)
	if err != nil {
		panic(err)
	}

	fmt.Println("Sunrise:", rs.Rise.Format(time.RFC3339))
	fmt.Println("Sunset:", rs.Set.Format(time.RFC3339))
	// Intentionally no // Output: block so this stays a documentation example
	// and is not validated as a test.
}

// ExampleFindRiseSet looks for the moments the Moon's upper limb touches the
// horizon, with a target that follows the Moon's distance.
func ExampleFindRiseSet() {
	f, err := horizon.New(horizon.WithModel("meeus"))
	if err != nil {
		panic(err)
	}

	london := horizon.Coordinates{Lat: 51.5, Lon: -0.127}
	date := time.Date(2025, time.April, 28, 0, 0, 0, 0, time.UTC)

	rs, err := f.FindRiseSet(horizon.Moon, london, date, f.LunarTarget(london, horizon.StandardRefraction),
		horizon.WithTolerance(100*time.Millisecond))
	if err != nil {
		panic(err)
	}
	if rs.HasRise {
		fmt.Println("Moonrise:", rs.Rise.Format(time.RFC3339))
	} else {
		fmt.Println("No moonrise:", rs.RiseStatus)
	}
	if rs.HasSet {
		fmt.Println("Moonset:", rs.Set.Format(time.RFC3339))
	} else {
		fmt.Println("No moonset:", rs.SetStatus)
	}
}

// ExampleFindCrossings lists every crossing of the civil twilight altitude
// over three days.
func ExampleFindCrossings() {
	oslo := horizon.Coordinates{Lat: 59.91, Lon: 10.75}
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	crossings, err := horizon.FindCrossings(horizon.Sun, oslo, start, start.Add(72*time.Hour), horizon.Degrees(-6))
	if err != nil {
		panic(err)
	}
	for _, c := range crossings {
		fmt.Println(c.Direction, c.Time.Format(time.RFC3339))
	}
}

// ExampleDaylightHours demonstrates calculating daylight duration.
func ExampleDaylightHours() {
	loc := horizon.Coordinates{
		Lat: 33.4484,   // Phoenix, AZ
		Lon: -112.0740, // Phoenix longitude
	}

	locPHX, _ := time.LoadLocation("America/Phoenix")

	// Summer solstice
	summer := time.Date(2025, time.June, 21, 0, 0, 0, 0, locPHX)
	summerHours, _ := horizon.DaylightHours(loc, summer)
	fmt.Printf("Summer solstice daylight: %.2f hours\n", summerHours)

	// Winter solstice
	winter := time.Date(2025, time.December, 21, 0, 0, 0, 0, locPHX)
	winterHours, _ := horizon.DaylightHours(loc, winter)
	fmt.Printf("Winter solstice daylight: %.2f hours\n", winterHours)
}
