package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SimulationRequest describes one GPS simulation: where the receiver should
// believe it is, and when.
//
// SimulationRequest contains everything the signal generator needs besides
// the ephemeris file:
//   - Latitude and Longitude in WGS-84 decimal degrees
//   - Altitude in meters above the ellipsoid
//   - StartTime, the simulated GPS epoch with second precision
//
// A request is immutable once constructed. Inputs are validated for
// well-formedness only (a parseable number, a parseable date-time); no
// range checking of coordinates or altitude is performed.
//
// Example:
//
//	lat, _ := model.ParseCoordinate("-22,9519") // comma decimals accepted
//	lon, _ := model.ParseCoordinate("-43.2105")
//	alt, _ := model.ParseCoordinate("710")
//	start, _ := model.ParseDateTime("2025-06-05", "10:00:00")
//
//	req := model.SimulationRequest{
//	    Latitude:  lat,
//	    Longitude: lon,
//	    Altitude:  alt,
//	    StartTime: start,
//	}
//	fmt.Println(req.BaseName())
//	// gps_sim_-22.9519_-43.2105_710_20250605_100000
type SimulationRequest struct {
	// Latitude in WGS-84 decimal degrees. Negative is south.
	Latitude float64

	// Longitude in WGS-84 decimal degrees. Negative is west.
	Longitude float64

	// Altitude in meters.
	Altitude float64

	// StartTime is the simulated epoch, with second precision.
	StartTime time.Time
}

// ParseCoordinate parses a latitude, longitude or altitude value entered by
// a user.
//
// Commas are accepted as decimal separators and converted to dots before
// parsing, so both "-22.9519" and "-22,9519" yield the same value. Anything
// that does not parse as a floating point number afterwards is rejected.
//
// Example:
//
//	v, err := model.ParseCoordinate("710")    // 710.0
//	v, err = model.ParseCoordinate("-43,21")  // -43.21
//	v, err = model.ParseCoordinate("abc")     // error
func ParseCoordinate(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// ParseDateTime parses the simulation date and start time entered by a user.
//
// The date must be in YYYY-MM-DD form and the time in HH:MM:SS form
// (24-hour clock). The two are combined into a single timestamp.
//
// Example:
//
//	t, err := model.ParseDateTime("2025-06-05", "10:00:00")
func ParseDateTime(dateStr, timeStr string) (time.Time, error) {
	combined := strings.TrimSpace(dateStr) + " " + strings.TrimSpace(timeStr)
	t, err := time.Parse("2006-01-02 15:04:05", combined)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q: want YYYY-MM-DD and HH:MM:SS", combined)
	}
	return t, nil
}

// LocationArg renders the request position as the comma-separated
// lat,lon,alt triple the signal generator expects.
//
// Values are rendered in their shortest decimal form: 710.0 becomes "710",
// -22.9519 stays "-22.9519".
func (r SimulationRequest) LocationArg() string {
	return FormatCoordinate(r.Latitude) + "," +
		FormatCoordinate(r.Longitude) + "," +
		FormatCoordinate(r.Altitude)
}

// TimeArg renders the start time as the slash-date, colon-time form the
// signal generator expects: YYYY/MM/DD,HH:MM:SS.
func (r SimulationRequest) TimeArg() string {
	return r.StartTime.Format("2006/01/02,15:04:05")
}

// BaseName derives the output file base name for this request.
//
// The name encodes latitude, longitude, altitude and start time, so two
// requests that differ in any of them produce distinct artifact names
// within the same working directory:
//
//	gps_sim_-22.9519_-43.2105_710_20250605_100000
func (r SimulationRequest) BaseName() string {
	return fmt.Sprintf("gps_sim_%.4f_%.4f_%.0f_%s",
		r.Latitude, r.Longitude, r.Altitude,
		r.StartTime.Format("20060102_150405"))
}

// FormatCoordinate renders a coordinate value in its shortest decimal form.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
