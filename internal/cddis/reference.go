package cddis

import (
	"fmt"
	"strings"
	"time"
)

// EphemerisReference identifies the daily GPS broadcast ephemeris file for
// a calendar date. The archive shelves one combined file per day, keyed by
// year and day-of-year.
//
// Example:
//
//	ref := cddis.NewReference(time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC))
//	ref.Filename() // "brdc1560.25n"
type EphemerisReference struct {
	// Year is the full four-digit year, such as 2025.
	Year int

	// DayOfYear counts from 1 (January 1st) to 365 or 366.
	DayOfYear int
}

// NewReference derives the ephemeris reference for the date of t.
func NewReference(t time.Time) EphemerisReference {
	return EphemerisReference{
		Year:      t.Year(),
		DayOfYear: t.YearDay(),
	}
}

// Filename returns the classic daily broadcast ephemeris file name, such
// as "brdc1560.25n" for day 156 of 2025: "brdc", the zero-padded
// day-of-year, a literal zero, then the two-digit year and "n".
func (r EphemerisReference) Filename() string {
	return fmt.Sprintf("brdc%03d0.%02dn", r.DayOfYear, r.Year%100)
}

// CandidateNames lists the remote file names to try, in preference order:
// the plain file first, then the gzip form, then the legacy compress form.
func (r EphemerisReference) CandidateNames() []string {
	name := r.Filename()
	return []string{name, name + ".gz", name + ".Z"}
}

// CandidateURLs resolves the candidate names against the archive layout,
// which places daily files under year and zero-padded day-of-year
// directories: {base}/{year}/{ddd}/brdc/{name}.
func (r EphemerisReference) CandidateURLs(baseURL string) []string {
	dir := fmt.Sprintf("%s/%d/%03d/brdc", strings.TrimSuffix(baseURL, "/"), r.Year, r.DayOfYear)
	names := r.CandidateNames()
	urls := make([]string, len(names))
	for i, name := range names {
		urls[i] = dir + "/" + name
	}
	return urls
}
