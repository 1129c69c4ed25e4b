package ephemeris

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/de-bkg/gognss/pkg/rinex"
)

// DefaultMinimumBytes is the size below which a downloaded ephemeris file
// is treated as an archive error page rather than real navigation data.
// A full day of GPS broadcast ephemeris runs to several hundred kilobytes;
// HTML error responses are a few kilobytes at most.
const DefaultMinimumBytes int64 = 100 * 1024

// TooSmallError reports a file that exists but is below the minimum
// plausible size for a daily broadcast ephemeris file.
type TooSmallError struct {
	Path string
	Size int64
	Min  int64
}

func (e *TooSmallError) Error() string {
	return fmt.Sprintf("ephemeris file %s is %d bytes, below the %d byte minimum", filepath.Base(e.Path), e.Size, e.Min)
}

// MeetsMinimumSize checks that the file at path is at least min bytes.
// A min of zero or less falls back to DefaultMinimumBytes.
//
// It returns a *TooSmallError when the file is present but undersized,
// and the underlying stat error when the file cannot be examined at all.
func MeetsMinimumSize(path string, min int64) error {
	if min <= 0 {
		min = DefaultMinimumBytes
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() < min {
		return &TooSmallError{Path: path, Size: info.Size(), Min: min}
	}
	return nil
}

// Report summarizes the contents of a RINEX navigation file.
type Report struct {
	// Ephemerides is the number of ephemeris records decoded from the file.
	Ephemerides int
}

// Inspect decodes the RINEX navigation file at path and reports how many
// ephemeris records it holds.
//
// A file that downloads at a plausible size can still be unusable, such as
// a corrupted transfer that gunzipped cleanly. Inspect catches those
// before the simulation tool spends minutes on them. Decoding errors on
// individual records are tolerated as long as at least one record parses;
// a file yielding zero records is an error.
func Inspect(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer f.Close()

	dec, err := rinex.NewNavDecoder(f)
	if err != nil {
		return Report{}, fmt.Errorf("parsing RINEX header of %s: %w", filepath.Base(path), err)
	}

	report := Report{}
	for dec.NextEphemeris() {
		report.Ephemerides++
	}
	if report.Ephemerides == 0 {
		if err := dec.Err(); err != nil {
			return report, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
		}
		return report, fmt.Errorf("%s contains no ephemeris records", filepath.Base(path))
	}
	return report, nil
}

// Warning flags a property of a manually supplied ephemeris file that is
// suspicious but not necessarily fatal. The simulation tool itself is the
// final judge of whether a file is usable.
type Warning struct {
	Message string
}

// ValidateManualFile checks a user-supplied ephemeris file and returns
// warnings for anything that looks off: a missing file is an error, while
// an unusual extension or a small size only warrant warnings. minBytes of
// zero or less falls back to DefaultMinimumBytes.
func ValidateManualFile(path string, minBytes int64) ([]Warning, error) {
	if minBytes <= 0 {
		minBytes = DefaultMinimumBytes
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not an ephemeris file", path)
	}

	var warnings []Warning
	if !hasNavExtension(path) {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("%s does not have a RINEX navigation extension (.n, .rnx)", filepath.Base(path)),
		})
	}
	if info.Size() < minBytes {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("%s is only %d bytes, smaller than a typical daily ephemeris file", filepath.Base(path), info.Size()),
		})
	}
	return warnings, nil
}

// hasNavExtension reports whether the filename looks like a RINEX
// navigation file: either the modern .rnx extension or the classic
// two-digit-year form such as .25n.
func hasNavExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".rnx" {
		return true
	}
	if len(ext) == 4 && strings.HasSuffix(ext, "n") {
		digits := ext[1:3]
		return digits[0] >= '0' && digits[0] <= '9' && digits[1] >= '0' && digits[1] <= '9'
	}
	return ext == ".n"
}
