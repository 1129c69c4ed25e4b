package cddis

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/ephemeris"
	httpx "github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/http"
)

// ErrAllCandidatesFailed indicates that none of the candidate files for a
// date could be downloaded as a plausible ephemeris file. Callers usually
// respond by asking for a manually downloaded file instead.
var ErrAllCandidatesFailed = errors.New("no ephemeris candidate could be downloaded")

// Acquirer downloads daily broadcast ephemeris files from the archive.
//
// For a given date it tries each candidate form in order (plain, .gz, .Z),
// discards downloads small enough to be an error or login page, and
// decompresses compressed candidates in place. The archive requires
// authentication for scripted access, so an anonymous download frequently
// yields an HTML page rather than data; the size check is what catches
// that.
//
// The On* callback fields are optional observation hooks. They are called
// from the goroutine running Acquire.
type Acquirer struct {
	client   *httpx.Client
	baseURL  string
	minBytes int64

	// OnAttempt is called with each candidate URL before its download
	// begins.
	OnAttempt func(url string)

	// OnDiscard is called when a candidate downloaded fully but was
	// rejected as implausibly small, with the local file name and its
	// size in bytes.
	OnDiscard func(filename string, size int64)

	// OnProgress receives byte-level progress for the active download.
	// The total is -1 when the server does not announce a length.
	OnProgress func(written, total int64)
}

// NewAcquirer creates an Acquirer that downloads through client from the
// archive at baseURL. Downloads smaller than minBytes are discarded; a
// minBytes of zero or less applies a default suited to daily GPS files.
func NewAcquirer(client *httpx.Client, baseURL string, minBytes int64) *Acquirer {
	if minBytes <= 0 {
		minBytes = ephemeris.DefaultMinimumBytes
	}
	return &Acquirer{
		client:   client,
		baseURL:  baseURL,
		minBytes: minBytes,
	}
}

// Acquire downloads the broadcast ephemeris file described by ref and
// leaves it, decompressed, at outputPath. It returns the path of the
// ready-to-use file.
//
// Candidates are tried strictly in the order given by CandidateURLs. A
// failed or undersized candidate is cleaned up and the next one is tried.
// When every candidate fails, the returned error wraps
// ErrAllCandidatesFailed and lists what went wrong with each attempt.
//
// A candidate that downloads at a plausible size but fails to decompress
// stops the whole acquisition: the data for that day exists but is
// unusable, and trying further forms of the same file would download the
// same bytes again.
func (a *Acquirer) Acquire(ctx context.Context, ref EphemerisReference, outputPath string) (string, error) {
	var failures []string

	for _, url := range ref.CandidateURLs(a.baseURL) {
		tempPath := outputPath
		switch {
		case strings.HasSuffix(url, ".gz"):
			tempPath = outputPath + ".gz"
		case strings.HasSuffix(url, ".Z"):
			tempPath = outputPath + ".Z"
		}

		if a.OnAttempt != nil {
			a.OnAttempt(url)
		}

		if _, err := a.client.DownloadFile(ctx, url, tempPath, a.OnProgress); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			failures = append(failures, fmt.Sprintf("%s: %v", url, err))
			continue
		}

		if err := ephemeris.MeetsMinimumSize(tempPath, a.minBytes); err != nil {
			var tooSmall *ephemeris.TooSmallError
			if errors.As(err, &tooSmall) && a.OnDiscard != nil {
				a.OnDiscard(filepath.Base(tempPath), tooSmall.Size)
			}
			os.Remove(tempPath)
			failures = append(failures, fmt.Sprintf("%s: %v", url, err))
			continue
		}

		if tempPath == outputPath {
			return outputPath, nil
		}
		if err := decompress(tempPath, outputPath); err != nil {
			os.Remove(outputPath)
			return "", fmt.Errorf("decompressing %s: %w", filepath.Base(tempPath), err)
		}
		os.Remove(tempPath)
		return outputPath, nil
	}

	return "", fmt.Errorf("%w for %s: %s", ErrAllCandidatesFailed, ref.Filename(), strings.Join(failures, "; "))
}

// decompress expands the gzip stream in src into dst. Both compressed
// candidate forms carry gzip streams.
func decompress(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return err
	}
	defer zr.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, zr)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
