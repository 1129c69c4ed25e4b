// Package http provides HTTP client functionality for downloading
// broadcast ephemeris files from the NASA CDDIS archive.
//
// # Client
//
// The Client type wraps the standard net/http client with a per-request
// timeout and a configured User-Agent, which the archive requires for
// anonymous access:
//
//	client := http.NewClient(15*time.Second, "GPS-simulador-hackrf")
//
// # Downloading files
//
// Downloads stream straight to disk rather than buffering in memory, and
// report progress through an optional callback:
//
//	n, err := client.DownloadFile(ctx, url, destPath, func(written, total int64) {
//	    fmt.Printf("\r%d / %d bytes", written, total)
//	})
//
// A failed transfer removes its partial destination file, so callers only
// ever see complete downloads on disk.
package http
