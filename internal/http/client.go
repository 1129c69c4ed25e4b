package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client wraps HTTP operations for fetching ephemeris files from the
// archive.
//
// Client provides:
//   - A bounded per-request timeout covering connect and body transfer
//   - A configured User-Agent header
//   - Streaming file download with progress tracking
//
// Example usage:
//
//	client := NewClient(15*time.Second, "GPS-simulador-hackrf")
//
//	n, err := client.DownloadFile(ctx, url, "/work/brdc1560.25n.gz", func(written, total int64) {
//	    percent := float64(written) / float64(total) * 100
//	    fmt.Printf("%.1f%%\n", percent)
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client for the ephemeris archive.
//
// The timeout bounds each request as a whole, including reading the body;
// a stalled transfer fails rather than hanging. A zero timeout disables
// the bound.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// DownloadFile downloads a URL to the specified path, streaming the body
// directly to disk, and returns the number of bytes written.
//
// Any response outside the 2xx range is an error. If the transfer fails
// partway, the partial destination file is removed so a truncated download
// can never be mistaken for a complete one.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes)
//     Pass nil to disable progress tracking
//
// Example:
//
//	n, err := client.DownloadFile(ctx, url, "/work/brdc1560.25n.gz", nil)
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return 0, err
	}

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	written, err := io.Copy(writer, resp.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(destPath)
		return 0, err
	}
	return written, nil
}
