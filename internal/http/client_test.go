package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func TestDownloadFile(t *testing.T) {
	body := "GPS broadcast ephemeris content"
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	client := NewClient(5*time.Second, "test-agent")
	dest := filepath.Join(t.TempDir(), "brdc1560.25n")

	n, err := client.DownloadFile(context.Background(), server.URL, dest, nil)
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if n != int64(len(body)) {
		t.Errorf("DownloadFile() = %d bytes, want %d", n, len(body))
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "test-agent")
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != body {
		t.Errorf("downloaded content = %q, want %q", data, body)
	}
}

func TestDownloadFileHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(5*time.Second, "test-agent")
	dest := filepath.Join(t.TempDir(), "brdc1560.25n")

	_, err := client.DownloadFile(context.Background(), server.URL, dest, nil)
	if err == nil {
		t.Fatal("DownloadFile() error = nil, want HTTP error")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Errorf("destination file exists after HTTP error, want absent")
	}
}

func TestDownloadFileProgress(t *testing.T) {
	// The body is large enough that the server would otherwise switch to
	// chunked encoding and stop announcing a length.
	body := make([]byte, 64*1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write(body)
	}))
	defer server.Close()

	client := NewClient(5*time.Second, "test-agent")
	dest := filepath.Join(t.TempDir(), "out.bin")

	var lastWritten, lastTotal int64
	calls := 0
	_, err := client.DownloadFile(context.Background(), server.URL, dest, func(written, total int64) {
		lastWritten = written
		lastTotal = total
		calls++
	})
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if calls == 0 {
		t.Fatal("progress callback never called")
	}
	if lastWritten != int64(len(body)) {
		t.Errorf("final progress written = %d, want %d", lastWritten, len(body))
	}
	if lastTotal != int64(len(body)) {
		t.Errorf("progress total = %d, want %d", lastTotal, len(body))
	}
}

func TestDownloadFileRemovesPartialOnTruncation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("short"))
	}))
	defer server.Close()

	client := NewClient(5*time.Second, "test-agent")
	dest := filepath.Join(t.TempDir(), "out.bin")

	_, err := client.DownloadFile(context.Background(), server.URL, dest, nil)
	if err == nil {
		t.Fatal("DownloadFile() error = nil, want truncation error")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Errorf("partial file left on disk after failed transfer")
	}
}

func TestDownloadFileContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(5*time.Second, "test-agent")
	dest := filepath.Join(t.TempDir(), "out.bin")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.DownloadFile(ctx, server.URL, dest, nil)
	if err == nil {
		t.Fatal("DownloadFile() error = nil, want context error")
	}
}
