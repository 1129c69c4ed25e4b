package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	defaults := DefaultSettings()
	if settings.ArchiveBaseURL != defaults.ArchiveBaseURL {
		t.Errorf("ArchiveBaseURL = %q, want default %q", settings.ArchiveBaseURL, defaults.ArchiveBaseURL)
	}
	if settings.MinEphemerisBytes != 100*1024 {
		t.Errorf("MinEphemerisBytes = %d, want %d", settings.MinEphemerisBytes, 100*1024)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted invalid JSON, want error")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	settings := DefaultSettings()
	settings.ToolPath = "/opt/gps-sdr-sim"
	settings.DownloadTimeoutSeconds = 30
	settings.StrictRINEX = true

	if err := settings.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ToolPath != "/opt/gps-sdr-sim" {
		t.Errorf("ToolPath = %q, want %q", loaded.ToolPath, "/opt/gps-sdr-sim")
	}
	if loaded.DownloadTimeoutSeconds != 30 {
		t.Errorf("DownloadTimeoutSeconds = %d, want 30", loaded.DownloadTimeoutSeconds)
	}
	if !loaded.StrictRINEX {
		t.Error("StrictRINEX not preserved")
	}
}

func TestPartialFileKeepsRemainingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"tool_path":"/custom/sim"}`), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.ToolPath != "/custom/sim" {
		t.Errorf("ToolPath = %q, want %q", settings.ToolPath, "/custom/sim")
	}
	if settings.GenerateTimeoutSeconds != 300 {
		t.Errorf("GenerateTimeoutSeconds = %d, want default 300", settings.GenerateTimeoutSeconds)
	}
}

func TestTimeoutHelpers(t *testing.T) {
	settings := DefaultSettings()
	if got := settings.DownloadTimeout(); got != 15*time.Second {
		t.Errorf("DownloadTimeout() = %v, want 15s", got)
	}
	if got := settings.GenerateTimeout(); got != 300*time.Second {
		t.Errorf("GenerateTimeout() = %v, want 300s", got)
	}
}
