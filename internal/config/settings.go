package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Settings holds all configuration options.
type Settings struct {
	// Tool settings
	ToolPath string `json:"tool_path"`
	WorkDir  string `json:"work_dir"`

	// Ephemeris archive settings
	ArchiveBaseURL         string `json:"archive_base_url"`
	MinEphemerisBytes      int64  `json:"min_ephemeris_bytes"`
	DownloadTimeoutSeconds int    `json:"download_timeout_seconds"`
	UserAgent              string `json:"user_agent"`

	// StrictRINEX promotes an ephemeris file that fails RINEX decoding to a
	// fatal error instead of a warning.
	StrictRINEX bool `json:"strict_rinex"`

	// Generation settings
	GenerateTimeoutSeconds int  `json:"generate_timeout_seconds"`
	WriteManifest          bool `json:"write_manifest"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		ToolPath: defaultToolPath(),
		WorkDir:  "gps_sim_output",

		ArchiveBaseURL:         "https://cddis.nasa.gov/archive/gnss/data/daily/",
		MinEphemerisBytes:      100 * 1024,
		DownloadTimeoutSeconds: 15,
		UserAgent:              "GPS-simulador-hackrf",

		StrictRINEX: false,

		GenerateTimeoutSeconds: 300,
		WriteManifest:          true,
	}
}

// defaultToolPath picks the conventional gps-sdr-sim location per platform.
// On Windows the pre-built binary is usually unpacked under Public; on other
// systems a bare name lets PATH resolution find it.
func defaultToolPath() string {
	if runtime.GOOS == "windows" {
		return `C:\Users\Public\gps-sdr-sim-win\gps-sdr-sim.exe`
	}
	return "gps-sdr-sim"
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DownloadTimeout returns the per-attempt timeout for archive downloads.
func (s *Settings) DownloadTimeout() time.Duration {
	return time.Duration(s.DownloadTimeoutSeconds) * time.Second
}

// GenerateTimeout returns the wall-clock limit for one signal generator run.
func (s *Settings) GenerateTimeout() time.Duration {
	return time.Duration(s.GenerateTimeoutSeconds) * time.Second
}
