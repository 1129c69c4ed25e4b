// Package config provides configuration management for the GPS simulator
// preparation tool.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Timeout fields exposed as time.Duration helpers
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// gps-sdr-sim resolved from its conventional location
//	// NASA CDDIS daily archive as the ephemeris source
//	// 15s download timeout, 300s generation timeout
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A missing file is not an error; defaults are returned so the tool works
// with no configuration at all.
//
// The playback constants of the signal itself (sample rate, center
// frequency) are not part of Settings: they are fixed by the GPS L1
// signal definition and live as constants in the sim package.
package config
