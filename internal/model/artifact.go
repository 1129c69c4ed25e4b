package model

import "path/filepath"

// ArtifactPair holds the two files one simulation run produces: the binary
// IQ capture and its plain-text sidecar.
//
// The capture is written by the external signal generator; the sidecar is
// written by this tool and tells the PortaPack firmware how to play the
// capture back. Both are created together and are immutable once written.
type ArtifactPair struct {
	// IQCapturePath is the .c8 file of 8-bit I/Q baseband samples.
	IQCapturePath string

	// ConfigPath is the .txt sidecar with sample rate and center frequency.
	ConfigPath string
}

// FileNames returns just the file names of the pair, in capture, sidecar
// order. Useful for progress messages and for building destination paths
// when the pair is copied elsewhere.
func (p ArtifactPair) FileNames() (capture, config string) {
	return filepath.Base(p.IQCapturePath), filepath.Base(p.ConfigPath)
}
