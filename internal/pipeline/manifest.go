package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	ioutils "github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/io"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/model"
)

// Manifest records what a run produced. It stays in the work directory
// next to the artifacts and lets files on a card be traced back to the
// request that generated them.
type Manifest struct {
	RunID            string       `json:"run_id"`
	GeneratedAt      time.Time    `json:"generated_at"`
	Latitude         float64      `json:"latitude"`
	Longitude        float64      `json:"longitude"`
	AltitudeMeters   float64      `json:"altitude_meters"`
	SimulationStart  string       `json:"simulation_start"`
	EphemerisFile    string       `json:"ephemeris_file"`
	EphemerisRecords int          `json:"ephemeris_records,omitempty"`
	Capture          ManifestFile `json:"capture"`
	Config           ManifestFile `json:"config"`
}

// ManifestFile identifies one produced file by name, size, and content
// hash.
type ManifestFile struct {
	Name   string `json:"name"`
	Bytes  int64  `json:"bytes"`
	SHA256 string `json:"sha256"`
}

// writeManifest hashes both artifacts and writes the manifest JSON next
// to them, returning its path.
func (r *Runner) writeManifest(req model.SimulationRequest, result *Result) (string, error) {
	var capture, config ManifestFile

	var g errgroup.Group
	g.Go(func() error {
		var err error
		capture, err = describeFile(result.Pair.IQCapturePath)
		return err
	})
	g.Go(func() error {
		var err error
		config, err = describeFile(result.Pair.ConfigPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	manifest := Manifest{
		RunID:            result.RunID,
		GeneratedAt:      time.Now().UTC(),
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		AltitudeMeters:   req.Altitude,
		SimulationStart:  req.StartTime.Format("2006-01-02 15:04:05"),
		EphemerisFile:    filepath.Base(result.EphemerisPath),
		EphemerisRecords: result.EphemerisRecords,
		Capture:          capture,
		Config:           config,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(r.settings.WorkDir, req.BaseName()+".manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func describeFile(path string) (ManifestFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ManifestFile{}, err
	}
	sum, err := ioutils.ChecksumFile(path)
	if err != nil {
		return ManifestFile{}, err
	}
	return ManifestFile{
		Name:   filepath.Base(path),
		Bytes:  info.Size(),
		SHA256: sum,
	}, nil
}
