package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/cddis"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/config"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/ephemeris"
	httpx "github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/http"
	ioutils "github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/io"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/model"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/sdcard"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/sim"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Result describes what a completed run produced.
type Result struct {
	// RunID uniquely identifies this run in progress output and in the
	// manifest.
	RunID string

	// EphemerisPath is the broadcast ephemeris file the capture was
	// generated from, downloaded or supplied manually.
	EphemerisPath string

	// EphemerisRecords is the number of ephemeris records decoded from
	// the file, zero when it could not be decoded.
	EphemerisRecords int

	// Pair holds the generated capture and configuration files.
	Pair model.ArtifactPair

	// ManifestPath is the run manifest location, empty when manifest
	// writing is disabled or failed.
	ManifestPath string
}

// Runner coordinates a simulation run end to end: acquire the ephemeris
// file, inspect it, invoke the simulation tool, and record the result.
type Runner struct {
	settings *config.Settings

	receivedBytes int64
	totalBytes    int64

	onProgress func(ProgressEvent)
}

// NewRunner creates a new pipeline Runner.
func NewRunner(settings *config.Settings, onProgress func(ProgressEvent)) *Runner {
	return &Runner{
		settings:   settings,
		onProgress: onProgress,
	}
}

// Run executes the full pipeline for req: check the tool, download the
// broadcast ephemeris file for the simulation date, and generate the
// artifact pair.
//
// When every download candidate fails, the returned error wraps
// cddis.ErrAllCandidatesFailed; callers can offer a manually downloaded
// file and call RunWithEphemeris instead.
func (r *Runner) Run(ctx context.Context, req model.SimulationRequest) (*Result, error) {
	toolPath, err := r.prepare()
	if err != nil {
		return nil, err
	}

	ref := cddis.NewReference(req.StartTime)
	outputPath := filepath.Join(r.settings.WorkDir, ref.Filename())
	r.progress(ProgressEvent{Message: fmt.Sprintf("Downloading broadcast ephemeris %s from the archive", ref.Filename()), Level: LevelInfo})

	client := httpx.NewClient(r.settings.DownloadTimeout(), r.settings.UserAgent)
	acquirer := cddis.NewAcquirer(client, r.settings.ArchiveBaseURL, r.settings.MinEphemerisBytes)
	acquirer.OnAttempt = func(url string) {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Trying %s", url), Level: LevelVerbose})
	}
	acquirer.OnDiscard = func(filename string, size int64) {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Discarded %s: only %d bytes, likely an archive error page", filename, size), Level: LevelWarning})
	}
	acquirer.OnProgress = func(written, total int64) {
		atomic.StoreInt64(&r.receivedBytes, written)
		atomic.StoreInt64(&r.totalBytes, total)
	}

	ephemerisPath, err := acquirer.Acquire(ctx, ref, outputPath)
	if err != nil {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Ephemeris download failed: %v", err), Level: LevelError})
		return nil, fmt.Errorf("acquiring ephemeris: %w", err)
	}
	r.progress(ProgressEvent{Message: fmt.Sprintf("Ephemeris file ready: %s", ephemerisPath), Level: LevelSuccess})

	return r.finish(ctx, req, toolPath, ephemerisPath)
}

// RunWithEphemeris executes the pipeline for req using an ephemeris file
// the user downloaded themselves, skipping the archive entirely.
//
// The file is checked only loosely: suspicious size or extension produce
// warnings, not failures, since the simulation tool is the final judge of
// whether it can use the file.
func (r *Runner) RunWithEphemeris(ctx context.Context, req model.SimulationRequest, ephemerisPath string) (*Result, error) {
	toolPath, err := r.prepare()
	if err != nil {
		return nil, err
	}

	warnings, err := ephemeris.ValidateManualFile(ephemerisPath, r.settings.MinEphemerisBytes)
	if err != nil {
		return nil, fmt.Errorf("checking ephemeris file: %w", err)
	}
	for _, w := range warnings {
		r.progress(ProgressEvent{Message: w.Message, Level: LevelWarning})
	}
	r.progress(ProgressEvent{Message: fmt.Sprintf("Using ephemeris file: %s", ephemerisPath), Level: LevelInfo})

	return r.finish(ctx, req, toolPath, ephemerisPath)
}

// Distribute copies the artifact pair onto the SD card rooted at
// rootPath and returns the folder the files were written to. A failure
// here does not invalidate the artifacts, which remain in the work
// directory for manual copying.
func (r *Runner) Distribute(ctx context.Context, pair model.ArtifactPair, rootPath string) (string, error) {
	r.progress(ProgressEvent{Message: fmt.Sprintf("Copying artifacts to %s", rootPath), Level: LevelInfo})
	targetDir, err := sdcard.Distribute(ctx, pair, rootPath)
	if err != nil {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Copy failed: %v", err), Level: LevelError})
		return "", err
	}
	r.progress(ProgressEvent{Message: fmt.Sprintf("Artifacts copied to %s", targetDir), Level: LevelSuccess})
	return targetDir, nil
}

// GetDownloadProgress returns the byte progress of the ephemeris download
// in flight. The total is -1 while the server has not announced a length.
func (r *Runner) GetDownloadProgress() (received, total int64) {
	return atomic.LoadInt64(&r.receivedBytes), atomic.LoadInt64(&r.totalBytes)
}

// Plan describes what Run would do for a request without doing any of it.
type Plan struct {
	ToolPath      string
	EphemerisFile string
	CandidateURLs []string
	CommandLine   []string
}

// Plan reports the ephemeris candidates and the exact tool invocation a
// run for req would use.
func (r *Runner) Plan(req model.SimulationRequest) Plan {
	ref := cddis.NewReference(req.StartTime)
	outputPath := filepath.Join(r.settings.WorkDir, ref.Filename())
	gen := sim.NewGenerator(r.settings.ToolPath, 0)
	return Plan{
		ToolPath:      r.settings.ToolPath,
		EphemerisFile: ref.Filename(),
		CandidateURLs: ref.CandidateURLs(r.settings.ArchiveBaseURL),
		CommandLine:   gen.CommandLine(req, outputPath, r.settings.WorkDir),
	}
}

// prepare resolves the simulation tool and ensures the work directory
// exists. Both are checked before any network traffic so configuration
// problems surface immediately.
func (r *Runner) prepare() (string, error) {
	toolPath, err := sim.CheckTool(r.settings.ToolPath)
	if err != nil {
		return "", err
	}
	r.progress(ProgressEvent{Message: fmt.Sprintf("Using simulation tool at %s", toolPath), Level: LevelVerbose})

	if err := ioutils.EnsureDir(r.settings.WorkDir); err != nil {
		return "", fmt.Errorf("creating work directory: %w", err)
	}
	return toolPath, nil
}

// finish runs the stages shared by Run and RunWithEphemeris: inspect the
// ephemeris file, generate the artifacts, and write the manifest.
func (r *Runner) finish(ctx context.Context, req model.SimulationRequest, toolPath, ephemerisPath string) (*Result, error) {
	result := &Result{
		RunID:         uuid.NewString(),
		EphemerisPath: ephemerisPath,
	}

	report, err := ephemeris.Inspect(ephemerisPath)
	if err != nil {
		if r.settings.StrictRINEX {
			return nil, fmt.Errorf("inspecting ephemeris: %w", err)
		}
		r.progress(ProgressEvent{Message: fmt.Sprintf("Could not decode %s as RINEX navigation data: %v", filepath.Base(ephemerisPath), err), Level: LevelWarning})
	} else {
		result.EphemerisRecords = report.Ephemerides
		r.progress(ProgressEvent{Message: fmt.Sprintf("Decoded %d ephemeris records from %s", report.Ephemerides, filepath.Base(ephemerisPath)), Level: LevelVerbose})
	}

	generator := sim.NewGenerator(toolPath, r.settings.GenerateTimeout())
	generator.OnToolOutput = func(stdout, stderr string) {
		if stdout != "" {
			r.progress(ProgressEvent{Message: fmt.Sprintf("Tool output:\n%s", stdout), Level: LevelVerbose})
		}
		if stderr != "" {
			r.progress(ProgressEvent{Message: fmt.Sprintf("Tool stderr:\n%s", stderr), Level: LevelWarning})
		}
	}

	r.progress(ProgressEvent{Message: "Running simulation tool, this can take a few minutes", Level: LevelInfo})
	pair, err := generator.Generate(ctx, req, ephemerisPath, r.settings.WorkDir)
	if err != nil {
		r.progress(ProgressEvent{Message: fmt.Sprintf("Generation failed: %v", err), Level: LevelError})
		return nil, err
	}
	result.Pair = pair
	r.progress(ProgressEvent{Message: fmt.Sprintf("Capture written: %s", pair.IQCapturePath), Level: LevelSuccess})
	r.progress(ProgressEvent{Message: fmt.Sprintf("Transmitter config written: %s", pair.ConfigPath), Level: LevelSuccess})

	if r.settings.WriteManifest {
		manifestPath, err := r.writeManifest(req, result)
		if err != nil {
			r.progress(ProgressEvent{Message: fmt.Sprintf("Could not write run manifest: %v", err), Level: LevelWarning})
		} else {
			result.ManifestPath = manifestPath
			r.progress(ProgressEvent{Message: fmt.Sprintf("Run manifest written: %s", manifestPath), Level: LevelVerbose})
		}
	}

	return result, nil
}

func (r *Runner) progress(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}
