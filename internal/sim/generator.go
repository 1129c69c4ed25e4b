package sim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/model"
)

const (
	// SampleRate is the IQ sample rate in hertz of the generated capture,
	// 2.6 MHz. The transmitter replays the file at exactly this rate.
	SampleRate = 2600000

	// CenterFrequency is the GPS L1 carrier in hertz, 1575.42 MHz.
	CenterFrequency = 1575420000
)

// bitsPerSample is passed to the tool as -b. The transmitter expects
// 8-bit IQ samples.
const bitsPerSample = "8"

// ExitError reports a simulation tool run that completed with a non-zero
// exit code. Stderr carries whatever the tool printed there, which for
// this tool usually names the problem with the ephemeris file or the
// parameters.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("simulation tool exited with code %d", e.Code)
	}
	return fmt.Sprintf("simulation tool exited with code %d: %s", e.Code, e.Stderr)
}

// TimeoutError reports a simulation tool run that was killed for
// exceeding its time limit.
type TimeoutError struct {
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("simulation tool did not finish within %s", e.Limit)
}

// CheckTool verifies that the simulation tool at path exists and is
// executable, returning the resolved path. A bare name is searched for in
// PATH; a name containing a separator is checked directly.
//
// Run this before acquiring ephemeris data so a misconfigured tool path
// surfaces immediately instead of after a download.
func CheckTool(path string) (string, error) {
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("simulation tool: %w", err)
	}
	return resolved, nil
}

// Generator runs the external gps-sdr-sim tool to produce the IQ capture
// and writes the matching transmitter configuration file.
type Generator struct {
	toolPath string
	timeout  time.Duration

	// OnToolOutput, when set, receives the tool's captured stdout and
	// stderr after the run completes, successful or not.
	OnToolOutput func(stdout, stderr string)
}

// NewGenerator creates a Generator that invokes the tool at toolPath and
// kills runs lasting longer than timeout. A timeout of zero or less means
// no limit.
func NewGenerator(toolPath string, timeout time.Duration) *Generator {
	return &Generator{
		toolPath: toolPath,
		timeout:  timeout,
	}
}

// Generate runs the simulation tool for req against the ephemeris file at
// ephemerisPath, producing the IQ capture and its configuration file in
// outputDir.
//
// The capture and configuration names share a base derived from the
// request, so artifacts for different locations or start times never
// collide. The configuration file is only written after the tool
// succeeds; a failed run leaves no sidecar behind.
//
// Failures are reported as:
//   - *ExitError when the tool ran and returned a non-zero exit code
//   - *TimeoutError when the run exceeded the configured time limit
//   - the context's error when ctx was cancelled
//   - an ordinary error when the tool could not be started at all
func (g *Generator) Generate(ctx context.Context, req model.SimulationRequest, ephemerisPath, outputDir string) (model.ArtifactPair, error) {
	base := req.BaseName()
	pair := model.ArtifactPair{
		IQCapturePath: filepath.Join(outputDir, base+".c8"),
		ConfigPath:    filepath.Join(outputDir, base+".txt"),
	}

	runCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, g.toolPath, buildArgs(req, ephemerisPath, pair.IQCapturePath)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if g.OnToolOutput != nil {
		g.OnToolOutput(stdout.String(), stderr.String())
	}
	if runErr != nil {
		if ctx.Err() != nil {
			return model.ArtifactPair{}, ctx.Err()
		}
		if runCtx.Err() == context.DeadlineExceeded {
			return model.ArtifactPair{}, &TimeoutError{Limit: g.timeout}
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return model.ArtifactPair{}, &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return model.ArtifactPair{}, fmt.Errorf("running %s: %w", g.toolPath, runErr)
	}

	if err := WriteSidecar(pair.ConfigPath); err != nil {
		return model.ArtifactPair{}, fmt.Errorf("writing transmitter config: %w", err)
	}
	return pair, nil
}

// CommandLine returns the exact command Generate would run for req, the
// tool path first, for display before or instead of a real run.
func (g *Generator) CommandLine(req model.SimulationRequest, ephemerisPath, outputDir string) []string {
	c8Path := filepath.Join(outputDir, req.BaseName()+".c8")
	return append([]string{g.toolPath}, buildArgs(req, ephemerisPath, c8Path)...)
}

func buildArgs(req model.SimulationRequest, ephemerisPath, c8Path string) []string {
	return []string{
		"-e", ephemerisPath,
		"-l", req.LocationArg(),
		"-b", bitsPerSample,
		"-t", req.TimeArg(),
		"-o", c8Path,
	}
}

// WriteSidecar writes the transmitter configuration file at path. The
// PortaPack firmware reads exactly two lines from it, the sample rate and
// the center frequency, and pairs it with the capture of the same base
// name.
func WriteSidecar(path string) error {
	content := fmt.Sprintf("sample_rate=%d\ncenter_frequency=%d\n", SampleRate, CenterFrequency)
	return os.WriteFile(path, []byte(content), 0o644)
}
