package sim

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/model"
)

func testRequest(t *testing.T) model.SimulationRequest {
	t.Helper()
	start, err := model.ParseDateTime("2025-06-05", "10:00:00")
	if err != nil {
		t.Fatal(err)
	}
	return model.SimulationRequest{
		Latitude:  -22.9519,
		Longitude: -43.2105,
		Altitude:  710,
		StartTime: start,
	}
}

// writeFakeTool writes an executable shell script standing in for the
// simulation tool.
func writeFakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a shell script")
	}
	path := filepath.Join(t.TempDir(), "fake-gps-sdr-sim")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerate(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	script := fmt.Sprintf(`echo "$@" > %q
while [ $# -gt 1 ]; do
  if [ "$1" = "-o" ]; then printf 'IQ' > "$2"; fi
  shift
done
echo "simulation complete"
`, argsFile)
	tool := writeFakeTool(t, script)

	outputDir := t.TempDir()
	ephemerisPath := filepath.Join(outputDir, "brdc1560.25n")
	req := testRequest(t)

	gen := NewGenerator(tool, time.Minute)
	var gotStdout string
	gen.OnToolOutput = func(stdout, stderr string) { gotStdout = stdout }

	pair, err := gen.Generate(context.Background(), req, ephemerisPath, outputDir)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	wantC8 := filepath.Join(outputDir, "gps_sim_-22.9519_-43.2105_710_20250605_100000.c8")
	wantTxt := filepath.Join(outputDir, "gps_sim_-22.9519_-43.2105_710_20250605_100000.txt")
	if pair.IQCapturePath != wantC8 {
		t.Errorf("IQCapturePath = %q, want %q", pair.IQCapturePath, wantC8)
	}
	if pair.ConfigPath != wantTxt {
		t.Errorf("ConfigPath = %q, want %q", pair.ConfigPath, wantTxt)
	}

	argsData, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	wantArgs := fmt.Sprintf("-e %s -l -22.9519,-43.2105,710 -b 8 -t 2025/06/05,10:00:00 -o %s\n", ephemerisPath, wantC8)
	if string(argsData) != wantArgs {
		t.Errorf("tool args = %q, want %q", argsData, wantArgs)
	}

	if _, err := os.Stat(pair.IQCapturePath); err != nil {
		t.Errorf("capture file missing: %v", err)
	}
	config, err := os.ReadFile(pair.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(config) != "sample_rate=2600000\ncenter_frequency=1575420000\n" {
		t.Errorf("config content = %q", config)
	}

	if !strings.Contains(gotStdout, "simulation complete") {
		t.Errorf("OnToolOutput stdout = %q, want tool output", gotStdout)
	}
}

func TestGenerateExitError(t *testing.T) {
	tool := writeFakeTool(t, `echo "no valid ephemeris" >&2
exit 3
`)
	outputDir := t.TempDir()
	req := testRequest(t)

	gen := NewGenerator(tool, time.Minute)
	_, err := gen.Generate(context.Background(), req, "eph.n", outputDir)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Generate() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
	if !strings.Contains(exitErr.Stderr, "no valid ephemeris") {
		t.Errorf("Stderr = %q, want tool stderr", exitErr.Stderr)
	}

	configPath := filepath.Join(outputDir, req.BaseName()+".txt")
	if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
		t.Errorf("config sidecar written despite tool failure")
	}
}

func TestGenerateTimeout(t *testing.T) {
	tool := writeFakeTool(t, "sleep 5\n")
	req := testRequest(t)

	gen := NewGenerator(tool, 100*time.Millisecond)
	_, err := gen.Generate(context.Background(), req, "eph.n", t.TempDir())

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Generate() error = %v, want *TimeoutError", err)
	}
	if timeoutErr.Limit != 100*time.Millisecond {
		t.Errorf("Limit = %v, want 100ms", timeoutErr.Limit)
	}
}

func TestGenerateCancelled(t *testing.T) {
	tool := writeFakeTool(t, "sleep 5\n")
	req := testRequest(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	gen := NewGenerator(tool, time.Minute)
	_, err := gen.Generate(ctx, req, "eph.n", t.TempDir())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestGenerateMissingTool(t *testing.T) {
	gen := NewGenerator(filepath.Join(t.TempDir(), "absent-tool"), time.Minute)
	_, err := gen.Generate(context.Background(), testRequest(t), "eph.n", t.TempDir())
	if err == nil {
		t.Fatal("Generate() error = nil, want start failure")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("missing tool reported as *ExitError: %v", err)
	}
}

func TestCheckTool(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		tool := writeFakeTool(t, "exit 0\n")
		resolved, err := CheckTool(tool)
		if err != nil {
			t.Fatalf("CheckTool() error = %v", err)
		}
		if resolved != tool {
			t.Errorf("CheckTool() = %q, want %q", resolved, tool)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := CheckTool(filepath.Join(t.TempDir(), "absent-tool"))
		if err == nil {
			t.Fatal("CheckTool() error = nil, want error")
		}
	})
}

func TestCommandLine(t *testing.T) {
	gen := NewGenerator("/opt/gps-sdr-sim", 0)
	req := testRequest(t)

	got := gen.CommandLine(req, "/work/brdc1560.25n", "/work")
	want := []string{
		"/opt/gps-sdr-sim",
		"-e", "/work/brdc1560.25n",
		"-l", "-22.9519,-43.2105,710",
		"-b", "8",
		"-t", "2025/06/05,10:00:00",
		"-o", filepath.Join("/work", "gps_sim_-22.9519_-43.2105_710_20250605_100000.c8"),
	}
	if len(got) != len(want) {
		t.Fatalf("CommandLine() has %d elements, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CommandLine()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
