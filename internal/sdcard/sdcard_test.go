package sdcard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/model"
)

func TestNormalizeDriveInput(t *testing.T) {
	sep := string(os.PathSeparator)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lowercase", input: "d:", want: "D:" + sep},
		{name: "uppercase", input: "E:", want: "E:" + sep},
		{name: "surrounding whitespace", input: "  f:  ", want: "F:" + sep},
		{name: "bare letter", input: "d", wantErr: true},
		{name: "digit", input: "5:", wantErr: true},
		{name: "too long", input: "dd:", wantErr: true},
		{name: "full path", input: `D:\gps`, wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDriveInput(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeDriveInput(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDriveInput(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDriveInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveRoot(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		dir := t.TempDir()
		got, err := ResolveRoot(dir)
		if err != nil {
			t.Fatalf("ResolveRoot(%q) error = %v", dir, err)
		}
		if got != dir {
			t.Errorf("ResolveRoot(%q) = %q", dir, got)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := ResolveRoot(filepath.Join(t.TempDir(), "absent")); err == nil {
			t.Fatal("ResolveRoot() error = nil, want missing-path error")
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := ResolveRoot(path); err == nil {
			t.Fatal("ResolveRoot() error = nil, want not-a-directory error")
		}
	})
}

func testPair(t *testing.T, captureContent, configContent string) model.ArtifactPair {
	t.Helper()
	dir := t.TempDir()
	pair := model.ArtifactPair{
		IQCapturePath: filepath.Join(dir, "gps_sim_-22.9519_-43.2105_710_20250605_100000.c8"),
		ConfigPath:    filepath.Join(dir, "gps_sim_-22.9519_-43.2105_710_20250605_100000.txt"),
	}
	if err := os.WriteFile(pair.IQCapturePath, []byte(captureContent), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pair.ConfigPath, []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}
	return pair
}

func TestDistribute(t *testing.T) {
	pair := testPair(t, "IQIQIQ", "sample_rate=2600000\ncenter_frequency=1575420000\n")
	root := t.TempDir()

	targetDir, err := Distribute(context.Background(), pair, root)
	if err != nil {
		t.Fatalf("Distribute() error = %v", err)
	}
	if want := filepath.Join(root, "gps"); targetDir != want {
		t.Errorf("Distribute() = %q, want %q", targetDir, want)
	}

	captureName, configName := pair.FileNames()
	capture, err := os.ReadFile(filepath.Join(targetDir, captureName))
	if err != nil {
		t.Fatal(err)
	}
	if string(capture) != "IQIQIQ" {
		t.Errorf("copied capture content = %q", capture)
	}
	config, err := os.ReadFile(filepath.Join(targetDir, configName))
	if err != nil {
		t.Fatal(err)
	}
	if string(config) != "sample_rate=2600000\ncenter_frequency=1575420000\n" {
		t.Errorf("copied config content = %q", config)
	}
}

func TestDistributeTwiceOverwrites(t *testing.T) {
	pair := testPair(t, "first", "config")
	root := t.TempDir()

	if _, err := Distribute(context.Background(), pair, root); err != nil {
		t.Fatalf("first Distribute() error = %v", err)
	}

	if err := os.WriteFile(pair.IQCapturePath, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}
	targetDir, err := Distribute(context.Background(), pair, root)
	if err != nil {
		t.Fatalf("second Distribute() error = %v", err)
	}

	captureName, _ := pair.FileNames()
	capture, err := os.ReadFile(filepath.Join(targetDir, captureName))
	if err != nil {
		t.Fatal(err)
	}
	if string(capture) != "second" {
		t.Errorf("capture after overwrite = %q, want %q", capture, "second")
	}
}

func TestDistributeMissingRoot(t *testing.T) {
	pair := testPair(t, "IQ", "config")
	_, err := Distribute(context.Background(), pair, filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("Distribute() error = nil, want missing-root error")
	}
}

func TestDistributeRootIsFile(t *testing.T) {
	pair := testPair(t, "IQ", "config")
	rootFile := filepath.Join(t.TempDir(), "notadir")
	if err := os.WriteFile(rootFile, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Distribute(context.Background(), pair, rootFile)
	if err == nil {
		t.Fatal("Distribute() error = nil, want not-a-directory error")
	}
}
