package sdcard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ioutils "github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/io"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/model"
)

// TargetDirName is the folder on the card the PortaPack firmware loads
// GPS captures from.
const TargetDirName = "gps"

// NormalizeDriveInput converts drive-letter input such as "d:" into a
// root path like `D:\`. The input must be a single letter followed by a
// colon; surrounding whitespace and case are ignored.
//
// This only shapes the string. Whether the drive exists is checked by
// Distribute against the filesystem.
func NormalizeDriveInput(input string) (string, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(input))
	if len(cleaned) != 2 || cleaned[1] != ':' || cleaned[0] < 'A' || cleaned[0] > 'Z' {
		return "", fmt.Errorf("drive must be a letter followed by a colon, like D:, got %q", input)
	}
	return cleaned + string(os.PathSeparator), nil
}

// ResolveRoot turns what the user typed into a verified card root:
// drive-letter shorthand is normalized first, anything else is taken as a
// path, and the result must be an existing directory.
//
// The shells call this in their validate-or-reject loop so a mistyped
// location is caught before any copying starts.
func ResolveRoot(input string) (string, error) {
	root := strings.TrimSpace(input)
	if normalized, err := NormalizeDriveInput(root); err == nil {
		root = normalized
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("SD card not accessible at %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("SD card path %s is not a directory", root)
	}
	return root, nil
}

// Distribute copies both artifact files into the gps folder under
// rootPath, creating the folder when missing, and returns the folder's
// path. Files already present with the same names are overwritten, so
// distributing the same pair twice is harmless.
//
// rootPath must be an existing directory: the mounted card's root, either
// a Windows drive like `D:\` or a mount point like /media/sdcard.
func Distribute(ctx context.Context, pair model.ArtifactPair, rootPath string) (string, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		return "", fmt.Errorf("SD card not accessible at %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("SD card path %s is not a directory", rootPath)
	}

	targetDir := filepath.Join(rootPath, TargetDirName)
	if err := ioutils.EnsureDir(targetDir); err != nil {
		return "", fmt.Errorf("creating %s folder on card: %w", TargetDirName, err)
	}

	captureName, configName := pair.FileNames()
	if err := ioutils.CopyFile(ctx, pair.IQCapturePath, filepath.Join(targetDir, captureName)); err != nil {
		return "", fmt.Errorf("copying %s: %w", captureName, err)
	}
	if err := ioutils.CopyFile(ctx, pair.ConfigPath, filepath.Join(targetDir, configName)); err != nil {
		return "", fmt.Errorf("copying %s: %w", configName, err)
	}
	return targetDir, nil
}
