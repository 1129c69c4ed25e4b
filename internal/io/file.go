// Package ioutils provides file system utilities for the GPS simulator
// preparation tool.
//
// This package contains functions for:
//   - File copying
//   - File writing
//   - Directory creation
//   - Content checksumming
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The source file must exist and be readable.
//
// Parameters:
//   - ctx: Context for cancellation (currently unused but reserved for future use)
//   - src: Source file path (must exist)
//   - dst: Destination file path (will be created/overwritten)
//
// Returns an error if:
//   - Source file cannot be opened
//   - Destination file cannot be created
//   - Copy operation fails
//
// Example:
//
//	err := CopyFile(ctx, "/work/gps_sim_x.c8", "/media/sd/gps/gps_sim_x.c8")
func CopyFile(ctx context.Context, src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	return err
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Parameters:
//   - ctx: Context for cancellation (currently unused but reserved for future use)
//   - path: File path to write to
//   - data: Bytes to write
//
// Example:
//
//	sidecar := []byte("sample_rate=2600000\ncenter_frequency=1575420000\n")
//	err := WriteFile(ctx, "/work/gps_sim_x.txt", sidecar)
func WriteFile(ctx context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/media/sd/gps")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ChecksumFile computes the SHA-256 of a file's content and returns it as a
// lowercase hex string.
//
// The file is streamed, so arbitrarily large captures can be hashed without
// loading them into memory.
//
// Example:
//
//	sum, err := ChecksumFile("/work/gps_sim_x.c8")
//	// sum == "9f86d081884c7d659a2feaa0c55ad015..."
func ChecksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
