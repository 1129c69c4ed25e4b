// Package ioutils provides file system utilities shared by the pipeline.
//
// This package contains functions for:
//   - File copying and writing
//   - Directory creation
//   - Streaming SHA-256 checksums for run manifests
//
// # File Operations
//
//	// Copy a file
//	err := ioutils.CopyFile(ctx, "/src/capture.c8", "/dst/capture.c8")
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/path/to/file.txt", []byte("content"))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Checksums
//
// Use ChecksumFile to hash large artifacts without loading them into memory:
//
//	sum, err := ioutils.ChecksumFile("/path/to/capture.c8")
//	// sum is the lowercase hex SHA-256 digest
package ioutils
