// Package pipeline coordinates a complete simulation preparation run.
//
// # Stages
//
// A run moves through fixed stages in order:
//
//  1. Resolve the simulation tool and the work directory
//  2. Acquire the broadcast ephemeris file for the simulation date,
//     either from the archive or from a path the user supplies
//  3. Inspect the ephemeris file and report how much it decodes
//  4. Run the simulation tool to produce the IQ capture and write the
//     transmitter configuration beside it
//  5. Record a manifest of what was produced
//
// Copying the artifacts onto an SD card is a separate, optional step;
// its failure never invalidates a completed run.
//
// # Progress reporting
//
// The Runner reports through a callback of leveled ProgressEvent values,
// the same shape both front ends consume:
//
//	runner := pipeline.NewRunner(settings, func(event pipeline.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	result, err := runner.Run(ctx, req)
//
// Byte-level download progress is polled separately through
// GetDownloadProgress, which is safe to call from another goroutine.
package pipeline
