// Package cddis locates and downloads daily GPS broadcast ephemeris files
// from the NASA CDDIS archive.
//
// # File naming
//
// The archive publishes one combined broadcast ephemeris file per day,
// named after the day-of-year and two-digit year:
//
//	brdc1560.25n        day 156 of 2025, plain RINEX
//	brdc1560.25n.gz     the same file, gzip compressed
//	brdc1560.25n.Z      the same file, legacy compress suffix
//
// EphemerisReference computes these names and their URLs for a date.
//
// # Acquisition
//
// Acquirer tries the three forms in order and returns the first one that
// downloads at a plausible size, decompressed and ready for the simulation
// tool:
//
//	acq := cddis.NewAcquirer(client, baseURL, 100*1024)
//	path, err := acq.Acquire(ctx, cddis.NewReference(simTime), outputPath)
//	if errors.Is(err, cddis.ErrAllCandidatesFailed) {
//	    // fall back to a manually downloaded file
//	}
//
// The archive requires login for scripted downloads, so anonymous requests
// often receive a small HTML login page with status 200. Acquirer discards
// any download under the configured minimum size for exactly that reason.
package cddis
