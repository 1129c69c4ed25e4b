// Package ephemeris validates and inspects RINEX broadcast ephemeris
// files before they are handed to the simulation tool.
//
// Validation is deliberately shallow for downloaded files (a size check
// that catches archive error pages) and advisory for manually supplied
// ones (warnings, not rejections). The optional Inspect pass decodes the
// file with a real RINEX parser and counts ephemeris records.
package ephemeris
