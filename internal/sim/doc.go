// Package sim wraps the external gps-sdr-sim binary that synthesizes the
// GPS baseband signal.
//
// Signal synthesis itself happens entirely inside that tool. This package
// locates it, builds its command line from a simulation request, runs it
// under a time limit, and classifies its failures. It also writes the
// two-line configuration file the PortaPack transmitter reads alongside
// each capture.
package sim
