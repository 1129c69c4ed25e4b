// Package sdcard copies generated artifacts onto a PortaPack SD card.
//
// The firmware expects the capture and its configuration file side by
// side in a top-level gps folder. Distribute creates that folder when
// needed and copies both files into it; NormalizeDriveInput turns the
// drive-letter shorthand Windows users type into a usable root path.
package sdcard
