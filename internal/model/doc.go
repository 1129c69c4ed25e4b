// Package model defines the core data structures used throughout
// the GPS simulator preparation tool.
//
// # SimulationRequest
//
// SimulationRequest bundles the position and start time of one simulation:
//
//	req := model.SimulationRequest{
//	    Latitude:  -22.9519,
//	    Longitude: -43.2105,
//	    Altitude:  710,
//	    StartTime: start,
//	}
//	fmt.Println(req.LocationArg()) // "-22.9519,-43.2105,710"
//	fmt.Println(req.TimeArg())     // "2025/06/05,10:00:00"
//	fmt.Println(req.BaseName())    // deterministic per-request file base
//
// # Input parsing
//
// ParseCoordinate and ParseDateTime are the validate-or-reject helpers the
// interactive shells loop on. They check well-formedness only; values that
// parse are accepted as-is, without geodetic range checks:
//
//	lat, err := model.ParseCoordinate("-22,9519") // comma decimals accepted
//	t, err := model.ParseDateTime("2025-06-05", "10:00:00")
//
// # ArtifactPair
//
// ArtifactPair names the two files a run produces, the .c8 IQ capture and
// its .txt sidecar:
//
//	capture, config := pair.FileNames()
package model
