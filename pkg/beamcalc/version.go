// Package beamcalc holds module-level metadata shared by the CLI and build
// tooling.
package beamcalc

// Version is the beamcalc release version.
const Version = "0.1.0"
