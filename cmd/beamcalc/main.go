// Package main provides the beamcalc CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ionbeam-tools/beamcalc/internal/species"
	"github.com/ionbeam-tools/beamcalc/pkg/beam"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode classifies a failure: bad user input exits 1, everything else
// (I/O, database, bugs) exits 2.
func exitCode(err error) int {
	userErrors := []error{
		beam.ErrDomain,
		beam.ErrIncompleteSpecification,
		beam.ErrInvalidMass,
		beam.ErrInvalidCharge,
		beam.ErrUnknownQuantity,
		species.ErrMalformedIdentifier,
		species.ErrUnknownSpecies,
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}
