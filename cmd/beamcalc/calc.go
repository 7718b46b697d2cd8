// Calc command converts one beam quantity into all equivalent representations.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionbeam-tools/beamcalc/pkg/beam"
)

// Calc flag values.
var (
	calcSpecies string
	calcMass    float64
	calcCharge  int
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Convert a beam quantity into all equivalent representations",
	Long: `Calc builds a beam state from one kinematic quantity and prints all
equivalent representations.

The species is given either via --species (resolved against the atomic-weight
catalog) or via explicit --mass and --charge. Exactly one of --energy,
--momentum, --gamma, --beta, --rigidity seeds the state; if several are given
the first in that order wins. All values are totals, not per-nucleon.

Example:
  beamcalc calc --species 40Ar10+ --gamma 2.5
  beamcalc calc --mass 0.938272 --charge 1 --energy 1.938272 --json`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcSpecies, "species", "", "species identifier, e.g. 40Ar10+")
	calcCmd.Flags().Float64Var(&calcMass, "mass", 0, "rest mass in GeV/c^2 (with --charge, instead of --species)")
	calcCmd.Flags().IntVar(&calcCharge, "charge", 0, "charge state in elementary charges")
	for _, q := range beam.DefinitionPrecedence {
		calcCmd.Flags().Float64(string(q), 0, fmt.Sprintf("%s [%s]", q, beam.Units[string(q)]))
	}
}

func runCalc(cmd *cobra.Command, args []string) error {
	mass, charge := calcMass, calcCharge
	if calcSpecies != "" {
		catalog, err := attachCatalog()
		if err != nil {
			return err
		}
		defer catalog.Detach()

		s, err := catalog.Resolve(calcSpecies)
		if err != nil {
			return err
		}
		mass, charge = s.Mass, s.Charge
	} else if !cmd.Flags().Changed("mass") || !cmd.Flags().Changed("charge") {
		return fmt.Errorf("either --species or both --mass and --charge are required")
	}

	values := make(map[beam.Quantity]float64)
	for _, q := range beam.DefinitionPrecedence {
		if !cmd.Flags().Changed(string(q)) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(string(q))
		if err != nil {
			return err
		}
		values[q] = v
	}

	b, err := beam.New(mass, charge, values)
	if err != nil {
		return err
	}

	return printSnapshot(cmd.OutOrStdout(), b.Snapshot(), flagJSON)
}
