// Repl command provides a line-oriented interactive mode with linked fields.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ionbeam-tools/beamcalc/internal/linked"
	"github.com/ionbeam-tools/beamcalc/internal/species"
	"github.com/ionbeam-tools/beamcalc/pkg/beam"
)

// fieldUnits labels the repl fields with their display units. Energy and
// momentum are shown per nucleon, energy as kinetic energy.
var fieldUnits = map[beam.Quantity]string{
	beam.Energy:   "GeV/u, kinetic",
	beam.Momentum: "GeV/c/u",
	beam.Gamma:    "1",
	beam.Beta:     "1",
	beam.Rigidity: "T*m",
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively edit linked beam quantity fields",
	Long: `Repl keeps the five quantity fields mutually consistent as you edit
any one of them, the way the calculator front end does.

Commands:
  species <identifier>    select a particle species, e.g. "species 40Ar10+"
  <quantity> <value>      edit one field, e.g. "gamma 2.5"
  show                    reprint the current fields
  quit                    leave the repl

Energy and momentum are entered and shown per nucleon; energy is kinetic.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	catalog, err := attachCatalog()
	if err != nil {
		return err
	}
	defer catalog.Detach()

	// Placeholder species until the first "species" command, matching the
	// calculator's startup state.
	b, err := beam.New(1, 1, map[beam.Quantity]float64{beam.Energy: 1})
	if err != nil {
		return err
	}
	fields, err := linked.New(b, 1)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, `Select a species ("species 40Ar10+") and edit any field ("gamma 2.5").`)
	printFields(out, fields)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		if line != "" {
			if err := replDispatch(catalog.Resolve, fields, line); err != nil {
				fmt.Fprintf(out, "invalid: %v\n", err)
			} else {
				printFields(out, fields)
			}
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

// resolveFunc looks up a species identifier; the indirection keeps
// replDispatch testable without a catalog.
type resolveFunc func(string) (species.Species, error)

// replDispatch executes one repl line against the linked fields.
func replDispatch(resolve resolveFunc, fields *linked.Fields, line string) error {
	parts := strings.Fields(line)

	switch {
	case parts[0] == "show":
		return nil

	case parts[0] == "species":
		if len(parts) != 2 {
			return fmt.Errorf("usage: species <identifier>")
		}
		s, err := resolve(parts[1])
		if err != nil {
			return err
		}
		return fields.SetSpecies(s.Mass, s.Charge, s.Nucleons)

	case len(parts) == 2 && beam.Quantity(parts[0]).Valid():
		value, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", parts[1])
		}
		return fields.Edit(beam.Quantity(parts[0]), value)

	default:
		return fmt.Errorf("unrecognized command %q", line)
	}
}

// printFields writes the five linked fields with the fixed display precision.
func printFields(w io.Writer, fields *linked.Fields) {
	for _, q := range beam.DefinitionPrecedence {
		fmt.Fprintf(w, "%-10s %14s  [%s]\n", q, linked.Format(fields.Value(q)), fieldUnits[q])
	}
}
