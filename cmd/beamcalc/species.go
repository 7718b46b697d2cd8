// Species commands for inspecting and extending the atomic-weight catalog.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "Inspect and extend the atomic-weight catalog",
}

func init() {
	speciesCmd.AddCommand(speciesResolveCmd)
	speciesCmd.AddCommand(speciesListCmd)
	speciesCmd.AddCommand(speciesImportCmd)
}

var speciesResolveCmd = &cobra.Command{
	Use:   "resolve <identifier>",
	Short: "Resolve a species identifier to rest mass and charge",
	Long: `Resolve parses a species identifier like "40Ar10+" and looks up the
isotope's per-nucleon mass in the catalog.

Example:
  beamcalc species resolve 40Ar10+`,
	Args: cobra.ExactArgs(1),
	RunE: runSpeciesResolve,
}

func runSpeciesResolve(cmd *cobra.Command, args []string) error {
	catalog, err := attachCatalog()
	if err != nil {
		return err
	}
	defer catalog.Detach()

	s, err := catalog.Resolve(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		output, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal species: %w", err)
		}
		fmt.Fprintln(w, string(output))
		return nil
	}

	fmt.Fprintf(w, "%-10s %14s\n", "symbol", s.Symbol)
	fmt.Fprintf(w, "%-10s %14d\n", "nucleons", s.Nucleons)
	fmt.Fprintf(w, "%-10s %14d  [e]\n", "charge", s.Charge)
	fmt.Fprintf(w, "%-10s %14.6f  [GeV/c^2]\n", "mass", s.Mass)
	return nil
}

var speciesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all catalog entries",
	Args:  cobra.NoArgs,
	RunE:  runSpeciesList,
}

func runSpeciesList(cmd *cobra.Command, args []string) error {
	catalog, err := attachCatalog()
	if err != nil {
		return err
	}
	defer catalog.Detach()

	entries, err := catalog.List()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		output, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal entries: %w", err)
		}
		fmt.Fprintln(w, string(output))
		return nil
	}

	fmt.Fprintf(w, "%-8s %8s %22s\n", "symbol", "nucleons", "mass/nucleon [GeV]")
	for _, e := range entries {
		nucleons := fmt.Sprintf("%d", e.Nucleons)
		if e.Nucleons == 0 {
			nucleons = "any"
		}
		fmt.Fprintf(w, "%-8s %8s %22.6f\n", e.Symbol, nucleons, e.MassPerNucleon)
	}
	return nil
}

var speciesImportCmd = &cobra.Command{
	Use:   "import <weights.json>",
	Short: "Import an atomic-weight JSON table into the catalog",
	Long: `Import loads a JSON weights table into the catalog, replacing any
overlapping entries. The file maps element symbols to per-nucleon masses in
MeV, either directly or keyed by nucleon count:

  {"Ar": {"36": 930.876, "40": 930.618}, "Zz": 931.0}`,
	Args: cobra.ExactArgs(1),
	RunE: runSpeciesImport,
}

func runSpeciesImport(cmd *cobra.Command, args []string) error {
	catalog, err := attachCatalog()
	if err != nil {
		return err
	}
	defer catalog.Detach()

	if err := catalog.ImportFile(args[0]); err != nil {
		return err
	}

	imports, err := catalog.Imports()
	if err != nil {
		return err
	}
	last := imports[len(imports)-1]
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries from %s (import %s)\n",
		last.Entries, last.Source, last.ImportID)
	return nil
}
