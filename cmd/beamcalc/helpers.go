// Shared helpers for beamcalc CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ionbeam-tools/beamcalc/internal/species"
	"github.com/ionbeam-tools/beamcalc/pkg/beam"
)

// snapshotOrder fixes the row order when printing a beam snapshot.
var snapshotOrder = []string{"mass", "charge", "energy", "momentum", "gamma", "beta", "rigidity"}

// attachCatalog resolves the data directory and attaches the species
// catalog. The caller must defer catalog.Detach().
func attachCatalog() (*species.Catalog, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	catalog := species.NewCatalog()
	cfg := species.Config{
		DataDir:     dataDir,
		WeightsFile: configWeightsFile,
	}
	if err := catalog.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach catalog: %w", err)
	}
	return catalog, nil
}

// printSnapshot writes a beam snapshot as an aligned table with units, or as
// JSON when asJSON is set. Values use the fixed 6-decimal display precision.
func printSnapshot(w io.Writer, snap map[string]float64, asJSON bool) error {
	if asJSON {
		output, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		fmt.Fprintln(w, string(output))
		return nil
	}

	for _, name := range snapshotOrder {
		if name == "charge" {
			fmt.Fprintf(w, "%-10s %14d  [%s]\n", name, int(snap[name]), beam.Units[name])
			continue
		}
		fmt.Fprintf(w, "%-10s %14.6f  [%s]\n", name, snap[name], beam.Units[name])
	}
	return nil
}
