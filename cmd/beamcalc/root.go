// Root command for the beamcalc CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/ionbeam-tools/beamcalc/internal/paths"
	"github.com/ionbeam-tools/beamcalc/pkg/beamcalc"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands can
// use them.
var (
	configDataDir     string
	configWeightsFile string
)

var rootCmd = &cobra.Command{
	Use:   "beamcalc",
	Short: "Beamcalc converts between equivalent beam energy parameters",
	Long: `Beamcalc converts between the five equivalent representations of a
relativistic particle beam's kinetic state: total energy, momentum, Lorentz
factor (gamma), velocity fraction (beta), and magnetic rigidity. Species
identifiers like "40Ar10+" resolve against a local atomic-weight catalog.`,
	Version: beamcalc.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configWeightsFile = cfg.GetString(cfgKeyWeightsFile)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.beamcalc-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(speciesCmd)
	rootCmd.AddCommand(replCmd)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > BEAMCALC_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > BEAMCALC_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
