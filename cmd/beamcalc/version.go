// Version command for the beamcalc CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ionbeam-tools/beamcalc/pkg/beamcalc"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the beamcalc version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("beamcalc", beamcalc.Version)
	},
}
