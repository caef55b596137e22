package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/powercards/internal/version"
)

var versionFull bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the powercards version",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "Also print commit and build date")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) {
	if versionFull {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "powercards version "+version.Info())
}
