package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/powercards/internal/extraction"
)

var extractCmd = &cobra.Command{
	Use:   "extract <character-file>",
	Short: "List the powers a character file references",
	Long:  "Prints the name of every Power element in the character file, one per line, in document order.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	names, err := extraction.ExtractPowerNamesFromFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		_, _ = fmt.Fprintln(out, name)
	}
	return nil
}
