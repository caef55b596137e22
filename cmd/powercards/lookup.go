package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/powercards/internal/config"
	"github.com/jonathan/powercards/internal/db"
	"github.com/jonathan/powercards/internal/rendering"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <power-name>...",
	Short: "Print the rewritten card markup for powers",
	Long:  "Looks up each power by exact name and prints its rewritten fragment. Powers that are missing or cannot be rewritten are reported on stderr.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

var (
	lookupDatabase   string
	lookupSentinelID string
)

func init() {
	lookupCmd.Flags().StringVar(&lookupDatabase, "db", "", "SQLite path or PostgreSQL URL of the powers store (default from env or ./data/powers.db)")
	lookupCmd.Flags().StringVar(&lookupSentinelID, "sentinel-id", "", "id of the element rewritten in stored fragments (default detail)")

	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	settings := config.Config{Database: lookupDatabase, SentinelID: lookupSentinelID}
	env := config.FromEnv(os.Getenv)
	settings = settings.MergeWithDefaults(env.MergeWithDefaults(config.Defaults()))

	repo, err := db.Open(ctx, settings.Database)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	missing := 0
	for _, name := range args {
		record, found, err := repo.Lookup(ctx, name)
		if err != nil {
			return err
		}
		if !found {
			missing++
			_, _ = fmt.Fprintf(errOut, "Power %s not found in the database\n", name)
			continue
		}

		fragment, err := rendering.RewriteFragment(record, settings.SentinelID)
		if err != nil {
			missing++
			_, _ = fmt.Fprintf(errOut, "Skipping %s: %v\n", name, err)
			continue
		}
		_, _ = fmt.Fprintln(out, fragment)
	}

	if missing == len(args) {
		return fmt.Errorf("none of the %d powers could be rendered", len(args))
	}
	return nil
}
