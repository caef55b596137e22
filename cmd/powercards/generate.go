package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/powercards/internal/config"
	"github.com/jonathan/powercards/internal/observability"
	"github.com/jonathan/powercards/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate printable power sheets for every character file",
	Long: `Reads every character file in the input directory, resolves each referenced
power in the powers store and writes <name>.html into the output directory.

Settings come from, highest priority first: command-line flags, the JSON file
given with --config, environment variables (POWERCARDS_INPUT_DIR,
POWERCARDS_INPUT_EXT, POWERCARDS_OUTPUT_DIR, POWERCARDS_DB or DATABASE_URL,
POWERCARDS_SENTINEL_ID, POWERCARDS_TITLE; a .env file is loaded if present) and built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

// generateOptions holds the raw flag values of the generate command
type generateOptions struct {
	configPath string
	inputDir   string
	inputExt   string
	outputDir  string
	database   string
	sentinelID string
	title      string
	pdf        bool
}

var genOpts generateOptions

func init() {
	addGenerateFlags(generateCmd.Flags(), &genOpts)
	rootCmd.AddCommand(generateCmd)
}

func addGenerateFlags(fs *pflag.FlagSet, o *generateOptions) {
	// Config file flag (processed first)
	fs.StringVar(&o.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	fs.StringVarP(&o.inputDir, "input-dir", "i", "", "Directory of character files (default ./data/characters)")
	fs.StringVar(&o.inputExt, "input-ext", "", "Extension of character files (default .dnd4e)")
	fs.StringVarP(&o.outputDir, "output-dir", "o", "", "Directory for generated sheets (default ./data/printables)")
	fs.StringVar(&o.database, "db", "", "SQLite path or PostgreSQL URL of the powers store (default ./data/powers.db)")
	fs.StringVar(&o.sentinelID, "sentinel-id", "", "id of the element rewritten in stored fragments (default detail)")
	fs.StringVar(&o.title, "title", "", "Title of every generated sheet (default \"Power Texts\")")
	fs.BoolVar(&o.pdf, "pdf", false, "Also print each sheet to PDF (requires Chrome)")
}

// resolve layers flags over the config file, the environment and defaults.
func (o *generateOptions) resolve(fs *pflag.FlagSet, getenv func(string) string) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if o.configPath != "" {
		loadedCfg, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (only flags that were explicitly set)
	if fs.Changed("input-dir") {
		cfg.InputDir = o.inputDir
	}
	if fs.Changed("input-ext") {
		cfg.InputExt = o.inputExt
	}
	if fs.Changed("output-dir") {
		cfg.OutputDir = o.outputDir
	}
	if fs.Changed("db") {
		cfg.Database = o.database
	}
	if fs.Changed("sentinel-id") {
		cfg.SentinelID = o.sentinelID
	}
	if fs.Changed("title") {
		cfg.Title = o.title
	}
	if fs.Changed("pdf") {
		cfg.PDF = o.pdf
	}

	// Step 3: Fill the gaps from the environment, then defaults
	env := config.FromEnv(getenv)
	cfg = cfg.MergeWithDefaults(env.MergeWithDefaults(config.Defaults()))

	// Step 4: Validate the merged config
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := genOpts.resolve(cmd.Flags(), os.Getenv)
	if err != nil {
		return err
	}
	cfg.Verbose = cfg.Verbose || verbose
	if cfg.Verbose && (logger == nil || !logger.Core().Enabled(zapcore.DebugLevel)) {
		debugLogger, err := newLogger(true)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if logger != nil {
			_ = logger.Sync()
		}
		logger = debugLogger
	}

	driver := pipeline.NewDriver(cfg, logger)
	summary, runErr := driver.Run(context.Background())

	observability.NewPrinter(cmd.OutOrStdout()).PrintRunSummary(summary)

	if runErr != nil {
		return fmt.Errorf("generation aborted: %w", runErr)
	}
	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d character files failed", failed, len(summary.Files))
	}
	return nil
}
