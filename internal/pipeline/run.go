// Package pipeline turns a directory of character files into printable power sheets.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/powercards/internal/config"
	"github.com/jonathan/powercards/internal/db"
	"github.com/jonathan/powercards/internal/extraction"
	"github.com/jonathan/powercards/internal/printing"
	"github.com/jonathan/powercards/internal/rendering"
)

// Progress steps reported through ProgressCallback
const (
	StepExtracted = "extracted"
	StepWritten   = "written"
	StepPrinted   = "printed"
	StepFailed    = "failed"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	File    string `json:"file"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// OpenFunc opens the powers store named by dsn.
type OpenFunc func(ctx context.Context, dsn string) (db.Repository, error)

// PrintFunc prints the sheet at htmlPath to pdfPath.
type PrintFunc func(ctx context.Context, htmlPath, pdfPath string) error

// Driver processes character files one at a time. The store is opened for each
// file and closed once that file's sheet is written.
type Driver struct {
	Config     config.Config
	Open       OpenFunc
	Print      PrintFunc
	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// NewDriver returns a Driver wired to the real store and PDF printer.
func NewDriver(cfg config.Config, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	printOpts := printing.DefaultOptions()
	printOpts.Logger = logger
	return &Driver{
		Config: cfg,
		Open:   db.Open,
		Print: func(ctx context.Context, htmlPath, pdfPath string) error {
			return printing.PrintToPDF(ctx, htmlPath, pdfPath, printOpts)
		},
		Logger: logger,
	}
}

// Run processes every matching file in the input directory in name order.
// A file that fails is recorded in the summary and the run moves on; a
// *db.RepositoryError stops the run and is returned with the partial summary.
func (d *Driver) Run(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{RunID: uuid.New()}
	logger := d.logger().With(zap.String("run_id", summary.RunID.String()))

	files, err := ListInputFiles(d.Config.InputDir, d.Config.InputExt, logger)
	if err != nil {
		return summary, err
	}
	logger.Info("starting run",
		zap.String("input_dir", d.Config.InputDir),
		zap.Int("files", len(files)),
	)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := d.processFile(ctx, logger, summary.RunID, path)
		summary.Files = append(summary.Files, *result)
		if err == nil {
			continue
		}

		var repoErr *db.RepositoryError
		if errors.As(err, &repoErr) {
			logger.Error("powers store failed, aborting run", zap.String("file", path), zap.Error(err))
			return summary, err
		}
		logger.Error("skipping character file", zap.String("file", path), zap.Error(err))
		d.emit(ProgressEvent{Step: StepFailed, File: path, Message: err.Error(), RunID: summary.RunID.String()})
	}

	logger.Info("run complete",
		zap.Int("files", len(summary.Files)),
		zap.Int("failed", summary.Failed()),
		zap.Int("rendered", summary.Rendered()),
	)
	return summary, nil
}

// ProcessFile renders one character file to its sheet.
func (d *Driver) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	return d.processFile(ctx, d.logger(), uuid.Nil, path)
}

func (d *Driver) processFile(ctx context.Context, logger *zap.Logger, runID uuid.UUID, path string) (*FileResult, error) {
	result := &FileResult{InputPath: path}
	logger = logger.With(zap.String("file", filepath.Base(path)))
	runIDString := ""
	if runID != uuid.Nil {
		runIDString = runID.String()
	}

	names, err := extraction.ExtractPowerNamesFromFile(path)
	if err != nil {
		result.Err = err
		return result, err
	}
	result.Names = names
	logger.Debug("extracted power names", zap.Strings("powers", names))
	d.emit(ProgressEvent{
		Step:    StepExtracted,
		File:    path,
		Message: fmt.Sprintf("found %d powers", len(names)),
		RunID:   runIDString,
	})

	repo, err := d.open(ctx)
	if err != nil {
		result.Err = err
		return result, err
	}
	defer func() { _ = repo.Close() }()

	fragments, err := RenderPowers(ctx, repo, names, d.Config.SentinelID, logger, result)
	if err != nil {
		result.Err = err
		return result, err
	}

	outPath := OutputPath(d.Config.OutputDir, path)
	if err := writeSheet(outPath, rendering.ComposeDocumentWithOptions(fragments, rendering.ComposeOptions{Title: d.Config.Title})); err != nil {
		result.Err = err
		return result, err
	}
	result.OutputPath = outPath
	logger.Info("generated sheet",
		zap.String("output", outPath),
		zap.Int("rendered", result.Rendered),
		zap.Int("missing", len(result.Missing)),
		zap.Int("skipped", len(result.Skipped)),
	)
	d.emit(ProgressEvent{Step: StepWritten, File: path, Message: "Generated " + outPath, RunID: runIDString})

	if d.Config.PDF && d.Print != nil {
		pdfPath := printing.PDFPath(outPath)
		if err := d.Print(ctx, outPath, pdfPath); err != nil {
			logger.Warn("failed to print sheet to PDF", zap.String("output", outPath), zap.Error(err))
		} else {
			result.PDFPath = pdfPath
			d.emit(ProgressEvent{Step: StepPrinted, File: path, Message: "Printed " + pdfPath, RunID: runIDString})
		}
	}

	return result, nil
}

// RenderPowers looks up and rewrites each name in order. Missing powers and
// fragments that cannot be rewritten are logged, recorded on result and
// skipped. Only a repository failure is returned as an error.
func RenderPowers(ctx context.Context, repo db.Repository, names []string, sentinelID string, logger *zap.Logger, result *FileResult) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if result == nil {
		result = &FileResult{}
	}

	fragments := make([]string, 0, len(names))
	for _, name := range names {
		record, found, err := repo.Lookup(ctx, name)
		if err != nil {
			return nil, err
		}
		if !found {
			logger.Warn("power not found in the database", zap.String("power", name))
			result.Missing = append(result.Missing, name)
			continue
		}
		if !record.Category().IsStyled() {
			logger.Debug("power usage has no color rule", zap.String("power", name), zap.String("usage", record.Usage))
		}

		fragment, err := rendering.RewriteFragment(record, sentinelID)
		if err != nil {
			logger.Warn("skipping power", zap.String("power", name), zap.Error(err))
			result.Skipped = append(result.Skipped, SkippedPower{Name: name, Reason: err.Error()})
			continue
		}

		fragments = append(fragments, fragment)
		result.Rendered++
	}
	return fragments, nil
}

// ListInputFiles returns the regular files in dir whose extension is ext,
// sorted by name. Subdirectories are not searched.
func ListInputFiles(dir, ext string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) != ext || strings.TrimSuffix(name, ext) == "" {
			continue
		}
		path := filepath.Join(dir, name)
		// Stat follows symlinks so linked character files are picked up
		info, err := os.Stat(path)
		if err != nil {
			logger.Debug("ignoring unreadable character file", zap.String("file", path), zap.Error(err))
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// OutputPath returns <outputDir>/<input base name without extension>.html
func OutputPath(outputDir, inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".html")
}

func writeSheet(path, document string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(document), 0644); err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", path, err)
	}
	return nil
}

func (d *Driver) open(ctx context.Context) (db.Repository, error) {
	open := d.Open
	if open == nil {
		open = db.Open
	}
	repo, err := open(ctx, d.Config.Database)
	if err != nil {
		var repoErr *db.RepositoryError
		if errors.As(err, &repoErr) {
			return nil, err
		}
		return nil, &db.RepositoryError{Message: "failed to open powers store", Cause: err}
	}
	return repo, nil
}

func (d *Driver) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// emit calls the progress callback if configured
func (d *Driver) emit(event ProgressEvent) {
	if d.OnProgress != nil {
		d.OnProgress(event)
	}
}
