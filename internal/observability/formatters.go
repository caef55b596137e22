// Package observability provides formatted output utilities for CLI summaries.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/powercards/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for run summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFileResult outputs what happened to a single character file.
func (p *Printer) PrintFileResult(result *pipeline.FileResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Err != nil {
		sb.WriteString(fmt.Sprintf("Status:   FAILED\nError:    %v\n", result.Err))
		p.printBox(filepath.Base(result.InputPath), strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	sb.WriteString(fmt.Sprintf("Output:   %s\n", result.OutputPath))
	if result.PDFPath != "" {
		sb.WriteString(fmt.Sprintf("PDF:      %s\n", result.PDFPath))
	}
	sb.WriteString(fmt.Sprintf("Powers:   %d referenced, %d rendered\n", len(result.Names), result.Rendered))

	if len(result.Missing) > 0 {
		sb.WriteString(fmt.Sprintf("\nNot found (%d):\n", len(result.Missing)))
		writeList(&sb, result.Missing)
	}

	if len(result.Skipped) > 0 {
		names := make([]string, 0, len(result.Skipped))
		for _, s := range result.Skipped {
			names = append(names, s.Name)
		}
		sb.WriteString(fmt.Sprintf("\nSkipped (%d):\n", len(result.Skipped)))
		writeList(&sb, names)
	}

	p.printBox(filepath.Base(result.InputPath), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs one box per file followed by the run totals.
func (p *Printer) PrintRunSummary(summary *pipeline.RunSummary) {
	if summary == nil {
		return
	}

	for i := range summary.Files {
		p.PrintFileResult(&summary.Files[i])
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("Files:    %d processed, %d failed\n", len(summary.Files), summary.Failed()))
	sb.WriteString(fmt.Sprintf("Cards:    %d rendered", summary.Rendered()))
	p.printBox("RUN SUMMARY", sb.String())
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
