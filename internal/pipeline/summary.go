package pipeline

import "github.com/google/uuid"

// SkippedPower is a power that was found but could not be rewritten
type SkippedPower struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// FileResult records what happened to one character file
type FileResult struct {
	InputPath  string         `json:"input_path"`
	OutputPath string         `json:"output_path,omitempty"`
	PDFPath    string         `json:"pdf_path,omitempty"`
	Names      []string       `json:"names"`
	Rendered   int            `json:"rendered"`
	Missing    []string       `json:"missing,omitempty"`
	Skipped    []SkippedPower `json:"skipped,omitempty"`
	Err        error          `json:"-"`
}

// Succeeded reports whether the file's sheet was written.
func (r FileResult) Succeeded() bool {
	return r.Err == nil && r.OutputPath != ""
}

// RunSummary collects the results of one Run
type RunSummary struct {
	RunID uuid.UUID    `json:"run_id"`
	Files []FileResult `json:"files"`
}

// Failed counts files whose sheet was not written.
func (s *RunSummary) Failed() int {
	count := 0
	for _, f := range s.Files {
		if !f.Succeeded() {
			count++
		}
	}
	return count
}

// Rendered counts power cards written across all files.
func (s *RunSummary) Rendered() int {
	total := 0
	for _, f := range s.Files {
		total += f.Rendered
	}
	return total
}
