package output

import (
	"fmt"
	"io"

	"github.com/agentstation/roster/internal/cmd/globals"
	"github.com/agentstation/roster/pkg/importer"
)

// ImportSummary is the machine-readable result of an import run.
type ImportSummary struct {
	RunID      string              `json:"run_id" yaml:"run_id"`
	OutputFile string              `json:"output_file,omitempty" yaml:"output_file,omitempty"`
	Admitted   int                 `json:"admitted" yaml:"admitted"`
	Rejected   int                 `json:"rejected" yaml:"rejected"`
	Duplicates int                 `json:"duplicates" yaml:"duplicates"`
	Records    int                 `json:"records" yaml:"records"`
	Files      []importer.FileStat `json:"files" yaml:"files"`
}

// FormatImport writes an import summary in the format chosen by the global flags.
// Table output lists the files; the other formats print the whole summary.
func FormatImport(w io.Writer, summary ImportSummary, globalFlags *globals.Flags) error {
	format := DetectFormat(globalFlags.Output)
	formatter := NewFormatter(format)

	switch format {
	case FormatTable, FormatWide:
		return formatter.Format(w, summary.Files)
	default:
		return formatter.Format(w, summary)
	}
}

// Lines renders the summary as plain text.
func (s ImportSummary) Lines() []string {
	lines := []string{
		fmt.Sprintf("Imported %d records from %d files (%d rejected, %d duplicates)",
			s.Admitted, len(s.Files), s.Rejected, s.Duplicates),
	}
	if s.OutputFile == "" {
		return append(lines, fmt.Sprintf("Dry run: %d records not written", s.Records))
	}
	return append(lines, fmt.Sprintf("Wrote %d records to %s", s.Records, s.OutputFile))
}
