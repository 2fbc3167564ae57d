package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/lintpost/internal/lint"
)

// DefaultHeading is the title line of the findings table.
const DefaultHeading = "SwiftLint found issues"

// Row is one finding as it appears in the table.
type Row struct {
	Severity lint.Severity `json:"severity"`
	Emoji    string        `json:"emoji"`
	Label    string        `json:"label"`
	Link     string        `json:"link"`
	Reason   string        `json:"reason"`
}

// Table is an ordered set of rows under a heading.
type Table struct {
	Heading string `json:"heading"`
	Rows    []Row  `json:"rows"`
}

// Writer writes a table in a specific format.
type Writer interface {
	Write(w io.Writer, table *Table) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "markdown", "":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteTable writes the table to the specified output (file path or stdout).
func WriteTable(table *Table, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, table)
}

// RenderMarkdown returns the markdown for table, or "" when it has no rows.
func RenderMarkdown(table *Table) string {
	var sb strings.Builder
	// strings.Builder never fails a write.
	_ = (&MarkdownWriter{}).Write(&sb, table)
	return sb.String()
}
