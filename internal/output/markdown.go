package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownWriter outputs the findings table for a PR comment. An empty table
// produces no output at all.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, table *Table) error {
	if table == nil || len(table.Rows) == 0 {
		return nil
	}
	ew := &errWriter{w: w}

	heading := table.Heading
	if heading == "" {
		heading = DefaultHeading
	}
	ew.printf("### %s\n\n", heading)
	ew.println("| Severity | File | Message |")
	ew.println("|----------|------|---------|")

	for _, r := range table.Rows {
		ew.printf("| %s | [%s](%s) | %s |\n", r.Emoji, cell(r.Label), r.Link, cell(r.Reason))
	}
	return ew.err
}

// cellReplacer keeps a value inside one table cell on one line.
var cellReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "|", `\|`)

func cell(s string) string {
	return cellReplacer.Replace(s)
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
