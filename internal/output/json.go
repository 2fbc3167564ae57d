package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter outputs the resolved table as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, table *Table) error {
	if table == nil {
		table = &Table{}
	}
	if table.Rows == nil {
		table = &Table{Heading: table.Heading, Rows: []Row{}}
	}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
