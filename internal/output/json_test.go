package output

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, sampleTable()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var parsed Table
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(parsed.Rows) != 2 {
		t.Fatalf("Rows count = %d, want 2", len(parsed.Rows))
	}
	if parsed.Rows[1].Emoji != "❌" {
		t.Errorf("Rows[1].Emoji = %q", parsed.Rows[1].Emoji)
	}
	if parsed.Rows[0].Severity != "warning" {
		t.Errorf("Rows[0].Severity = %q", parsed.Rows[0].Severity)
	}
}

func TestJSONWriter_EmptyRowsIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, &Table{}); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"rows": []`)) {
		t.Errorf("expected empty rows array, got %s", buf.String())
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"markdown", "json", ""} {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q) error: %v", format, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
