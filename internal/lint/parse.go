package lint

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// reportSchema describes the JSON reporter output: an array of objects.
// severity is only typed, never enumerated, so unknown levels survive parsing.
const reportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["severity", "file", "line"],
    "properties": {
      "severity": {"type": "string"},
      "file": {"type": "string"},
      "line": {"type": "integer", "minimum": 1},
      "reason": {"type": "string"}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(reportSchema)

// ReadFile reads and parses a report file as UTF-8 JSON.
func ReadFile(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReportUnavailable, err)
	}
	findings, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return findings, nil
}

// Parse validates data against the report schema and decodes it into
// findings, preserving report order.
func Parse(data []byte) ([]Finding, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", ErrReportUnavailable, err)
	}
	if !result.Valid() {
		schemaErr := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			schemaErr.Errors = append(schemaErr.Errors, FieldError{
				Field:   field,
				Message: desc.Description(),
			})
		}
		return nil, fmt.Errorf("%w: %w", ErrReportUnavailable, schemaErr)
	}

	var raw []rawFinding
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decoding report: %w", ErrReportUnavailable, err)
	}

	findings := make([]Finding, len(raw))
	for i, r := range raw {
		findings[i] = r.normalize()
	}
	return findings, nil
}
