package lint

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLinterNotInstalled is matched by the error returned when the linter
	// binary cannot be found on PATH.
	ErrLinterNotInstalled = errors.New("linter is not installed")

	// ErrReportUnavailable wraps every failure to read or decode a report.
	ErrReportUnavailable = errors.New("report unavailable")
)

// NotInstalledError reports a linter binary missing from PATH.
type NotInstalledError struct {
	Binary string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("%s is not in the user's PATH, or it failed to install", e.Binary)
}

func (e *NotInstalledError) Is(target error) bool {
	return target == ErrLinterNotInstalled
}

// FieldError is a single schema violation in a report document.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists the schema violations found in a report document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("report does not match the expected shape:")
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}
