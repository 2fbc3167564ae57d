package lint

import "strings"

// Severity is the normalized, lowercase severity tag of a finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// NormalizeSeverity lowercases a severity as reported by the linter.
// Unknown values are kept as-is so that filtering, not parsing, rejects them.
func NormalizeSeverity(s string) Severity {
	return Severity(strings.ToLower(s))
}

// Finding is one normalized entry of a lint report.
type Finding struct {
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Reason   string   `json:"reason"`
}

// rawFinding mirrors a single object of the linter's JSON reporter.
type rawFinding struct {
	Severity string `json:"severity"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Reason   string `json:"reason"`
	RuleID   string `json:"rule_id,omitempty"`
}

func (r rawFinding) normalize() Finding {
	return Finding{
		Severity: NormalizeSeverity(r.Severity),
		File:     r.File,
		Line:     r.Line,
		Reason:   r.Reason,
	}
}
