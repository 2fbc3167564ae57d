package lint

// Filter is the set of severity tags allowed through to the report.
type Filter map[Severity]bool

// NewFilter builds a Filter enabling exactly the given severities.
func NewFilter(enabled ...Severity) Filter {
	f := make(Filter, len(enabled))
	for _, s := range enabled {
		f[s] = true
	}
	return f
}

// Enabled reports whether sev is a member of the filter. The match is exact
// and case-sensitive on the normalized tag.
func (f Filter) Enabled(sev Severity) bool {
	return f[sev]
}

// Apply returns the findings whose severity is enabled, in their original order.
func (f Filter) Apply(findings []Finding) []Finding {
	var kept []Finding
	for _, fd := range findings {
		if f.Enabled(fd.Severity) {
			kept = append(kept, fd)
		}
	}
	return kept
}
