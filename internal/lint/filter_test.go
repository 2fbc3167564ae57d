package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Enabled(t *testing.T) {
	f := NewFilter(SeverityWarning, SeverityError)

	assert.True(t, f.Enabled(SeverityWarning))
	assert.True(t, f.Enabled(SeverityError))
	assert.False(t, f.Enabled(Severity("Warning")), "match is case-sensitive")
	assert.False(t, f.Enabled(Severity("warn")), "no partial matches")
	assert.False(t, f.Enabled(Severity("fatal")))
	assert.False(t, f.Enabled(""))
}

func TestFilter_Empty(t *testing.T) {
	f := NewFilter()
	assert.False(t, f.Enabled(SeverityWarning))
	assert.Empty(t, f.Apply([]Finding{{Severity: SeverityWarning}}))
}

func TestFilter_ApplyKeepsOrder(t *testing.T) {
	findings := []Finding{
		{Severity: SeverityWarning, Line: 1},
		{Severity: SeverityError, Line: 2},
		{Severity: "fatal", Line: 3},
		{Severity: SeverityWarning, Line: 4},
		{Severity: SeverityError, Line: 5},
	}

	got := NewFilter(SeverityWarning).Apply(findings)
	assert.Equal(t, []Finding{{Severity: SeverityWarning, Line: 1}, {Severity: SeverityWarning, Line: 4}}, got)

	got = NewFilter(SeverityError, SeverityWarning).Apply(findings)
	lines := make([]int, len(got))
	for i, f := range got {
		lines[i] = f.Line
	}
	assert.Equal(t, []int{1, 2, 4, 5}, lines)
}
