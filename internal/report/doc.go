// Package report runs the lint-to-comment pipeline.
//
// A [Pipeline] checks the linter is installed, obtains findings from a
// [Source], keeps the enabled severities, resolves each file to a
// repository-relative path with a deep link at the head commit, and hands
// the rendered table to a [Reviewer]. Terminal errors are reported through
// [Reviewer.Fail] and returned to the caller.
package report
