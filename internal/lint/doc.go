// Package lint reads linter JSON reports and normalizes their findings.
//
// A [Source] either reads an existing report or runs the linter (SwiftLint
// by default) in quiet JSON-reporter mode to produce one. Reports are checked
// against a JSON Schema before decoding, and every failure to obtain one wraps
// [ErrReportUnavailable]. [Filter] selects findings by severity tag.
package lint
