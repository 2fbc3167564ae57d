// Package output formats resolved lint findings.
//
// Two formats are supported:
//   - markdown: the "Severity | File | Message" table posted as a PR comment
//   - json:     the same rows as structured JSON, for dry runs and scripting
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [RenderMarkdown] to get the comment body directly. An empty table renders
// to nothing so that callers can skip publishing.
package output
