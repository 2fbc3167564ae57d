// Lintpost posts linter findings to GitHub pull requests.
//
// It runs SwiftLint in JSON-reporter mode (or reads an existing report),
// keeps the enabled severities and posts a markdown table linking every
// finding to its line at the pull request's head commit.
//
// Usage:
//
//	lintpost report                          # lint and comment on the PR
//	lintpost report swiftlint_report.json    # post an existing report
//	lintpost report --dry-run                # print the table locally
//	lintpost report --format json --out f    # write the rows as JSON
//	lintpost config show                     # print effective configuration
//
// GITHUB_TOKEN is required unless --dry-run is given.
package main
