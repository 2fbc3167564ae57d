// Package github provides a minimal GitHub REST API client for publishing
// lint results on pull requests.
//
// It reads GITHUB_TOKEN (and optionally GITHUB_API_URL) from the environment
// and detects owner/repo from the local git remote. [Reviewer] posts the
// findings table as a pull request conversation comment and reports
// failures as a "lintpost" commit status on the head commit.
package github
