// Package repopath turns absolute paths reported by a linter into
// repository-relative paths and commit-pinned GitHub links.
package repopath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPathResolution is returned when a path does not contain the working root.
var ErrPathResolution = errors.New("path resolution failed")

// ToRepoRelative strips root from abs. The root is located at its first
// occurrence anywhere in abs, not only as a prefix, and everything after the
// match is returned, including the leading separator.
func ToRepoRelative(abs, root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("%w: working root is empty", ErrPathResolution)
	}
	i := strings.Index(abs, root)
	if i < 0 {
		return "", fmt.Errorf("%w: %q is not under working root %q", ErrPathResolution, abs, root)
	}
	return abs[i+len(root):], nil
}

// IssueLink builds <hostURL>/<slug>/tree/<sha><rel>#L<line>. rel is expected
// to start with "/" already; no separator is inserted before it.
func IssueLink(hostURL, slug, sha, rel string, line int) string {
	return fmt.Sprintf("%s/%s/tree/%s%s#L%d", strings.TrimRight(hostURL, "/"), slug, sha, rel, line)
}

// Label is the link text shown for a finding.
func Label(rel string, line int) string {
	return fmt.Sprintf("%s (line %d)", rel, line)
}
