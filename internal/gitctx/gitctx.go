package gitctx

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta() (RepoMeta, error) {
	root, err := gitOutput("rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput("rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// RemoteURL returns the URL of the named remote.
func RemoteURL(remote string) (string, error) {
	out, err := gitOutput("remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("git remote get-url %s: %w", remote, err)
	}
	return strings.TrimSpace(out), nil
}

// ChangedFiles returns the repository paths touched between the merge base of
// base and HEAD.
func ChangedFiles(base string) ([]string, error) {
	out, err := gitOutput("diff", "--no-color", base+"...HEAD")
	if err != nil {
		return nil, fmt.Errorf("git diff %s...HEAD: %w", base, err)
	}
	return FilesFromDiff(out)
}

// FilesFromDiff lists the post-image paths of a unified multi-file diff.
// Deleted files are skipped.
func FilesFromDiff(unified string) ([]string, error) {
	if strings.TrimSpace(unified) == "" {
		return nil, nil
	}
	fileDiffs, err := diff.ParseMultiFileDiff([]byte(unified))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	var files []string
	seen := make(map[string]bool)
	for _, fd := range fileDiffs {
		name := fd.NewName
		if name == "" || name == "/dev/null" {
			continue
		}
		name = strings.TrimPrefix(name, "b/")
		if !seen[name] {
			seen[name] = true
			files = append(files, name)
		}
	}
	return files, nil
}

// MatchesAny returns true if the path matches any of the given glob patterns.
func MatchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		clean := strings.TrimPrefix(pattern, "**/")
		if clean != pattern {
			matched, err = filepath.Match(clean, filepath.Base(path))
			if err == nil && matched {
				return true
			}
			matched, err = filepath.Match(clean, path)
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
