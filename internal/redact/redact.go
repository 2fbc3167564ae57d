package redact

import (
	"path/filepath"
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// secretPatterns match credential shapes that lint messages can quote from
// source lines (hard-coded keys flagged by custom rules, long string literals).
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// Google / Firebase API keys, common in iOS GoogleService plists and code.
	regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+)?PRIVATE KEY-----`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// ShouldRedactPath checks if a repository path matches any of the patterns.
// A leading "/" on path is ignored.
func ShouldRedactPath(path string, patterns []string) bool {
	path = strings.TrimPrefix(path, "/")
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		// "**/name" also matches the bare file name.
		cleanPattern := strings.TrimPrefix(pattern, "**/")
		if cleanPattern != pattern {
			matched, err = filepath.Match(cleanPattern, filepath.Base(path))
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Reason returns a lint message safe to post publicly. Messages for files
// under a redacted path are hidden entirely; others have secrets masked.
func Reason(reason, path string, redactPaths []string) string {
	if ShouldRedactPath(path, redactPaths) {
		return placeholder + " (message hidden by path policy)"
	}
	return Secrets(reason)
}
