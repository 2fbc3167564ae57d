package report

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/lintpost/internal/lint"
	"github.com/dshills/lintpost/internal/output"
)

// Reviewer is the hosting review system the pipeline reports into. It
// supplies the links' coordinates and receives the rendered comment.
type Reviewer interface {
	// Supported reports whether links can be built for this host.
	Supported() bool
	HostURL() string
	RepoSlug() string
	CommitSHA(ctx context.Context) (string, error)
	// Publish attaches markdown to the review under consideration.
	Publish(ctx context.Context, markdown string) error
	// Fail surfaces a terminal error as a check failure.
	Fail(ctx context.Context, message string) error
}

// Source supplies findings and knows whether the linter can run.
type Source interface {
	CheckInstalled() error
	Obtain(ctx context.Context, path string) ([]lint.Finding, error)
}

// Options configures a Pipeline. Callers may change it between Report calls;
// Report only reads it.
type Options struct {
	EnabledTypes []lint.Severity
	IssueEmoji   map[lint.Severity]string
	// WorkingRoot is stripped from each finding's absolute path.
	WorkingRoot string
	Heading     string

	RedactSecrets bool
	RedactPaths   []string
	// Exclude drops findings whose repository path matches any glob.
	Exclude []string
	// ChangedFiles, when non-nil, limits the table to these repository paths.
	ChangedFiles map[string]bool
}

// DefaultOptions returns the stock severity set and emoji.
func DefaultOptions() Options {
	return Options{
		EnabledTypes: []lint.Severity{lint.SeverityWarning, lint.SeverityError},
		IssueEmoji: map[lint.Severity]string{
			lint.SeverityWarning: "⚠",
			lint.SeverityError:   "❌",
		},
		Heading: output.DefaultHeading,
	}
}

// RepoContext pins the links of one Report call to a repository and commit.
type RepoContext struct {
	HostURL     string `validate:"required,url"`
	RepoSlug    string `validate:"required,contains=/"`
	CommitSHA   string `validate:"required"`
	WorkingRoot string `validate:"required"`
}

var validate = validator.New()

// Validate checks every field is populated and well formed.
func (c RepoContext) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContext, err)
	}
	return nil
}
