package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/lintpost/internal/gitctx"
	"github.com/dshills/lintpost/internal/lint"
	"github.com/dshills/lintpost/internal/output"
	"github.com/dshills/lintpost/internal/redact"
	"github.com/dshills/lintpost/internal/repopath"
)

// Pipeline turns a lint report into a PR comment.
type Pipeline struct {
	// Options may be mutated between Report calls.
	Options Options

	source   Source
	reviewer Reviewer
	log      *zap.SugaredLogger
}

// New creates a Pipeline. A nil logger discards log output.
func New(source Source, reviewer Reviewer, opts Options, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{
		Options:  opts,
		source:   source,
		reviewer: reviewer,
		log:      log,
	}
}

// Report lints (or reads the report at path), filters and resolves the
// findings and publishes them as a markdown table. Nothing is published when
// no finding survives. A terminal error is passed to Reviewer.Fail once and
// returned.
func (p *Pipeline) Report(ctx context.Context, path string) error {
	log := p.log.With("run_id", uuid.NewString())

	table, err := p.run(ctx, path, log)
	if err == nil {
		markdown := output.RenderMarkdown(table)
		if markdown == "" {
			log.Infow("no findings to publish")
			return nil
		}
		if err = p.reviewer.Publish(ctx, markdown); err == nil {
			log.Infow("published findings", "rows", len(table.Rows))
			return nil
		}
		err = fmt.Errorf("publishing report: %w", err)
	}

	log.Debugw("report failed", "error", err)
	if ferr := p.reviewer.Fail(ctx, err.Error()); ferr != nil {
		log.Warnw("could not record failure", "error", ferr)
	}
	return err
}

// Table runs every step except publishing. A nil table with a nil error
// means the report had no findings.
func (p *Pipeline) Table(ctx context.Context, path string) (*output.Table, error) {
	return p.run(ctx, path, p.log)
}

func (p *Pipeline) run(ctx context.Context, path string, log *zap.SugaredLogger) (*output.Table, error) {
	if err := p.source.CheckInstalled(); err != nil {
		return nil, err
	}

	findings, err := p.source.Obtain(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(findings) == 0 {
		log.Infow("report is empty")
		return nil, nil
	}

	opts := p.Options
	kept := lint.NewFilter(opts.EnabledTypes...).Apply(findings)
	log.Debugw("filtered findings", "findings", len(findings), "kept", len(kept))

	if !p.reviewer.Supported() {
		return nil, ErrUnsupportedHost
	}
	rc, err := p.repoContext(ctx)
	if err != nil {
		return nil, err
	}

	table := &output.Table{Heading: opts.Heading}
	for _, f := range kept {
		rel, err := repopath.ToRepoRelative(f.File, rc.WorkingRoot)
		if err != nil {
			return nil, err
		}

		repoPath := strings.TrimPrefix(rel, "/")
		if gitctx.MatchesAny(repoPath, opts.Exclude) {
			continue
		}
		if opts.ChangedFiles != nil && !opts.ChangedFiles[repoPath] {
			continue
		}

		emoji, ok := opts.IssueEmoji[f.Severity]
		if !ok || emoji == "" {
			return nil, fmt.Errorf("%w %q", ErrMissingEmoji, f.Severity)
		}

		reason := f.Reason
		if opts.RedactSecrets {
			reason = redact.Reason(reason, rel, opts.RedactPaths)
		}

		table.Rows = append(table.Rows, output.Row{
			Severity: f.Severity,
			Emoji:    emoji,
			Label:    repopath.Label(rel, f.Line),
			Link:     repopath.IssueLink(rc.HostURL, rc.RepoSlug, rc.CommitSHA, rel, f.Line),
			Reason:   reason,
		})
	}
	log.Debugw("resolved findings", "rows", len(table.Rows))
	return table, nil
}

// repoContext reads the reviewer's coordinates once per run.
func (p *Pipeline) repoContext(ctx context.Context) (RepoContext, error) {
	sha, err := p.reviewer.CommitSHA(ctx)
	if err != nil {
		return RepoContext{}, fmt.Errorf("%w: head commit: %w", ErrInvalidContext, err)
	}
	rc := RepoContext{
		HostURL:     p.reviewer.HostURL(),
		RepoSlug:    p.reviewer.RepoSlug(),
		CommitSHA:   sha,
		WorkingRoot: p.Options.WorkingRoot,
	}
	if err := rc.Validate(); err != nil {
		return RepoContext{}, err
	}
	return rc, nil
}
