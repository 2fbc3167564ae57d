package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/lintpost/internal/config"
	"github.com/dshills/lintpost/internal/gitctx"
	"github.com/dshills/lintpost/internal/github"
)

// localReviewer prints the table for dry runs. Link coordinates come from the
// local checkout: the origin remote and HEAD.
type localReviewer struct {
	host      string
	hostURL   string
	slug      string
	sha       string
	supported bool
	outPath   string
	log       *zap.SugaredLogger
}

// newLocalReviewer inspects the working directory's git checkout. Lookups
// that fail leave their fields empty; the pipeline reports them only if a
// finding actually needs a link.
func newLocalReviewer(cfg config.Config, outPath string, log *zap.SugaredLogger) *localReviewer {
	r := &localReviewer{outPath: outPath, log: log}

	if meta, err := gitctx.GetRepoMeta(); err == nil {
		r.sha = meta.Head
	} else {
		log.Debugw("no git checkout", "error", err)
	}

	remote, err := gitctx.RemoteURL("origin")
	if err != nil {
		log.Debugw("no origin remote", "error", err)
		return r
	}
	host, err := github.RemoteHost(remote)
	if err != nil {
		log.Debugw("unrecognized remote", "remote", remote, "error", err)
		return r
	}
	owner, repo, _ := github.ParseRemoteURL(remote)
	if cfg.GitHub.Owner != "" {
		owner = cfg.GitHub.Owner
	}
	if cfg.GitHub.Repo != "" {
		repo = cfg.GitHub.Repo
	}

	r.host = host
	r.slug = owner + "/" + repo
	r.supported = github.IsGitHubHost(host, cfg.GitHub.ServerURL)
	r.hostURL = "https://" + host
	if u, err := url.Parse(cfg.GitHub.ServerURL); err == nil && strings.EqualFold(u.Host, host) {
		r.hostURL = strings.TrimRight(cfg.GitHub.ServerURL, "/")
	}
	return r
}

func (r *localReviewer) Supported() bool { return r.supported }

func (r *localReviewer) HostURL() string { return r.hostURL }

func (r *localReviewer) RepoSlug() string { return r.slug }

func (r *localReviewer) CommitSHA(ctx context.Context) (string, error) {
	if r.sha == "" {
		return "", errors.New("cannot determine HEAD commit")
	}
	return r.sha, nil
}

// Publish writes markdown to the output file, or stdout when none is set.
func (r *localReviewer) Publish(ctx context.Context, markdown string) error {
	var w io.Writer = os.Stdout
	if r.outPath != "" {
		f, err := os.Create(r.outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	_, err := io.WriteString(w, markdown)
	return err
}

// Fail only logs; a dry run has no check to mark.
func (r *localReviewer) Fail(ctx context.Context, message string) error {
	r.log.Debugw("dry run, not recording failure", "message", message)
	return nil
}
