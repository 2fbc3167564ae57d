package github

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Reviewer publishes lint results to one pull request. It posts the table as
// a conversation comment and records failures as a commit status on the
// pull request head.
type Reviewer struct {
	client    *Client
	owner     string
	repo      string
	pr        int
	serverURL string
	log       *zap.SugaredLogger

	headSHA string
}

// NewReviewer returns a Reviewer for owner/repo#pr. serverURL is the web host
// used in links; empty means github.com.
func NewReviewer(client *Client, owner, repo string, pr int, serverURL string, log *zap.SugaredLogger) *Reviewer {
	if serverURL == "" {
		serverURL = defaultServerURL
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Reviewer{
		client:    client,
		owner:     owner,
		repo:      repo,
		pr:        pr,
		serverURL: strings.TrimRight(serverURL, "/"),
		log:       log,
	}
}

func (r *Reviewer) Supported() bool { return true }

func (r *Reviewer) HostURL() string { return r.serverURL }

func (r *Reviewer) RepoSlug() string { return r.owner + "/" + r.repo }

// CommitSHA returns the pull request's head commit, fetched once.
func (r *Reviewer) CommitSHA(ctx context.Context) (string, error) {
	if r.headSHA != "" {
		return r.headSHA, nil
	}
	pr, err := r.client.GetPullRequest(ctx, r.owner, r.repo, r.pr)
	if err != nil {
		return "", err
	}
	r.headSHA = pr.Head.SHA
	r.log.Debugw("resolved pull request head", "pr", r.pr, "sha", r.headSHA)
	return r.headSHA, nil
}

// Publish posts markdown as a new comment on the pull request.
func (r *Reviewer) Publish(ctx context.Context, markdown string) error {
	comment, err := r.client.PostIssueComment(ctx, r.owner, r.repo, r.pr, markdown)
	if err != nil {
		return err
	}
	r.log.Infow("posted comment", "pr", r.pr, "url", comment.HTMLURL)
	return nil
}

// Fail marks the pull request head as failed with message as the description.
func (r *Reviewer) Fail(ctx context.Context, message string) error {
	sha, err := r.CommitSHA(ctx)
	if err != nil {
		return fmt.Errorf("resolving head for failure status: %w", err)
	}
	return r.client.CreateStatus(ctx, r.owner, r.repo, sha, Status{
		State:       "failure",
		Description: message,
		Context:     StatusContext,
	})
}
