package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const (
	defaultAPIURL    = "https://api.github.com"
	defaultServerURL = "https://github.com"

	// StatusContext names the commit status lintpost reports failures under.
	StatusContext = "lintpost"

	maxStatusDescription = 140
)

// ErrNoToken is returned by NewClient when GITHUB_TOKEN is unset.
var ErrNoToken = errors.New("GITHUB_TOKEN environment variable is not set")

// APIError is a non-2xx response from the GitHub API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return "authentication failed: " + e.Body
	}
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Body)
}

// IsAuthError reports whether err is a missing token or a 401/403 response.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNoToken) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client provides access to the GitHub REST API.
type Client struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a new GitHub client. Requires GITHUB_TOKEN env var.
// An empty apiURL falls back to GITHUB_API_URL, then to api.github.com.
func NewClient(apiURL string) (*Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, ErrNoToken
	}

	if apiURL == "" {
		apiURL = os.Getenv("GITHUB_API_URL")
	}
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	apiURL = strings.TrimRight(apiURL, "/")

	return &Client{
		token:   token,
		apiURL:  apiURL,
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// do sends a request and returns the response body of a 2xx reply. A non-nil
// in is sent as the JSON request body.
func (c *Client) do(ctx context.Context, method, path, accept string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", accept)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// PullRequest is the subset of a pull request lintpost needs.
type PullRequest struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
	Head    Ref    `json:"head"`
	Base    Ref    `json:"base"`
}

// Ref is one side of a pull request.
type Ref struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// GetPullRequest fetches pull request metadata, including the head commit.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, prNumber int) (PullRequest, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, prNumber)
	body, err := c.do(ctx, http.MethodGet, path, "application/vnd.github.v3+json", nil)
	if err != nil {
		if IsNotFound(err) {
			return PullRequest{}, fmt.Errorf("PR #%d not found in %s/%s: %w", prNumber, owner, repo, err)
		}
		return PullRequest{}, fmt.Errorf("fetching PR: %w", err)
	}

	var pr PullRequest
	if err := json.Unmarshal(body, &pr); err != nil {
		return PullRequest{}, fmt.Errorf("parsing response: %w", err)
	}
	return pr, nil
}

// GetPRDiff fetches the diff for a pull request.
func (c *Client) GetPRDiff(ctx context.Context, owner, repo string, prNumber int) (string, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, prNumber)
	body, err := c.do(ctx, http.MethodGet, path, "application/vnd.github.v3.diff", nil)
	if err != nil {
		if IsNotFound(err) {
			return "", fmt.Errorf("PR #%d not found in %s/%s: %w", prNumber, owner, repo, err)
		}
		return "", fmt.Errorf("fetching PR diff: %w", err)
	}
	return string(body), nil
}

// IssueComment is a comment in a pull request's conversation.
type IssueComment struct {
	ID      int64  `json:"id,omitempty"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url,omitempty"`
}

// PostIssueComment adds a markdown comment to the pull request conversation.
func (c *Client) PostIssueComment(ctx context.Context, owner, repo string, prNumber int, body string) (IssueComment, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments", owner, repo, prNumber)
	resp, err := c.do(ctx, http.MethodPost, path, "application/vnd.github.v3+json", IssueComment{Body: body})
	if err != nil {
		return IssueComment{}, fmt.Errorf("posting comment: %w", err)
	}

	var comment IssueComment
	if err := json.Unmarshal(resp, &comment); err != nil {
		return IssueComment{}, fmt.Errorf("parsing response: %w", err)
	}
	return comment, nil
}

// Status is a commit status. State is one of error, failure, pending or success.
type Status struct {
	State       string `json:"state"`
	Description string `json:"description,omitempty"`
	Context     string `json:"context,omitempty"`
	TargetURL   string `json:"target_url,omitempty"`
}

// CreateStatus sets a commit status on sha. Descriptions longer than GitHub
// accepts are truncated.
func (c *Client) CreateStatus(ctx context.Context, owner, repo, sha string, status Status) error {
	status.Description = truncate(status.Description, maxStatusDescription)
	path := fmt.Sprintf("/repos/%s/%s/statuses/%s", owner, repo, sha)
	if _, err := c.do(ctx, http.MethodPost, path, "application/vnd.github.v3+json", status); err != nil {
		return fmt.Errorf("creating status: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://(?:[^@/]+@)?([^/]+)/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`^(?:ssh://)?[^@]+@([^:/]+)[:/]([^/]+)/([^/.\s]+)`)
)

// DetectRepo parses owner/repo from the git remote origin URL.
func DetectRepo() (owner, repo string, err error) {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	url := strings.TrimSpace(string(out))
	return ParseRemoteURL(url)
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	_, owner, repo, err = parseRemote(url)
	return owner, repo, err
}

// RemoteHost returns the host name of a git remote URL.
func RemoteHost(url string) (string, error) {
	host, _, _, err := parseRemote(url)
	return host, err
}

// IsGitHubHost reports whether host is github.com or the host of serverURL,
// which covers GitHub Enterprise installs.
func IsGitHubHost(host, serverURL string) bool {
	host = strings.ToLower(host)
	if host == "github.com" || host == "www.github.com" {
		return true
	}
	if serverURL == "" {
		return false
	}
	server := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(serverURL), "https://"), "http://")
	server, _, _ = strings.Cut(server, "/")
	return server != "" && host == server
}

func parseRemote(url string) (host, owner, repo string, err error) {
	// Strip .git suffix
	url = strings.TrimSuffix(strings.TrimSpace(url), ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 4 {
		return m[1], m[2], m[3], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 4 {
		return m[1], m[2], m[3], nil
	}
	return "", "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}
