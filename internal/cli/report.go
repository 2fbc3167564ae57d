package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/lintpost/internal/config"
	"github.com/dshills/lintpost/internal/gitctx"
	"github.com/dshills/lintpost/internal/github"
	"github.com/dshills/lintpost/internal/lint"
	"github.com/dshills/lintpost/internal/logging"
	"github.com/dshills/lintpost/internal/output"
	"github.com/dshills/lintpost/internal/report"
)

var (
	flagDryRun         bool
	flagFormat         string
	flagOut            string
	flagRoot           string
	flagLinter         string
	flagReportFile     string
	flagHeading        string
	flagEnabled        string
	flagExclude        string
	flagChangedOnly    bool
	flagBase           string
	flagRedact         bool
	flagPR             int
	flagOwner          string
	flagRepo           string
	flagFailOnFindings bool
)

var reportCmd = &cobra.Command{
	Use:   "report [report.json]",
	Short: "Lint and post findings to the pull request",
	Long: `Run the linter (or read an existing JSON report) and post the findings as a
markdown table on the pull request. With --dry-run the table is printed
instead and no GitHub token is needed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		log, err := logging.New(flagDebug)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		var path string
		if len(args) == 1 {
			path = args[0]
		}
		exitCode = runReport(context.Background(), cfg, path, log)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the table instead of posting it")
	reportCmd.Flags().StringVar(&flagFormat, "format", "", "Dry-run output format (markdown, json)")
	reportCmd.Flags().StringVar(&flagOut, "out", "", "Dry-run output file path (default: stdout)")
	reportCmd.Flags().StringVar(&flagRoot, "root", "", "Working root stripped from reported paths (default: current directory)")
	reportCmd.Flags().StringVar(&flagLinter, "linter", "", "Linter binary (default: swiftlint)")
	reportCmd.Flags().StringVar(&flagReportFile, "report-file", "", "File the generated report is written to")
	reportCmd.Flags().StringVar(&flagHeading, "heading", "", "Heading of the posted table")
	reportCmd.Flags().StringVar(&flagEnabled, "types", "", "Severities to report (comma-separated: warning,error)")
	reportCmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	reportCmd.Flags().BoolVar(&flagChangedOnly, "changed-only", false, "Only report files changed by the pull request")
	reportCmd.Flags().StringVar(&flagBase, "base", "", "Base ref for --changed-only in dry runs (default: origin/main)")
	reportCmd.Flags().BoolVar(&flagRedact, "redact", false, "Mask secrets quoted in lint messages")
	reportCmd.Flags().IntVar(&flagPR, "pr", 0, "Pull request number (default: from GITHUB_REF)")
	reportCmd.Flags().StringVar(&flagOwner, "owner", "", "GitHub repository owner (auto-detected if omitted)")
	reportCmd.Flags().StringVar(&flagRepo, "repo", "", "GitHub repository name (auto-detected if omitted)")
	reportCmd.Flags().BoolVar(&flagFailOnFindings, "fail-on-findings", false, "Exit 1 when any finding is reported")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagLinter != "" {
		m["linter"] = flagLinter
	}
	if flagReportFile != "" {
		m["reportFile"] = flagReportFile
	}
	if flagHeading != "" {
		m["heading"] = flagHeading
	}
	if flagEnabled != "" {
		m["enabledTypes"] = flagEnabled
	}
	if flagExclude != "" {
		m["exclude"] = flagExclude
	}
	if flagChangedOnly {
		m["changedOnly"] = "true"
	}
	if flagBase != "" {
		m["baseRef"] = flagBase
	}
	if flagRedact {
		m["redactSecrets"] = "true"
	}
	if flagPR > 0 {
		m["pr"] = strconv.Itoa(flagPR)
	}
	if flagOwner != "" {
		m["owner"] = flagOwner
	}
	if flagRepo != "" {
		m["repo"] = flagRepo
	}
	return m
}

// reportOptions converts the loaded config into pipeline options.
func reportOptions(cfg config.Config, root string) report.Options {
	opts := report.Options{
		WorkingRoot:   root,
		Heading:       cfg.Heading,
		IssueEmoji:    make(map[lint.Severity]string, len(cfg.IssueEmoji)),
		RedactSecrets: cfg.Privacy.RedactSecrets,
		RedactPaths:   cfg.Privacy.RedactPaths,
		Exclude:       cfg.Exclude,
	}
	for _, t := range cfg.EnabledTypes {
		opts.EnabledTypes = append(opts.EnabledTypes, lint.NormalizeSeverity(t))
	}
	for sev, emoji := range cfg.IssueEmoji {
		opts.IssueEmoji[lint.NormalizeSeverity(sev)] = emoji
	}
	return opts
}

// local reports whether the run prints instead of posting.
func local(cfg config.Config) bool {
	return flagDryRun || cfg.Format == "json"
}

// runReport builds the pipeline for cfg and returns the process exit code.
func runReport(ctx context.Context, cfg config.Config, path string, log *zap.SugaredLogger) int {
	root := flagRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitRuntimeError
		}
		root = wd
	}

	src := lint.NewSource(cfg.Linter, cfg.ReportFile)
	src.Logger = log
	if err := src.CheckInstalled(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	opts := reportOptions(cfg, root)

	var (
		reviewer report.Reviewer
		changed  func() ([]string, error)
	)
	if local(cfg) {
		reviewer = newLocalReviewer(cfg, flagOut, log)
		changed = func() ([]string, error) { return gitctx.ChangedFiles(cfg.BaseRef) }
	} else {
		gr, client, err := newGitHubReviewer(&cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitCodeFor(err)
		}
		reviewer = gr
		changed = func() ([]string, error) {
			diff, err := client.GetPRDiff(ctx, cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.PR)
			if err != nil {
				return nil, err
			}
			return gitctx.FilesFromDiff(diff)
		}
	}

	if cfg.ChangedOnly {
		files, err := changed()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: listing changed files: %v\n", err)
			return exitCodeFor(err)
		}
		opts.ChangedFiles = make(map[string]bool, len(files))
		for _, f := range files {
			opts.ChangedFiles[f] = true
		}
		log.Debugw("limiting report to changed files", "files", len(files))
	}

	counter := &publishCounter{Reviewer: reviewer}
	p := report.New(src, counter, opts, log)

	if cfg.Format == "json" {
		table, err := p.Table(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitCodeFor(err)
		}
		if table == nil {
			table = &output.Table{Heading: opts.Heading}
		}
		if err := output.WriteTable(table, "json", flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return ExitRuntimeError
		}
		counter.published = len(table.Rows) > 0
	} else if err := p.Report(ctx, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	if flagFailOnFindings && counter.published {
		return ExitFindings
	}
	return ExitSuccess
}

// newGitHubReviewer resolves the pull request coordinates and returns a
// Reviewer posting to it. cfg.GitHub is filled in place.
func newGitHubReviewer(cfg *config.Config, log *zap.SugaredLogger) (*github.Reviewer, *github.Client, error) {
	if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
		owner, repo, err := github.DetectRepo()
		if err != nil {
			return nil, nil, fmt.Errorf("%w\nUse --owner and --repo flags to specify manually", err)
		}
		if cfg.GitHub.Owner == "" {
			cfg.GitHub.Owner = owner
		}
		if cfg.GitHub.Repo == "" {
			cfg.GitHub.Repo = repo
		}
	}
	if cfg.GitHub.PR <= 0 {
		return nil, nil, errNoPullRequest
	}

	client, err := github.NewClient(cfg.GitHub.APIURL)
	if err != nil {
		return nil, nil, err
	}
	return github.NewReviewer(client, cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.PR, cfg.GitHub.ServerURL, log), client, nil
}

var errNoPullRequest = errors.New("no pull request number: pass --pr, set LINTPOST_PR or run on a pull_request event (use --dry-run to print locally)")

// exitCodeFor maps a run error to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case github.IsAuthError(err):
		return ExitAuthError
	case errors.Is(err, errNoPullRequest):
		return ExitUsageError
	default:
		return ExitRuntimeError
	}
}

// publishCounter records whether a table was published.
type publishCounter struct {
	report.Reviewer
	published bool
}

func (c *publishCounter) Publish(ctx context.Context, markdown string) error {
	if err := c.Reviewer.Publish(ctx, markdown); err != nil {
		return err
	}
	c.published = c.published || strings.TrimSpace(markdown) != ""
	return nil
}
