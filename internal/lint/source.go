package lint

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultBinary is the linter looked up on PATH and run to generate reports.
	DefaultBinary = "swiftlint"
	// DefaultReportFile is where a generated report is written.
	DefaultReportFile = "swiftlint_report.json"
)

// Runner starts an external process with stdout sent to the given writer.
type Runner interface {
	Run(ctx context.Context, name string, args []string, stdout io.Writer) error
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("%s: %s", err, strings.TrimSpace(stderr.String()))
		}
		return err
	}
	return nil
}

// Source obtains findings either from an existing report file or by running
// the linter to produce one.
type Source struct {
	Binary     string
	ReportFile string
	// Dir is where generated reports are written. Empty means the current
	// working directory.
	Dir string

	Runner   Runner
	LookPath func(file string) (string, error)
	Logger   *zap.SugaredLogger
}

// NewSource returns a Source for binary writing generated reports to reportFile.
func NewSource(binary, reportFile string) *Source {
	if binary == "" {
		binary = DefaultBinary
	}
	if reportFile == "" {
		reportFile = DefaultReportFile
	}
	return &Source{
		Binary:     binary,
		ReportFile: reportFile,
		Runner:     ExecRunner{},
		LookPath:   exec.LookPath,
		Logger:     zap.NewNop().Sugar(),
	}
}

// Installed reports whether the linter binary is on PATH.
func (s *Source) Installed() bool {
	path, err := s.LookPath(s.Binary)
	return err == nil && strings.TrimSpace(path) != ""
}

// CheckInstalled returns a *NotInstalledError when the linter is missing.
func (s *Source) CheckInstalled() error {
	if !s.Installed() {
		return &NotInstalledError{Binary: s.Binary}
	}
	return nil
}

// Obtain returns the findings of the report at path. When path is empty the
// linter is run first and its generated report is read instead.
func (s *Source) Obtain(ctx context.Context, path string) ([]Finding, error) {
	if path == "" {
		generated, err := s.Generate(ctx)
		if err != nil {
			return nil, err
		}
		path = generated
	}
	s.Logger.Debugw("reading report", "path", path)
	return ReadFile(path)
}

// Generate runs `<binary> lint --quiet --reporter json` with stdout redirected
// into the report file and returns the file's path. The linter's exit status
// is not interpreted; a failed run shows up as an unreadable report. The
// file is left in place afterwards.
func (s *Source) Generate(ctx context.Context) (string, error) {
	path := filepath.Join(s.Dir, s.ReportFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", ErrReportUnavailable, path, err)
	}
	defer f.Close()

	args := []string{"lint", "--quiet", "--reporter", "json"}
	s.Logger.Debugw("running linter", "binary", s.Binary, "args", args, "out", path)
	if err := s.Runner.Run(ctx, s.Binary, args, f); err != nil {
		s.Logger.Debugw("linter exited with error", "binary", s.Binary, "error", err)
	}
	return path, nil
}
