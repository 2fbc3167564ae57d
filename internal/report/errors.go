package report

import (
	"errors"

	"github.com/dshills/lintpost/internal/lint"
	"github.com/dshills/lintpost/internal/repopath"
)

// Error kinds that end a Report call. Match them with errors.Is.
var (
	ErrLinterNotInstalled = lint.ErrLinterNotInstalled
	ErrReportUnavailable  = lint.ErrReportUnavailable
	ErrPathResolution     = repopath.ErrPathResolution

	ErrUnsupportedHost = errors.New("this tool only supports GitHub")
	ErrMissingEmoji    = errors.New("no issue emoji configured for severity")
	ErrInvalidContext  = errors.New("invalid review context")
)
