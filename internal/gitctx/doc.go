// Package gitctx reads repository metadata from the local git checkout.
//
// It shells out to git for the toplevel directory, HEAD commit, branch and
// origin URL, and lists the files changed on a branch by parsing
// `git diff base...HEAD` with go-diff. [MatchesAny] applies the include and
// exclude globs used to scope findings.
package gitctx
