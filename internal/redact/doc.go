// Package redact masks secrets in lint messages before they are posted to a
// pull request.
//
// Lint reasons sometimes quote the offending source line. Detection uses regex
// heuristics for common credential shapes: API keys, Google/Firebase keys,
// JWTs, private key headers, AWS access key IDs, bearer tokens, GitHub and
// Slack tokens.
//
// Path-based redaction is also supported: findings in files whose paths match
// configured glob patterns have their whole message replaced.
package redact
