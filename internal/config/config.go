package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the lintpost configuration.
type Config struct {
	Linter       string            `yaml:"linter"`
	ReportFile   string            `yaml:"reportFile"`
	Heading      string            `yaml:"heading"`
	Format       string            `yaml:"format" validate:"omitempty,oneof=markdown json"`
	EnabledTypes []string          `yaml:"enabledTypes,omitempty"`
	IssueEmoji   map[string]string `yaml:"issueEmoji,omitempty"`
	Exclude      []string          `yaml:"exclude,omitempty"`
	ChangedOnly  bool              `yaml:"changedOnly"`
	BaseRef      string            `yaml:"baseRef,omitempty"`
	Privacy      PrivacyConfig     `yaml:"privacy"`
	GitHub       GitHubConfig      `yaml:"github"`
}

// PrivacyConfig controls redaction of lint messages before they are posted.
type PrivacyConfig struct {
	RedactSecrets bool     `yaml:"redactSecrets"`
	RedactPaths   []string `yaml:"redactPaths,omitempty"`
}

// GitHubConfig locates the pull request to comment on. Owner, Repo and PR
// are normally filled from the CI environment or the git remote.
type GitHubConfig struct {
	Owner     string `yaml:"owner,omitempty"`
	Repo      string `yaml:"repo,omitempty"`
	PR        int    `yaml:"pr,omitempty" validate:"gte=0"`
	ServerURL string `yaml:"serverURL,omitempty" validate:"omitempty,url"`
	APIURL    string `yaml:"apiURL,omitempty" validate:"omitempty,url"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Linter:       "swiftlint",
		ReportFile:   "swiftlint_report.json",
		Heading:      "SwiftLint found issues",
		Format:       "markdown",
		EnabledTypes: []string{"warning", "error"},
		IssueEmoji: map[string]string{
			"warning": "⚠",
			"error":   "❌",
		},
		BaseRef: "origin/main",
		Privacy: PrivacyConfig{
			RedactPaths: []string{"**/.env", "**/GoogleService-Info.plist"},
		},
		GitHub: GitHubConfig{
			ServerURL: "https://github.com",
		},
	}
}

var validate = validator.New()

// Validate checks enumerated and URL fields.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory for lintpost.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lintpost"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "lintpost"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "lintpost"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "lintpost"), nil
	default:
		return filepath.Join(home, ".config", "lintpost"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Linter != "" {
		dst.Linter = src.Linter
	}
	if src.ReportFile != "" {
		dst.ReportFile = src.ReportFile
	}
	if src.Heading != "" {
		dst.Heading = src.Heading
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.EnabledTypes != nil {
		dst.EnabledTypes = src.EnabledTypes
	}
	// Emoji merge per severity so a file can override just one marker.
	for sev, emoji := range src.IssueEmoji {
		if dst.IssueEmoji == nil {
			dst.IssueEmoji = map[string]string{}
		}
		dst.IssueEmoji[sev] = emoji
	}
	if len(src.Exclude) > 0 {
		dst.Exclude = src.Exclude
	}
	if src.BaseRef != "" {
		dst.BaseRef = src.BaseRef
	}
	// Both bools default to false, so a true in the file is the only signal.
	dst.ChangedOnly = src.ChangedOnly || dst.ChangedOnly
	dst.Privacy.RedactSecrets = src.Privacy.RedactSecrets || dst.Privacy.RedactSecrets
	if len(src.Privacy.RedactPaths) > 0 {
		dst.Privacy.RedactPaths = src.Privacy.RedactPaths
	}
	if src.GitHub.Owner != "" {
		dst.GitHub.Owner = src.GitHub.Owner
	}
	if src.GitHub.Repo != "" {
		dst.GitHub.Repo = src.GitHub.Repo
	}
	if src.GitHub.PR > 0 {
		dst.GitHub.PR = src.GitHub.PR
	}
	if src.GitHub.ServerURL != "" {
		dst.GitHub.ServerURL = src.GitHub.ServerURL
	}
	if src.GitHub.APIURL != "" {
		dst.GitHub.APIURL = src.GitHub.APIURL
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("LINTPOST_LINTER"); v != "" {
		cfg.Linter = v
	}
	if v := os.Getenv("LINTPOST_REPORT_FILE"); v != "" {
		cfg.ReportFile = v
	}
	if v := os.Getenv("LINTPOST_HEADING"); v != "" {
		cfg.Heading = v
	}
	if v := os.Getenv("LINTPOST_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LINTPOST_ENABLED_TYPES"); v != "" {
		cfg.EnabledTypes = splitList(v)
	}
	if v := os.Getenv("LINTPOST_BASE_REF"); v != "" {
		cfg.BaseRef = v
	}
	if v := os.Getenv("LINTPOST_CHANGED_ONLY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LINTPOST_CHANGED_ONLY must be a boolean: %w", err)
		}
		cfg.ChangedOnly = b
	}
	if v := os.Getenv("LINTPOST_REDACT_SECRETS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LINTPOST_REDACT_SECRETS must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	}

	// GitHub Actions environment.
	if v := os.Getenv("GITHUB_REPOSITORY"); v != "" {
		if owner, repo, ok := strings.Cut(v, "/"); ok {
			cfg.GitHub.Owner = owner
			cfg.GitHub.Repo = repo
		}
	}
	if v := os.Getenv("GITHUB_SERVER_URL"); v != "" {
		cfg.GitHub.ServerURL = v
	}
	if v := os.Getenv("GITHUB_API_URL"); v != "" {
		cfg.GitHub.APIURL = v
	}
	if v := os.Getenv("GITHUB_BASE_REF"); v != "" {
		cfg.BaseRef = "origin/" + v
	}
	if n, ok := PRFromRef(os.Getenv("GITHUB_REF")); ok {
		cfg.GitHub.PR = n
	}
	if v := os.Getenv("LINTPOST_PR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LINTPOST_PR must be an integer: %w", err)
		}
		cfg.GitHub.PR = n
	}
	return nil
}

// PRFromRef extracts the pull request number from a ref such as
// "refs/pull/42/merge".
func PRFromRef(ref string) (int, bool) {
	rest, ok := strings.CutPrefix(ref, "refs/pull/")
	if !ok {
		return 0, false
	}
	num, _, _ := strings.Cut(rest, "/")
	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
// Emoji are set per severity with keys of the form "issueEmoji.<severity>".
func SetField(cfg *Config, key, value string) error {
	if sev, ok := strings.CutPrefix(key, "issueEmoji."); ok && sev != "" {
		if cfg.IssueEmoji == nil {
			cfg.IssueEmoji = map[string]string{}
		}
		cfg.IssueEmoji[strings.ToLower(sev)] = value
		return nil
	}

	switch key {
	case "linter":
		cfg.Linter = value
	case "reportFile":
		cfg.ReportFile = value
	case "heading":
		cfg.Heading = value
	case "format":
		cfg.Format = value
	case "enabledTypes":
		cfg.EnabledTypes = splitList(value)
	case "exclude":
		cfg.Exclude = splitList(value)
	case "baseRef":
		cfg.BaseRef = value
	case "changedOnly":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("changedOnly must be a boolean: %w", err)
		}
		cfg.ChangedOnly = b
	case "redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	case "redactPaths":
		cfg.Privacy.RedactPaths = splitList(value)
	case "owner":
		cfg.GitHub.Owner = value
	case "repo":
		cfg.GitHub.Repo = value
	case "pr":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("pr must be an integer: %w", err)
		}
		cfg.GitHub.PR = n
	case "serverURL":
		cfg.GitHub.ServerURL = value
	case "apiURL":
		cfg.GitHub.APIURL = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
