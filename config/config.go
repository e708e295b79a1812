package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/adrg/xdg"
	"gopkg.in/ini.v1"
)

// Section names, one INI section per check.
const (
	SectionLivecheck    = "Livecheck"
	SectionTickets      = "Tickets"
	SectionPullRequests = "PullRequests"
	SectionLint         = "Lint"
)

// Sections lists every known check section in report order.
var Sections = []string{SectionLivecheck, SectionTickets, SectionPullRequests, SectionLint}

// ErrNotFound is returned by Load when no configuration file exists at any
// of the searched paths.
var ErrNotFound = errors.New("no configuration file found")

// OptionError reports a missing or invalid configuration option.
type OptionError struct {
	Section string
	Key     string
	Reason  string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("config: [%s] %s: %s", e.Section, e.Key, e.Reason)
}

// CheckOptions holds the per-check settings read from one INI section.
// Values are fixed at load time; every check receives its own copy.
type CheckOptions struct {
	Section         string
	Maintainer      string
	IncludePorts    []string
	ExcludePorts    []string
	ExcludeSubports bool
}

// Validate reports whether the options are complete enough to run a check.
// The maintainer is required by every check but only enforced here, when the
// check actually runs, so unrelated checks keep working.
func (o CheckOptions) Validate() error {
	if o.Maintainer == "" {
		return &OptionError{Section: o.Section, Key: "maintainer", Reason: "not set"}
	}
	return nil
}

// Config represents the merged checkports configuration.
type Config struct {
	checks map[string]CheckOptions
}

// Check returns the options for the named check section. A missing section
// yields zero options; the maintainer requirement is enforced by Validate
// when the check runs.
func (c *Config) Check(section string) CheckOptions {
	if o, ok := c.checks[section]; ok {
		return o
	}
	return CheckOptions{Section: section}
}

// DefaultConfigDir returns the directory holding the global config file.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "macports-scripts")
}

// ConfigPath returns the path to the global config file.
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "checkports.ini")
}

// LocalConfigPath returns the path to the local config file in the current directory.
func LocalConfigPath() string {
	return ".checkports.ini"
}

// Load loads the configuration from disk.
// It first loads the global config from the XDG config directory, then merges
// any local .checkports.ini on top (local values take precedence). At least
// one of the two files must exist.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), LocalConfigPath())
}

// LoadFrom loads and merges the given INI files in order; keys in later
// files override the same keys in earlier ones. Files that do not exist are
// skipped, but at least one must exist.
func LoadFrom(paths ...string) (*Config, error) {
	found := false
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w (looked for %s)", ErrNotFound, strings.Join(paths, ", "))
	}

	others := make([]interface{}, 0, len(paths)-1)
	for _, p := range paths[1:] {
		others = append(others, p)
	}
	file, err := ini.LooseLoad(paths[0], others...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := &Config{checks: make(map[string]CheckOptions, len(Sections))}
	for _, section := range Sections {
		opts := CheckOptions{Section: section}
		sec, err := file.GetSection(section)
		if err != nil {
			cfg.checks[section] = opts
			continue
		}

		opts.Maintainer = strings.TrimSpace(sec.Key("maintainer").String())
		opts.IncludePorts = splitList(sec.Key("include_ports").String())
		opts.ExcludePorts = splitList(sec.Key("exclude_ports").String())
		if raw := sec.Key("exclude_subports").String(); raw != "" {
			b, err := sec.Key("exclude_subports").Bool()
			if err != nil {
				return nil, &OptionError{
					Section: section,
					Key:     "exclude_subports",
					Reason:  fmt.Sprintf("invalid boolean %q", raw),
				}
			}
			opts.ExcludeSubports = b
		}
		cfg.checks[section] = opts
	}

	return cfg, nil
}

// splitList splits a port list on commas, whitespace, and newlines, dropping
// empty tokens and duplicates while preserving first-seen order.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment
// variable. Following 12-factor app best practices, tokens are only read
// from the environment, never from config files.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	// Get absolute path for local config
	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a starter config file template
func MinimalConfig() string {
	return `; checkports configuration file
; One section per check. The global file lives in the XDG config directory;
; a local .checkports.ini in the working directory overrides it key by key.

[Livecheck]
maintainer = your-handle
; include_ports = foo bar
; exclude_ports = legacy-port
; exclude_subports = true

[Tickets]
maintainer = your-handle

[PullRequests]
maintainer = your-handle

[Lint]
maintainer = your-handle
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
