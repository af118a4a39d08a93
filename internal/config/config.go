// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/marcelocantos/fsh/internal/cap"
	"github.com/marcelocantos/fsh/internal/outbuf"
	"github.com/marcelocantos/fsh/internal/rules"
)

// Config holds the global fsh configuration.
type Config struct {
	Tiers   TierConfig                      `yaml:"tiers"`
	Audit   AuditConfig                     `yaml:"audit"`
	Console ConsoleConfig                   `yaml:"console"`
	Shell   ShellConfig                     `yaml:"shell"`
	Log     LogConfig                       `yaml:"log"`
	Rules   map[string]rules.VerbRuleConfig `yaml:"rules"`
	Deny    []string                        `yaml:"deny"`
}

// TierConfig controls which safety tiers are enabled.
type TierConfig struct {
	Read      bool `yaml:"read"`
	Write     bool `yaml:"write"`
	Dangerous bool `yaml:"dangerous"`
}

// AuditConfig controls the audit log. An empty path disables it.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ConsoleConfig controls console output.
type ConsoleConfig struct {
	// LineLimit is how many newlines reach the console before output is
	// held behind the truncation marker.
	LineLimit int `yaml:"line_limit"`
}

// ShellConfig controls the interactive shell.
type ShellConfig struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
	Startup string `yaml:"startup"` // Starlark script run before the first line
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Tiers: TierConfig{
			Read:      true,
			Write:     true,
			Dangerous: true,
		},
		Audit: AuditConfig{
			Enabled: true,
			Path:    filepath.Join(home, ".local", "share", "fsh", "audit.jsonl"),
		},
		Console: ConsoleConfig{
			LineLimit: outbuf.DefaultLineLimit,
		},
		Shell: ShellConfig{
			Prompt:  "fsh> ",
			History: filepath.Join(home, ".local", "share", "fsh", "history"),
			Startup: filepath.Join(home, ".config", "fsh", "startup.star"),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads the config from the standard location
// (~/.config/fsh/config.yaml). A missing file yields the defaults.
func Load(fsys afero.Fs) (*Config, error) {
	return LoadFrom(fsys, ConfigPath())
}

// LoadFrom reads the config from path.
func LoadFrom(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.Audit.Path = ExpandHome(cfg.Audit.Path)
	cfg.Shell.History = ExpandHome(cfg.Shell.History)
	cfg.Shell.Startup = ExpandHome(cfg.Shell.Startup)
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Console.LineLimit < 0 {
		return fmt.Errorf("console.line_limit must not be negative, got %d", c.Console.LineLimit)
	}
	for verb := range c.Rules {
		if strings.TrimSpace(verb) == "" {
			return fmt.Errorf("rules: empty verb name")
		}
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// ApplyRules builds a RuleSet from the config and installs it on the
// registry. Hardcoded safety rules are always included.
func (c *Config) ApplyRules(reg *cap.Registry) {
	rs := rules.NewRuleSet(rules.Hardcoded()...)
	for verb, rule := range c.Rules {
		for _, fn := range rules.CompileVerbRule(verb, rule) {
			rs.AddConfig(fn)
		}
	}
	if len(c.Deny) > 0 {
		rs.AddConfig(rules.DenyVerbs(c.Deny...))
	}
	reg.SetRules(rs)
}

// ApplyTiers sets the registry tier permissions from the config.
func (c *Config) ApplyTiers(reg *cap.Registry) {
	reg.SetTier(cap.TierRead, c.Tiers.Read)
	reg.SetTier(cap.TierWrite, c.Tiers.Write)
	reg.SetTier(cap.TierDangerous, c.Tiers.Dangerous)
}

// ConfigPath returns the standard config file path.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fsh", "config.yaml")
}
