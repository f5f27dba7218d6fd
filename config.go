package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls a run.
type Config struct {
	Exec     string        // tool under test
	Dir      string        // directory holding the fixtures
	Suite    string        // built-in suite name or "discover"
	Timeout  time.Duration // per-case limit; zero waits forever
	Diff     bool          // append a diff to failure reports
	Color    string        // auto, always or never
	FailExit bool          // exit 1 when a case fails
	Verbose  bool          // debug diagnostics on stderr

	Cases []CaseConfig // explicit cases from a manifest; overrides Suite
	Rules []RuleConfig // normalization rules applied after the TTL rule
}

// CaseConfig declares one fixture in a manifest.
type CaseConfig struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// RuleConfig declares an extra normalization rule in a manifest.
type RuleConfig struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

// DefaultConfig runs the default suite from tests/ against ./dns.
var DefaultConfig = Config{
	Exec:  "./dns",
	Dir:   "tests/",
	Suite: "default",
	Color: "auto",
}

// manifest is the YAML layout accepted by -manifest.
type manifest struct {
	Exec      string       `yaml:"exec,omitempty"`
	Dir       string       `yaml:"dir,omitempty"`
	Timeout   string       `yaml:"timeout,omitempty"`
	Cases     []CaseConfig `yaml:"cases,omitempty"`
	Normalize []RuleConfig `yaml:"normalize,omitempty"`
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// applyEnv overrides cfg with DNSTESTS_* variables.
func applyEnv(cfg *Config) error {
	cfg.Exec = envOrDefault("DNSTESTS_EXEC", cfg.Exec)
	cfg.Dir = envOrDefault("DNSTESTS_DIR", cfg.Dir)
	if raw := os.Getenv("DNSTESTS_TIMEOUT"); raw != "" {
		d, err := parseTimeout(raw)
		if err != nil {
			return fmt.Errorf("DNSTESTS_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}

// applyManifest reads the YAML manifest at path into cfg. Fields absent
// from the file leave cfg untouched.
func applyManifest(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if m.Exec != "" {
		cfg.Exec = m.Exec
	}
	if m.Dir != "" {
		cfg.Dir = m.Dir
	}
	if m.Timeout != "" {
		d, err := parseTimeout(m.Timeout)
		if err != nil {
			return fmt.Errorf("manifest %s: timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	cfg.Cases = append(cfg.Cases, m.Cases...)
	cfg.Rules = append(cfg.Rules, m.Normalize...)
	return nil
}

func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", raw)
	}
	return d, nil
}
