// Package config provides configuration management for the goldenthread CLI.
// Values are resolved from defaults, then an optional YAML config file, then
// environment variables; the environment always wins.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Verbosity represents the output verbosity level
type Verbosity string

const (
	// VerbosityNormal shows only essential output
	VerbosityNormal Verbosity = "normal"
	// VerbosityVerbose includes run progress and timing
	VerbosityVerbose Verbosity = "verbose"
	// VerbosityDebug provides full debug logging
	VerbosityDebug Verbosity = "debug"
)

// DefaultServiceURL is used when no service URL is configured.
const DefaultServiceURL = "http://localhost:8080"

// Config holds all configuration for the goldenthread CLI
type Config struct {
	// ServiceURL is the base URL of the External Validation Service
	ServiceURL string

	// Token is the opaque bearer credential for evidence downloads
	Token string

	// SubmitTimeout bounds a run submission. Acceptance-mode runs invoke
	// the live reasoning backend, so the default is 30s.
	SubmitTimeout time.Duration

	// Verbosity controls output level
	Verbosity Verbosity

	// StateFile is the path of the local run snapshot
	StateFile string
}

// fileConfig is the YAML config file shape. All fields are optional.
type fileConfig struct {
	ServiceURL           string `yaml:"service_url"`
	Token                string `yaml:"token"`
	SubmitTimeoutSeconds int    `yaml:"submit_timeout_seconds"`
	Verbosity            string `yaml:"verbosity"`
	StateFile            string `yaml:"state_file"`
}

// New creates a Config from the config file and environment variables
func New() (*Config, error) {
	cfg := &Config{
		ServiceURL:    DefaultServiceURL,
		SubmitTimeout: 30 * time.Second,
		Verbosity:     VerbosityNormal,
		StateFile:     filepath.Join(".goldenthread", "last_run.json"),
	}

	if err := cfg.applyFile(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFile merges values from the YAML config file, if one exists. The path
// comes from GOLDENTHREAD_CONFIG, falling back to .goldenthread.yaml in the
// working directory. A missing file is not an error.
func (c *Config) applyFile() error {
	path := os.Getenv("GOLDENTHREAD_CONFIG")
	explicit := path != ""
	if !explicit {
		path = ".goldenthread.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		if explicit {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.ServiceURL != "" {
		c.ServiceURL = fc.ServiceURL
	}
	if fc.Token != "" {
		c.Token = fc.Token
	}
	if fc.SubmitTimeoutSeconds != 0 {
		if fc.SubmitTimeoutSeconds < 0 {
			return fmt.Errorf("submit_timeout_seconds must be positive, got: %d", fc.SubmitTimeoutSeconds)
		}
		c.SubmitTimeout = time.Duration(fc.SubmitTimeoutSeconds) * time.Second
	}
	if fc.Verbosity != "" {
		v, err := parseVerbosity(fc.Verbosity)
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		c.Verbosity = v
	}
	if fc.StateFile != "" {
		c.StateFile = fc.StateFile
	}

	return nil
}

// applyEnv overrides configuration from GOLDENTHREAD_* environment variables
func (c *Config) applyEnv() error {
	if url := os.Getenv("GOLDENTHREAD_SERVICE_URL"); url != "" {
		c.ServiceURL = url
	}

	if token := os.Getenv("GOLDENTHREAD_TOKEN"); token != "" {
		c.Token = token
	}

	if timeoutStr := os.Getenv("GOLDENTHREAD_SUBMIT_TIMEOUT"); timeoutStr != "" {
		timeoutSecs, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return fmt.Errorf("invalid GOLDENTHREAD_SUBMIT_TIMEOUT: %w", err)
		}
		if timeoutSecs <= 0 {
			return fmt.Errorf("GOLDENTHREAD_SUBMIT_TIMEOUT must be positive, got: %d", timeoutSecs)
		}
		c.SubmitTimeout = time.Duration(timeoutSecs) * time.Second
	}

	if verbosity := os.Getenv("GOLDENTHREAD_VERBOSITY"); verbosity != "" {
		v, err := parseVerbosity(verbosity)
		if err != nil {
			return fmt.Errorf("invalid GOLDENTHREAD_VERBOSITY: %w", err)
		}
		c.Verbosity = v
	}

	if stateFile := os.Getenv("GOLDENTHREAD_STATE_FILE"); stateFile != "" {
		c.StateFile = stateFile
	}

	return nil
}

// IsVerbose returns true if verbosity is verbose or debug
func (c *Config) IsVerbose() bool {
	return c.Verbosity == VerbosityVerbose || c.Verbosity == VerbosityDebug
}

// IsDebug returns true if verbosity is debug
func (c *Config) IsDebug() bool {
	return c.Verbosity == VerbosityDebug
}

func parseVerbosity(s string) (Verbosity, error) {
	switch Verbosity(s) {
	case VerbosityNormal, VerbosityVerbose, VerbosityDebug:
		return Verbosity(s), nil
	default:
		return "", fmt.Errorf("must be one of: normal, verbose, debug; got: %s", s)
	}
}
