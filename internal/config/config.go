// Package config loads the oidkit configuration file.
//
// Configuration is read from a single YAML file chosen by, in order:
//   - the --config flag
//   - the OIDKIT_CONFIG environment variable
//   - oidkit.yaml in the working directory, if it exists
//
// With none of these the defaults apply. Command-line flags override
// file values; that merge happens in the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the file looked up in the working directory.
const DefaultFile = "oidkit.yaml"

// EnvVar names the environment variable holding a config path.
const EnvVar = "OIDKIT_CONFIG"

// Config is the oidkit configuration.
type Config struct {
	// Database is the path of the SQLite catalog used by import, lookup and
	// list.
	Database string `yaml:"database"`

	// Registry is the default registry directory for validate, compile and
	// import when none is given on the command line.
	Registry string `yaml:"registry"`

	// Format is the output format: "text" or "json".
	Format string `yaml:"format"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Database: "oidkit.db",
		Format:   "text",
	}
}

// Load resolves the config file from explicit, the environment, or the
// working directory, and loads it. A missing implicit file is not an error;
// a missing explicit one is.
func Load(explicit string) (*Config, error) {
	if explicit != "" {
		return LoadFile(explicit)
	}
	if path := os.Getenv(EnvVar); path != "" {
		return LoadFile(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return LoadFile(DefaultFile)
	}
	return Default(), nil
}

// LoadFile loads configuration from a specific file path, on top of
// Default. Unknown keys are rejected. ${VAR} and ${VAR:-default} are
// expanded in path values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Path = path

	cfg.Database = expandVars(cfg.Database)
	cfg.Registry = expandVars(cfg.Registry)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.Format != "text" && c.Format != "json" {
		errs = append(errs, fmt.Errorf("invalid format %q: must be text or json", c.Format))
	}
	if c.Database == "" {
		errs = append(errs, errors.New("database is required"))
	}
	return errors.Join(errs...)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}
