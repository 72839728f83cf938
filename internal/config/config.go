// Package config loads doclink configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"go.dw1.io/doclink"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// envFiles are loaded, when present, before the configuration file is
// expanded. Existing environment variables are never overridden.
var envFiles = []string{".env", ".env.local"}

// Config represents the application configuration.
type Config struct {
	Link         LinkConfig `yaml:"link"`
	Registry     string     `yaml:"registry"`
	TemplatesDir string     `yaml:"templates_dir"`
	OutputDir    string     `yaml:"output_dir"`
	Workers      int        `yaml:"workers"`
	Cache        bool       `yaml:"cache"`
	Log          LogConfig  `yaml:"log"`
}

// LinkConfig is the output layout links are generated for.
type LinkConfig struct {
	Base   string `yaml:"base"`
	Ext    string `yaml:"ext"`
	SrcDir string `yaml:"src_dir"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Link: LinkConfig{
			Ext:    doclink.DefaultExt,
			SrcDir: doclink.DefaultSrcDir,
		},
		TemplatesDir: "templates",
		OutputDir:    "out",
		Workers:      4,
		Cache:        true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from the specified file. Values missing from the
// file keep their defaults and ${VAR} references are expanded from the
// environment.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes and validates an already expanded configuration document.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values no command can work with.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}

	if c.Link.Ext != "" && !strings.HasPrefix(c.Link.Ext, ".") {
		return fmt.Errorf("%w: link.ext must start with '.', got %q", ErrInvalidConfig, c.Link.Ext)
	}

	if c.Link.SrcDir != "" && !strings.HasSuffix(c.Link.SrcDir, "/") {
		return fmt.Errorf("%w: link.src_dir must end with '/', got %q", ErrInvalidConfig, c.Link.SrcDir)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// LinkConfig converts the link section for the resolver.
func (c *Config) LinkConfig() doclink.Config {
	return doclink.Config{
		Base:   c.Link.Base,
		Ext:    c.Link.Ext,
		SrcDir: c.Link.SrcDir,
	}
}

func loadEnvFiles() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}

		// godotenv.Load does not override variables that are already set.
		_ = godotenv.Load(name)
	}
}
