package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bosh-code/injectcss/core/logger"
)

// Config is the injectcss.yaml surface. Every field has a working default;
// a missing config file is not an error.
type Config struct {
	// Sourcemap regenerates chunk source maps after injection.
	Sourcemap bool `yaml:"sourcemap"`
	// Format of emitted statements: "esm", "cjs", or empty to infer.
	Format string `yaml:"format"`
	// Dist is the bundler output directory.
	Dist string `yaml:"dist"`
	// Metafile is the bundler metafile path, relative to the working dir.
	Metafile string `yaml:"metafile"`
	// Entries are the bundle entry points for the build and dev commands.
	Entries []string `yaml:"entries"`
	// Extensions overrides the stylesheet extensions the extractor accepts.
	Extensions []string `yaml:"extensions"`
	// Exclude lists directories the dev watcher ignores, besides the
	// defaults (.git, node_modules and the dist directory).
	Exclude []string `yaml:"exclude"`
}

func Default() *Config {
	return &Config{
		Sourcemap: true,
		Dist:      "dist",
		Metafile:  filepath.Join("dist", "metafile.json"),
	}
}

var fileNames = []string{"injectcss.yaml", "injectcss.yml"}

// Load reads the config from the working directory, falling back to
// defaults when no config file exists.
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working dir: %w", err)
	}
	return LoadFrom(wd)
}

// LoadFrom reads the config from dir.
func LoadFrom(dir string) (*Config, error) {
	var filePath string
	for _, name := range fileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			filePath = p
			break
		}
	}

	cfg := Default()
	if filePath == "" {
		logger.Debug("No config file found, using default config")
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	logger.Debug("Config file found: %s", filePath)
	logger.Debug("Config: %+v", cfg)

	return cfg, nil
}

// Write marshals cfg to path. Used by the init command.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
