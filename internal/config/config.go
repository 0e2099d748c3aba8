// Package config holds the derive-generator configuration loaded from
// .derive.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"derive-generator/internal/gen"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".derive.yaml"

// Config is the top-level .derive.yaml configuration.
type Config struct {
	// Output controls where and how generated files are written.
	Output OutputConfig `yaml:"output"`

	// Runtime is the import path of the runtime helper package.
	Runtime string `yaml:"runtime"`

	// Jobs bounds how many inputs are generated concurrently.
	Jobs int `yaml:"jobs"`

	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// OutputConfig controls generated files.
type OutputConfig struct {
	// PackageName overrides the package of schema-file output.
	PackageName string `yaml:"package_name"`
	// Dir is where schema-file output is written. Go source output always
	// lands next to the source package.
	Dir string `yaml:"dir"`
	// FileSuffix is appended to the lower-cased package name.
	FileSuffix string `yaml:"file_suffix"`

	EmitTypes   bool `yaml:"emit_types"`
	EmitMethods bool `yaml:"emit_methods"`
	Comments    bool `yaml:"comments"`
}

// LoggingConfig selects the CLI log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // auto, console, json
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	// Debounce is how long the watcher waits for more events before
	// regenerating.
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	g := gen.DefaultGeneratorConfig()

	return &Config{
		Output: OutputConfig{
			Dir:         g.OutputDir,
			FileSuffix:  g.FileSuffix,
			EmitTypes:   g.EmitTypes,
			EmitMethods: g.EmitMethods,
			Comments:    g.GenerateComments,
		},
		Runtime: g.Runtime,
		Jobs:    runtime.GOMAXPROCS(0),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Watch: WatchConfig{
			Debounce: "200ms",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}

		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if rt := os.Getenv("DERIVE_RUNTIME"); rt != "" {
		c.Runtime = rt
	}

	if level := os.Getenv("DERIVE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks field values that YAML decoding cannot.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}

	if c.Output.FileSuffix != "" && !strings.HasSuffix(c.Output.FileSuffix, ".go") {
		return fmt.Errorf("output.file_suffix %q must end in .go", c.Output.FileSuffix)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}

	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}

	return nil
}

// GetDebounce returns the watch debounce, falling back to 200ms.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 200 * time.Millisecond
	}

	return d
}

// Generator converts the configuration into generator options.
func (c *Config) Generator() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		PackageName:      c.Output.PackageName,
		OutputDir:        c.Output.Dir,
		FileSuffix:       c.Output.FileSuffix,
		Runtime:          c.Runtime,
		EmitTypes:        c.Output.EmitTypes,
		EmitMethods:      c.Output.EmitMethods,
		GenerateComments: c.Output.Comments,
	}
}
