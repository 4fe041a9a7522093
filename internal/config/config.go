// Package config loads skc.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/sk-lang/skc/internal/cli"
	"github.com/sk-lang/skc/internal/parser"
)

// DefaultPath is read when --config is not given
const DefaultPath = "skc.toml"

// Config holds the complete tool configuration
type Config struct {
	Requires string       `toml:"requires"`
	Parser   ParserConfig `toml:"parser"`
	Output   OutputConfig `toml:"output"`
	Log      LogConfig    `toml:"log"`
	Build    BuildConfig  `toml:"build"`
	Watch    WatchConfig  `toml:"watch"`
}

// ParserConfig holds parser settings
type ParserConfig struct {
	Associativity string `toml:"associativity"`
	MaxDepth      int    `toml:"max_depth"`
}

// OutputConfig holds printing settings
type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
}

// BuildConfig holds multi-file settings
type BuildConfig struct {
	Parallelism int `toml:"parallelism"`
}

// WatchConfig holds watch mode settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(nil)
	return cfg
}

// Load loads configuration from a TOML file. A missing file yields the
// defaults; unknown keys are rejected.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults(&meta)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for missing configuration. Keys that
// meta records as defined keep their zero values.
func (c *Config) applyDefaults(meta *toml.MetaData) {
	if c.Parser.Associativity == "" {
		c.Parser.Associativity = "right"
	}
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = parser.DefaultMaxDepth
	}
	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}
	if c.Output.Color == "" {
		c.Output.Color = cli.ColorAuto
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Build.Parallelism == 0 {
		c.Build.Parallelism = 4
	}
	if meta == nil || !meta.IsDefined("watch", "debounce") {
		c.Watch.Debounce.Duration = 100 * time.Millisecond
	}
}

// Validate rejects unknown enum values and non-positive limits
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Associativity(); err != nil {
		errs = append(errs, err)
	}
	if c.Parser.MaxDepth < 1 || c.Parser.MaxDepth > parser.MaxDepthLimit {
		errs = append(errs, fmt.Errorf("parser.max_depth must be between 1 and %d, got %d", parser.MaxDepthLimit, c.Parser.MaxDepth))
	}
	switch c.Output.Format {
	case "tree", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output.format must be tree, json or yaml, got %q", c.Output.Format))
	}
	switch c.Output.Color {
	case cli.ColorAuto, cli.ColorAlways, cli.ColorNever:
	default:
		errs = append(errs, fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color))
	}
	if _, err := cli.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Build.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("build.parallelism must be positive, got %d", c.Build.Parallelism))
	}
	if c.Watch.Debounce.Duration < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce))
	}
	if c.Requires != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			errs = append(errs, fmt.Errorf("requires: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Associativity maps parser.associativity to the parser setting
func (c *Config) Associativity() (parser.Associativity, error) {
	switch c.Parser.Associativity {
	case "right", "":
		return parser.RightAssociative, nil
	case "left":
		return parser.LeftAssociative, nil
	default:
		return parser.RightAssociative, fmt.Errorf("parser.associativity must be left or right, got %q", c.Parser.Associativity)
	}
}

// ParserOptions returns the parser options selected by the configuration
func (c *Config) ParserOptions() []parser.Option {
	assoc, _ := c.Associativity()
	return []parser.Option{
		parser.WithAssociativity(assoc),
		parser.WithMaxDepth(c.Parser.MaxDepth),
	}
}

// CheckRequires verifies that version satisfies the requires constraint
func (c *Config) CheckRequires(version *semver.Version) error {
	if c.Requires == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", c.Requires, err)
	}

	if ok, reasons := constraint.Validate(version); !ok {
		return fmt.Errorf("skc %s does not satisfy requires %q: %w", version, c.Requires, errors.Join(reasons...))
	}
	return nil
}
