// Package config loads molgen settings from a YAML file, MOLGEN_* environment
// variables and command-line flags, in increasing order of precedence
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configName = ".molgen"
	envPrefix  = "MOLGEN"
)

type Config struct {
	ReferenceTable string       `mapstructure:"reference_table" json:"reference_table" yaml:"reference_table"`
	Output         OutputConfig `mapstructure:"output" json:"output" yaml:"output"`
	Log            LogConfig    `mapstructure:"log" json:"log" yaml:"log"`
	ConfigFile     string       `mapstructure:"-" json:"config_file,omitempty" yaml:"-"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" json:"format" yaml:"format"` // human or json
	Indent int    `mapstructure:"indent" json:"indent" yaml:"indent"`
	Tabs   bool   `mapstructure:"tabs" json:"tabs" yaml:"tabs"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"` // text or json
}

// Defaults returns the built-in settings
func Defaults() Config {
	return Config{
		ReferenceTable: "",
		Output: OutputConfig{
			Format: "human",
			Indent: 4,
			Tabs:   false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// flagKeys binds command-line flags to config keys
var flagKeys = map[string]string{
	"log-level":       "log.level",
	"log-format":      "log.format",
	"reference-table": "reference_table",
	"format":          "output.format",
	"indent":          "output.indent",
	"tabs":            "output.tabs",
}

// Load reads the configuration. With an explicit override path that file must
// exist; otherwise .molgen.yaml is looked up in the working directory and then
// in $HOME/.config/molgen, and a missing file leaves the defaults in place.
// flags may be nil; only flags the user actually set take precedence.
func Load(override string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault("reference_table", d.ReferenceTable)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.indent", d.Output.Indent)
	v.SetDefault("output.tabs", d.Output.Tabs)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if override != "" {
		v.SetConfigFile(override)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", override, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "molgen"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if strings.HasPrefix(cfg.ReferenceTable, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.ReferenceTable = filepath.Join(home, cfg.ReferenceTable[2:])
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FileName is the name looked up in the search paths
const FileName = configName + ".yaml"

// WriteFile saves the settings as YAML. An existing file is only replaced
// when overwrite is set.
func (c *Config) WriteFile(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "human", "json":
	default:
		return fmt.Errorf("invalid output.format %q, expected human or json", c.Output.Format)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("invalid output.indent %d, must not be negative", c.Output.Indent)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q, expected text or json", c.Log.Format)
	}
	return nil
}

// SlogLevel parses the configured level name (debug, info, warn, error)
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", c.Level, err)
	}
	return level, nil
}

// NewLogger builds the slog logger described by the configuration, writing to w
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
