package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/AnyUserName/batchconv/internal/report"
	"github.com/AnyUserName/batchconv/internal/task"
)

// EnvPrefix prefixes every environment override, e.g. BATCHCONV_LOG_LEVEL.
const EnvPrefix = "BATCHCONV"

// Config holds the engine and CLI settings.
type Config struct {
	Log     Log     `mapstructure:"log"`
	Convert Convert `mapstructure:"convert"`
	Report  Report  `mapstructure:"report"`
}

// Log configures the zerolog logger.
type Log struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// Convert holds conversion defaults.
type Convert struct {
	BatchQuality   int    `mapstructure:"batch_quality"`   // >0 overrides every task's quality
	DefaultFormat  string `mapstructure:"default_format"`  // format for tasks built from a directory scan
	DefaultQuality int    `mapstructure:"default_quality"` // quality for tasks built from a directory scan
}

// Report controls the batch report file.
type Report struct {
	Enabled  bool   `mapstructure:"enabled"`
	Filename string `mapstructure:"filename"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("convert.batch_quality", 0)
	v.SetDefault("convert.default_format", "WEBP")
	v.SetDefault("convert.default_quality", 100)
	v.SetDefault("report.enabled", true)
	v.SetDefault("report.filename", report.DefaultFilename)
}

// Default returns the configuration with no file and no environment applied.
func Default() *Config {
	return &Config{
		Log:     Log{Level: "info", Format: "console"},
		Convert: Convert{DefaultFormat: "WEBP", DefaultQuality: 100},
		Report:  Report{Enabled: true, Filename: report.DefaultFilename},
	}
}

// Load reads configuration from path (YAML) and the environment.
// An empty path means defaults plus environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot honor.
func (c *Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: must be console or json, got %q", c.Log.Format))
	}
	if c.Convert.BatchQuality < 0 || c.Convert.BatchQuality > 100 {
		errs = append(errs, fmt.Errorf("convert.batch_quality: %d outside 0-100", c.Convert.BatchQuality))
	}
	if c.Convert.DefaultQuality < 0 || c.Convert.DefaultQuality > 100 {
		errs = append(errs, fmt.Errorf("convert.default_quality: %d outside 0-100", c.Convert.DefaultQuality))
	}
	if _, err := task.ParseFormat(c.Convert.DefaultFormat); err != nil {
		errs = append(errs, fmt.Errorf("convert.default_format: %w", err))
	}
	if c.Report.Enabled && c.Report.Filename == "" {
		errs = append(errs, errors.New("report.filename: required when report is enabled"))
	}
	return errors.Join(errs...)
}
