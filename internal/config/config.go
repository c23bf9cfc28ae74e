// Package config loads closurec settings from flags, environment and an
// optional YAML file.
package config

import (
	"closurec/internal/client"
	"closurec/internal/domain/compilation"
	"closurec/internal/domain/errors/domain"
	"closurec/internal/report"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. CLOSUREC_COMPILER_TIMEOUT.
const EnvPrefix = "CLOSUREC"

// Configuration keys.
const (
	KeyAPIURL        = "compiler.api_url"
	KeyTimeout       = "compiler.timeout"
	KeyInputs        = "compile.inputs"
	KeyOutput        = "compile.output"
	KeyLevel         = "compile.level"
	KeyVerbose       = "compile.verbose"
	KeyReportFormat  = "report.format"
	KeyReportColor   = "report.color"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	defaultFileName  = "closurec"
	defaultColorMode = ColorAuto
)

// Color modes for report.color.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Config holds the complete application configuration.
type Config struct {
	Compiler CompilerConfig `mapstructure:"compiler"`
	Compile  CompileConfig  `mapstructure:"compile"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
}

// CompilerConfig holds the remote service settings.
type CompilerConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CompileConfig describes the compilation job.
type CompileConfig struct {
	Inputs  []string `mapstructure:"inputs"`
	Output  string   `mapstructure:"output"`
	Level   string   `mapstructure:"level"` // 1-3 or a level name
	Verbose bool     `mapstructure:"verbose"`
}

// ReportConfig holds output presentation settings.
type ReportConfig struct {
	Format string `mapstructure:"format"`
	Color  string `mapstructure:"color"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NewViper returns a viper instance with defaults and environment binding.
// When file is empty, ./closurec.yaml is read if present.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(defaultFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, client.DefaultAPIURL)
	v.SetDefault(KeyTimeout, client.DefaultTimeout)
	v.SetDefault(KeyInputs, []string{})
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyLevel, strconv.Itoa(compilation.DefaultLevelSelector))
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyReportFormat, report.FormatText)
	v.SetDefault(KeyReportColor, defaultColorMode)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
}

// ReadFile reads the configured file. A missing default file is not an
// error; a missing explicit file is.
func ReadFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// New decodes and validates the configuration held by v.
func New(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Compile.Inputs) == 0 {
		return fmt.Errorf("%w: at least one input file is required", domain.ErrInvalidArgument)
	}
	if c.Compile.Output == "" {
		return fmt.Errorf("%w: an output file is required", domain.ErrInvalidArgument)
	}
	if _, err := c.LevelSelector(); err != nil {
		return err
	}
	if err := c.ClientConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	if !slices.Contains(report.Formats, strings.ToLower(c.Report.Format)) {
		return fmt.Errorf("%w: report.format must be one of %s, got %q",
			domain.ErrInvalidArgument, strings.Join(report.Formats, ", "), c.Report.Format)
	}
	switch strings.ToLower(c.Report.Color) {
	case ColorAuto, ColorOn, ColorOff:
	default:
		return fmt.Errorf("%w: report.color must be auto, on or off, got %q", domain.ErrInvalidArgument, c.Report.Color)
	}
	return nil
}

// LevelSelector resolves compile.level, given as 1-3 or as a level name, to
// the 1-based selector.
func (c *Config) LevelSelector() (int, error) {
	raw := strings.TrimSpace(c.Compile.Level)
	if n, err := strconv.Atoi(raw); err == nil {
		if _, err := compilation.LevelFromSelector(n); err != nil {
			return 0, err
		}
		return n, nil
	}
	level, err := compilation.ParseLevel(raw)
	if err != nil {
		return 0, err
	}
	return level.Selector(), nil
}

// ClientConfig returns the compilation client settings.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		APIURL:  c.Compiler.APIURL,
		Timeout: c.Compiler.Timeout,
	}
}

// ColorEnabled decides whether the report is colored. isTerminal reports
// whether stdout is a terminal and is only consulted in auto mode.
func (c *Config) ColorEnabled(isTerminal func() bool) bool {
	switch strings.ToLower(c.Report.Color) {
	case ColorOn:
		return true
	case ColorOff:
		return false
	default:
		return isTerminal()
	}
}
