package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeCLI   = "cli"
	ModeStdio = "stdio"

	// Default values
	DefaultInputPath   = "Form ADT-1-29092023_signed.pdf"
	DefaultRecordPath  = "output.json"
	DefaultSummaryPath = "summary.txt"
	DefaultEngine      = "ledongthuc"
	DefaultFormat      = "json"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// EnvPrefix is prepended to every environment variable
	EnvPrefix = "ADT1"
)

// Config holds all configuration for the extractor
type Config struct {
	Mode string // "cli" or "stdio"

	// Input and output files
	InputPath   string
	RecordPath  string
	SummaryPath string
	Directory   string // Directory MCP requests are confined to

	// Extraction configuration
	Engine       string
	Format       string
	Placeholders map[string]string // Summary placeholder overrides

	// Application configuration
	ConfigFile  string
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with the stock file locations
func DefaultConfig() *Config {
	return &Config{
		Mode:         ModeCLI,
		InputPath:    DefaultInputPath,
		RecordPath:   DefaultRecordPath,
		SummaryPath:  DefaultSummaryPath,
		Engine:       DefaultEngine,
		Format:       DefaultFormat,
		Placeholders: map[string]string{},
		Version:      "1.0.0",
		ServerName:   "adt1-extractor",
		LogLevel:     DefaultLogLevel,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags, environment variables and the
// optional config file, and returns a validated configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	if err := readConfigFile(); err != nil {
		return nil, err
	}

	populateConfigFromViper(cfg)

	// The input's directory bounds MCP requests unless one is configured
	if cfg.Directory == "" {
		cfg.Directory = filepath.Dir(cfg.InputPath)
	}
	if expandedPath, err := filepath.Abs(cfg.Directory); err == nil {
		cfg.Directory = expandedPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("input", cfg.InputPath)
	viper.SetDefault("record", cfg.RecordPath)
	viper.SetDefault("summary", cfg.SummaryPath)
	viper.SetDefault("dir", cfg.Directory)
	viper.SetDefault("engine", cfg.Engine)
	viper.SetDefault("format", cfg.Format)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("config", "", "Optional config file (yaml, json or toml) with placeholder overrides")
	pflag.String("mode", cfg.Mode, "Run mode: 'cli' extracts one document, 'stdio' serves MCP tools")
	pflag.String("input", cfg.InputPath, "Form ADT-1 PDF to extract")
	pflag.String("record", cfg.RecordPath, "Record output file")
	pflag.String("summary", cfg.SummaryPath, "Summary output file")
	pflag.String("dir", cfg.Directory, "Directory MCP requests may read from (default: input's directory)")
	pflag.String("engine", cfg.Engine, "Text engine: 'ledongthuc' or 'docconv'")
	pflag.String("format", cfg.Format, "Record format: 'json' or 'yaml'")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"config", "mode", "input", "record", "summary", "dir",
		"engine", "format", "loglevel", "maxfilesize",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nADT-1 Extractor - pull auditor appointment details out of Form ADT-1 filings\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                    "+
			"# extract %q\n", os.Args[0], DefaultInputPath)
		fmt.Fprintf(os.Stderr, "  %s --input=filing.pdf --format=yaml   "+
			"# custom input, YAML record\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio --dir=/path/to/pdfs   # MCP tool server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  ADT1_MODE           Run mode\n")
		fmt.Fprintf(os.Stderr, "  ADT1_INPUT          Input PDF\n")
		fmt.Fprintf(os.Stderr, "  ADT1_RECORD         Record output file\n")
		fmt.Fprintf(os.Stderr, "  ADT1_SUMMARY        Summary output file\n")
		fmt.Fprintf(os.Stderr, "  ADT1_DIR            MCP directory\n")
		fmt.Fprintf(os.Stderr, "  ADT1_ENGINE         Text engine\n")
		fmt.Fprintf(os.Stderr, "  ADT1_FORMAT         Record format\n")
		fmt.Fprintf(os.Stderr, "  ADT1_LOGLEVEL       Log level\n")
		fmt.Fprintf(os.Stderr, "  ADT1_MAXFILESIZE    Maximum file size\n")
	}
}

// ErrVersionRequested is returned by LoadFromFlags when --version is given
var ErrVersionRequested = errors.New("version requested")

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return ErrVersionRequested
		}
	}
	return nil
}

// readConfigFile loads the config file named by --config, if any
func readConfigFile() error {
	path := viper.GetString("config")
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.ConfigFile = viper.GetString("config")
	cfg.Mode = viper.GetString("mode")
	cfg.InputPath = viper.GetString("input")
	cfg.RecordPath = viper.GetString("record")
	cfg.SummaryPath = viper.GetString("summary")
	cfg.Directory = viper.GetString("dir")
	cfg.Engine = viper.GetString("engine")
	cfg.Format = viper.GetString("format")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	if placeholders := viper.GetStringMapString("placeholders"); len(placeholders) > 0 {
		cfg.Placeholders = placeholders
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeCLI && c.Mode != ModeStdio {
		return errors.New("mode must be either 'cli' or 'stdio'")
	}

	if c.InputPath == "" && c.Mode == ModeCLI {
		return errors.New("input path cannot be empty")
	}
	if c.RecordPath == "" || c.SummaryPath == "" {
		return errors.New("record and summary paths cannot be empty")
	}
	if c.Directory == "" {
		return errors.New("directory cannot be empty")
	}

	validEngines := map[string]bool{
		"ledongthuc": true,
		"docconv":    true,
	}
	if !validEngines[c.Engine] {
		return fmt.Errorf("invalid engine: %s (must be one of: ledongthuc, docconv)", c.Engine)
	}

	if c.Format != "json" && c.Format != "yaml" {
		return fmt.Errorf("invalid format: %s (must be one of: json, yaml)", c.Format)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsStdioMode returns true if the extractor serves MCP over stdio
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Input: %s, Record: %s, Summary: %s, Directory: %s, Engine: %s, "+
		"Format: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.InputPath, c.RecordPath, c.SummaryPath, c.Directory, c.Engine,
		c.Format, c.LogLevel, c.MaxFileSize)
}
