package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeHTTP  = "http"
	ModeStdio = "stdio"

	// Default values
	DefaultPort         = 8000
	DefaultHost         = "0.0.0.0"
	DefaultLogLevel     = "info"
	DefaultMaxFileSize  = 100 * 1024 * 1024 // 100MB
	DefaultMaxBatchSize = 50
	DefaultBatchWorkers = 4
	DefaultDocTimeout   = 60 * time.Second
	DefaultCORSOrigins  = "*"
)

// Config holds all configuration for the extraction service
type Config struct {
	// Server configuration
	Mode string // "http" or "stdio"
	Host string
	Port int

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string

	// Extraction limits
	MaxFileSize  int64 // Maximum PDF file size in bytes
	MaxBatchSize int   // Maximum files per batch request
	BatchWorkers int   // Concurrent extractions per batch
	DocTimeout   time.Duration

	CORSOrigins string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:         ModeHTTP,
		Host:         DefaultHost,
		Port:         DefaultPort,
		Version:      "5.0.0",
		ServerName:   "pdfduck",
		LogLevel:     DefaultLogLevel,
		MaxFileSize:  DefaultMaxFileSize,
		MaxBatchSize: DefaultMaxBatchSize,
		BatchWorkers: DefaultBatchWorkers,
		DocTimeout:   DefaultDocTimeout,
		CORSOrigins:  DefaultCORSOrigins,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PDFDUCK")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("maxbatchsize", cfg.MaxBatchSize)
	viper.SetDefault("batchworkers", cfg.BatchWorkers)
	viper.SetDefault("doctimeout", cfg.DocTimeout)
	viper.SetDefault("corsorigins", cfg.CORSOrigins)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'http' for the REST API, 'stdio' for the MCP tool server")
	pflag.String("host", cfg.Host, "Server host address (http mode only)")
	pflag.Int("port", cfg.Port, "Server port (http mode only)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Int("maxbatchsize", cfg.MaxBatchSize, "Maximum files per batch request")
	pflag.Int("batchworkers", cfg.BatchWorkers, "Concurrent extractions per batch")
	pflag.Duration("doctimeout", cfg.DocTimeout, "Per-document extraction timeout")
	pflag.String("corsorigins", cfg.CORSOrigins, "Comma-separated allowed CORS origins, or '*'")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("maxbatchsize", pflag.Lookup("maxbatchsize"))
	_ = viper.BindPFlag("batchworkers", pflag.Lookup("batchworkers"))
	_ = viper.BindPFlag("doctimeout", pflag.Lookup("doctimeout"))
	_ = viper.BindPFlag("corsorigins", pflag.Lookup("corsorigins"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npdfduck - shipping bill field extraction service\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # HTTP API on 0.0.0.0:8000 (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --port=9000 --loglevel=debug     # HTTP API on another port\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio                     # MCP tool server over stdio\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDFDUCK_MODE         Run mode\n")
		fmt.Fprintf(os.Stderr, "  PDFDUCK_HOST         Server host\n")
		fmt.Fprintf(os.Stderr, "  PDFDUCK_PORT         Server port\n")
		fmt.Fprintf(os.Stderr, "  PDFDUCK_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  PDFDUCK_MAXFILESIZE  Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  PDFDUCK_MAXBATCHSIZE Maximum files per batch\n")
		fmt.Fprintf(os.Stderr, "  PDFDUCK_BATCHWORKERS Concurrent extractions per batch\n")
		fmt.Fprintf(os.Stderr, "  PDFDUCK_DOCTIMEOUT   Per-document timeout\n")
		fmt.Fprintf(os.Stderr, "  PDFDUCK_CORSORIGINS  Allowed CORS origins\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.MaxBatchSize = viper.GetInt("maxbatchsize")
	cfg.BatchWorkers = viper.GetInt("batchworkers")
	cfg.DocTimeout = viper.GetDuration("doctimeout")
	cfg.CORSOrigins = viper.GetString("corsorigins")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeHTTP && c.Mode != ModeStdio {
		return errors.New("mode must be either 'http' or 'stdio'")
	}

	if c.Mode == ModeHTTP && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.MaxBatchSize < 1 {
		return errors.New("maximum batch size must be at least 1")
	}

	if c.BatchWorkers < 1 {
		return errors.New("batch workers must be at least 1")
	}

	if c.DocTimeout <= 0 {
		return errors.New("document timeout must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, LogLevel: %s, MaxFileSize: %d, MaxBatchSize: %d, BatchWorkers: %d, DocTimeout: %s}",
		c.Mode, c.Host, c.Port, c.LogLevel, c.MaxFileSize, c.MaxBatchSize, c.BatchWorkers, c.DocTimeout)
}

// IsHTTPMode returns true if the service runs the REST API
func (c *Config) IsHTTPMode() bool {
	return c.Mode == ModeHTTP
}

// IsStdioMode returns true if the service runs as an MCP stdio tool server
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
