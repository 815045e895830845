package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "http" {
		t.Errorf("Expected default mode to be 'http', got '%s'", cfg.Mode)
	}

	if cfg.Host != "0.0.0.0" {
		t.Errorf("Expected default host to be '0.0.0.0', got '%s'", cfg.Host)
	}

	if cfg.Port != 8000 {
		t.Errorf("Expected default port to be 8000, got %d", cfg.Port)
	}

	if cfg.ServerName != "pdfduck" {
		t.Errorf("Expected default server name to be 'pdfduck', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	if cfg.MaxBatchSize != 50 {
		t.Errorf("Expected default max batch size to be 50, got %d", cfg.MaxBatchSize)
	}

	if cfg.BatchWorkers != 4 {
		t.Errorf("Expected default batch workers to be 4, got %d", cfg.BatchWorkers)
	}

	if cfg.DocTimeout != 60*time.Second {
		t.Errorf("Expected default doc timeout to be 60s, got %s", cfg.DocTimeout)
	}

	if cfg.CORSOrigins != "*" {
		t.Errorf("Expected default CORS origins to be '*', got '%s'", cfg.CORSOrigins)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid stdio mode",
			mutate:  func(c *Config) { c.Mode = ModeStdio },
			wantErr: false,
		},
		{
			name:    "invalid mode",
			mutate:  func(c *Config) { c.Mode = "grpc" },
			wantErr: true,
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: true,
		},
		{
			name: "stdio mode ignores port",
			mutate: func(c *Config) {
				c.Mode = ModeStdio
				c.Port = 0
			},
			wantErr: false,
		},
		{
			name:    "zero max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: true,
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.MaxBatchSize = 0 },
			wantErr: true,
		},
		{
			name:    "zero batch workers",
			mutate:  func(c *Config) { c.BatchWorkers = 0 },
			wantErr: true,
		},
		{
			name:    "zero doc timeout",
			mutate:  func(c *Config) { c.DocTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 9000

	if got := cfg.Address(); got != "127.0.0.1:9000" {
		t.Errorf("expected address '127.0.0.1:9000', got '%s'", got)
	}
}

func TestConfigModeHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.IsHTTPMode() || cfg.IsStdioMode() {
		t.Errorf("default config should be HTTP mode")
	}

	cfg.Mode = ModeStdio
	if cfg.IsHTTPMode() || !cfg.IsStdioMode() {
		t.Errorf("stdio config should be stdio mode")
	}

	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Errorf("debug log level should report IsDebug")
	}
}
