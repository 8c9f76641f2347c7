package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"taxtool/internal/logger"
)

// Config carries all process configuration, read from environment variables.
type Config struct {
	// Directories and state
	TaxFilesDir string // synthesized invoice spreadsheets
	DataDir     string // raw report downloads consumed by the upload script
	StateFile   string // daily replacement quota state (JSON)
	LogDir      string // daily replacement log text files

	// External scripts managed by the control panel
	UploadCommand []string
	FetchCommand  []string

	// Control panel
	Port int

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "5001"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: PORT must be numeric: %w", err)
	}

	config := &Config{
		TaxFilesDir:   getEnv("TAX_FILES_DIR", "tax_files"),
		DataDir:       getEnv("DATA_DIR", "data"),
		StateFile:     getEnv("STATE_FILE", "beverage_replacement_state.json"),
		LogDir:        getEnv("LOG_DIR", "."),
		UploadCommand: strings.Fields(getEnv("UPLOAD_COMMAND", "python3 automation/auto_upload_simple.py")),
		FetchCommand:  strings.Fields(getEnv("FETCH_COMMAND", "python3 automation/auto_fetch_fabi.py")),
		Port:          port,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.TaxFilesDir == "" {
		return fmt.Errorf("TAX_FILES_DIR must not be empty")
	}
	if c.StateFile == "" {
		return fmt.Errorf("STATE_FILE must not be empty")
	}
	if len(c.UploadCommand) == 0 {
		return fmt.Errorf("UPLOAD_COMMAND must not be empty")
	}
	if len(c.FetchCommand) == 0 {
		return fmt.Errorf("FETCH_COMMAND must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d is out of range", c.Port)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config.
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
