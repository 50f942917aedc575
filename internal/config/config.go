package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Values come from an optional YAML file
// with environment variables taking precedence over both the file and the
// defaults.
type Config struct {
	Port            int    `yaml:"port"`
	AllowOrigins    string `yaml:"allow_origins"`
	LogLevel        string `yaml:"log_level"`
	ReadBufferSize  int    `yaml:"read_buffer_size"`
	WriteBufferSize int    `yaml:"write_buffer_size"`
}

// Default matches the reference deployment: the port the original server
// listened on and the dev origin of the reference front end.
func Default() Config {
	return Config{
		Port:            3001,
		AllowOrigins:    "http://localhost:5173",
		LogLevel:        "info",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// Load builds the effective config: defaults, then the YAML file at path
// (skipped when path is empty), then environment overrides.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.Port = getEnvAsInt("PORT", config.Port)
	config.AllowOrigins = getEnv("ALLOW_ORIGINS", config.AllowOrigins)
	config.LogLevel = getEnv("LOG_LEVEL", config.LogLevel)

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
