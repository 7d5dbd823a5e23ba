package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load builds the process configuration. Variables from a .env file in the
// working directory are loaded first, then the YAML file at path (if path is
// not empty), then environment overrides. Defaults fill whatever is left.
func Load(path string) (*Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables in the config
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.LogLevel = getEnv("LOG_LEVEL", c.Server.LogLevel)
	c.Server.LogToFile = getEnvAsBool("LOG_TO_FILE", c.Server.LogToFile)
	c.Server.LogDir = getEnv("LOG_DIR", c.Server.LogDir)

	c.Scanner.RequestTimeoutSeconds = getEnvAsInt("SCANNER_REQUEST_TIMEOUT_SECONDS", c.Scanner.RequestTimeoutSeconds)
	c.Scanner.DNSTimeoutSeconds = getEnvAsInt("SCANNER_DNS_TIMEOUT_SECONDS", c.Scanner.DNSTimeoutSeconds)
	c.Scanner.MaxContentBytes = int64(getEnvAsInt("SCANNER_MAX_CONTENT_BYTES", int(c.Scanner.MaxContentBytes)))
	c.Scanner.MaxRedirects = getEnvAsInt("SCANNER_MAX_REDIRECTS", c.Scanner.MaxRedirects)
	c.Scanner.UserAgent = getEnv("SCANNER_USER_AGENT", c.Scanner.UserAgent)
	c.Scanner.TLSFallback = getEnvAsBool("SCANNER_TLS_FALLBACK", c.Scanner.TLSFallback)
	c.Scanner.BatchConcurrency = getEnvAsInt("SCANNER_BATCH_CONCURRENCY", c.Scanner.BatchConcurrency)
	c.Scanner.MaxBatchSize = getEnvAsInt("SCANNER_MAX_BATCH_SIZE", c.Scanner.MaxBatchSize)

	c.Network.BlockedDomains = getEnvAsList("BLOCKED_DOMAINS", c.Network.BlockedDomains)
	c.Network.AllowedDomains = getEnvAsList("ALLOWED_DOMAINS", c.Network.AllowedDomains)
	c.Network.BlockedCIDRs = getEnvAsList("BLOCKED_CIDRS", c.Network.BlockedCIDRs)

	c.Storage.DSN = getEnv("DATABASE_DSN", c.Storage.DSN)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty items
func getEnvAsList(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
