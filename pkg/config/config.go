package config

import (
	"fmt"
	"net/netip"
	"time"
)

// Config is built once at process start and passed to every component
// constructor. Nothing reads it after startup except through those handles.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Scanner ScannerConfig `yaml:"scanner"`
	Network NetworkConfig `yaml:"network"`
	Storage StorageConfig `yaml:"storage"`
}

type ServerConfig struct {
	Port                   string `yaml:"port"`
	ReadTimeoutSeconds     int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `yaml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	LogLevel               string `yaml:"log_level"`
	LogToFile              bool   `yaml:"log_to_file"`
	LogDir                 string `yaml:"log_dir"`
}

// ScannerConfig holds the fetch limits
type ScannerConfig struct {
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	DNSTimeoutSeconds     int    `yaml:"dns_timeout_seconds"`
	MaxContentBytes       int64  `yaml:"max_content_bytes"`
	MaxRedirects          int    `yaml:"max_redirects"` // 0 selects the default
	UserAgent             string `yaml:"user_agent"`
	TLSFallback           bool   `yaml:"tls_fallback"`
	BatchConcurrency      int    `yaml:"batch_concurrency"`
	MaxBatchSize          int    `yaml:"max_batch_size"`
}

// NetworkConfig is the SSRF policy. Entries in BlockedDomains that parse as
// CIDR ranges are treated as blocked ranges.
type NetworkConfig struct {
	BlockedDomains []string `yaml:"blocked_domains"`
	AllowedDomains []string `yaml:"allowed_domains"`
	BlockedCIDRs   []string `yaml:"blocked_cidrs"`
}

type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

const (
	defaultPort            = "8080"
	defaultRequestTimeout  = 30
	defaultDNSTimeout      = 5
	defaultMaxContentBytes = 10 * 1024 * 1024
	defaultMaxRedirects    = 5
	defaultUserAgent       = "AltAuditScanner/1.0 (+https://alt-audit.com)"
	defaultDSN             = "alt_audit.db"
	maxRedirectsCeiling    = 20
)

// DefaultBlockedDomains are hosts that are never scanned
var DefaultBlockedDomains = []string{
	"localhost",
	"127.0.0.1",
	"0.0.0.0",
	"::1",
	"169.254.169.254", // cloud metadata
	"metadata.google.internal",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults sets default values for unspecified configuration options
func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 90
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = 30
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.LogDir == "" {
		c.Server.LogDir = "./logs"
	}

	// Scanner defaults
	if c.Scanner.RequestTimeoutSeconds == 0 {
		c.Scanner.RequestTimeoutSeconds = defaultRequestTimeout
	}
	if c.Scanner.DNSTimeoutSeconds == 0 {
		c.Scanner.DNSTimeoutSeconds = defaultDNSTimeout
	}
	if c.Scanner.MaxContentBytes == 0 {
		c.Scanner.MaxContentBytes = defaultMaxContentBytes
	}
	if c.Scanner.MaxRedirects == 0 {
		c.Scanner.MaxRedirects = defaultMaxRedirects
	}
	if c.Scanner.UserAgent == "" {
		c.Scanner.UserAgent = defaultUserAgent
	}
	if c.Scanner.BatchConcurrency == 0 {
		c.Scanner.BatchConcurrency = 4
	}
	if c.Scanner.MaxBatchSize == 0 {
		c.Scanner.MaxBatchSize = 50
	}

	// Network defaults
	if c.Network.BlockedDomains == nil {
		c.Network.BlockedDomains = append([]string(nil), DefaultBlockedDomains...)
	}

	// Storage defaults
	if c.Storage.DSN == "" {
		c.Storage.DSN = defaultDSN
	}
}

// Validate checks the configuration for valid values
func (c *Config) Validate() error {
	if c.Scanner.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("scanner.request_timeout_seconds must be positive, got: %d", c.Scanner.RequestTimeoutSeconds)
	}
	if c.Scanner.DNSTimeoutSeconds < 0 {
		return fmt.Errorf("scanner.dns_timeout_seconds must be positive, got: %d", c.Scanner.DNSTimeoutSeconds)
	}
	if c.Scanner.MaxContentBytes < 0 {
		return fmt.Errorf("scanner.max_content_bytes must be positive, got: %d", c.Scanner.MaxContentBytes)
	}
	if c.Scanner.MaxRedirects < 1 || c.Scanner.MaxRedirects > maxRedirectsCeiling {
		return fmt.Errorf("scanner.max_redirects must be between 1 and %d, got: %d", maxRedirectsCeiling, c.Scanner.MaxRedirects)
	}
	if c.Scanner.BatchConcurrency < 0 {
		return fmt.Errorf("scanner.batch_concurrency must be positive, got: %d", c.Scanner.BatchConcurrency)
	}
	if c.Scanner.MaxBatchSize < 0 {
		return fmt.Errorf("scanner.max_batch_size must be positive, got: %d", c.Scanner.MaxBatchSize)
	}

	for _, cidr := range c.Network.BlockedCIDRs {
		if _, err := netip.ParsePrefix(cidr); err != nil {
			return fmt.Errorf("invalid network.blocked_cidrs entry %q: %w", cidr, err)
		}
	}

	for _, domain := range c.Network.AllowedDomains {
		if domain == "" {
			return fmt.Errorf("network.allowed_domains must not contain empty entries")
		}
	}

	return nil
}

func (s ScannerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

func (s ScannerConfig) DNSTimeout() time.Duration {
	return time.Duration(s.DNSTimeoutSeconds) * time.Second
}

func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}
