package interfaces

import (
	"context"
	"net/netip"

	"github.com/RuvinSL/alt-audit/pkg/models"
)

// Scanner runs complete scans and always produces an outcome per URL
type Scanner interface {
	ScanURL(ctx context.Context, rawURL string) models.ScanOutcome
	ScanBatch(ctx context.Context, urls []string, concurrency int) []models.ScanOutcome
}

// URLValidator turns a candidate URL into a ValidatedURL or a typed rejection
type URLValidator interface {
	Validate(ctx context.Context, rawURL string) (models.ValidatedURL, error)
}

// AddressClassifier decides whether an IP address may be contacted.
// Implementations must be pure and safe for concurrent use.
type AddressClassifier interface {
	IsAllowed(addr netip.Addr) bool
}

// NetworkPolicy is the read-only policy consulted by the validator
type NetworkPolicy interface {
	AddressClassifier
	IsBlockedHost(host string) bool
	IsDomainAllowed(host string) bool
}

// Resolver resolves a hostname to every address of every family
type Resolver interface {
	Resolve(ctx context.Context, host string) ([]netip.Addr, error)
}

// ContentFetcher performs the bounded GET against a validated URL
type ContentFetcher interface {
	Fetch(ctx context.Context, target models.ValidatedURL) (*models.FetchResult, error)
}

// ImageAnalyzer extracts image candidates and alt-text statistics from HTML
type ImageAnalyzer interface {
	Analyze(ctx context.Context, content []byte, base models.ValidatedURL) (*models.ImageReport, error)
}

// ScanStore persists scan records. The scanner core never calls it; the
// HTTP layer writes the orchestrator's output through it.
type ScanStore interface {
	CreateScanRecord(ctx context.Context, url, userID string) (string, error)
	UpdateScanRecord(ctx context.Context, id string, outcome models.ScanOutcome) error
	GetScanRecord(ctx context.Context, id string) (*models.ScanRecord, error)
	ListScanRecords(ctx context.Context, userID string, offset, limit int) ([]models.ScanRecord, error)
	DeleteScanRecord(ctx context.Context, id string) error
	CheckHealth(ctx context.Context) error
}

// Logger defines the contract for logging operations
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordRequest(method, path string, statusCode int, duration float64)
	RecordScan(status, category string, duration float64)
	RecordFetch(path string, success bool, duration float64)
	RecordSecurityRejection(reason string)
}

// HealthChecker defines the contract for health check operations
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}
