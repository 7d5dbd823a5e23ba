package core

import (
	"context"
	"math"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/RuvinSL/alt-audit/pkg/interfaces"
	"github.com/RuvinSL/alt-audit/pkg/models"
	"github.com/RuvinSL/alt-audit/pkg/scanerr"
	"golang.org/x/sync/errgroup"
)

// Scanner composes validation, fetching and image analysis into one scan.
// ScanURL never returns an error: every failure ends up in the outcome.
type Scanner struct {
	validator interfaces.URLValidator
	fetcher   interfaces.ContentFetcher
	analyzer  interfaces.ImageAnalyzer
	logger    interfaces.Logger
	metrics   interfaces.MetricsCollector
}

func NewScanner(
	validator interfaces.URLValidator,
	fetcher interfaces.ContentFetcher,
	analyzer interfaces.ImageAnalyzer,
	logger interfaces.Logger,
	metrics interfaces.MetricsCollector,
) *Scanner {
	return &Scanner{
		validator: validator,
		fetcher:   fetcher,
		analyzer:  analyzer,
		logger:    logger,
		metrics:   metrics,
	}
}

// ScanURL runs the full pipeline for one URL. Duration covers every path,
// including failures and recovered panics.
func (s *Scanner) ScanURL(ctx context.Context, rawURL string) (outcome models.ScanOutcome) {
	start := time.Now()
	outcome = models.ScanOutcome{
		URL:       strings.TrimSpace(rawURL),
		Images:    []models.ImageCandidate{},
		ScannedAt: start.UTC(),
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scan panicked",
				"url", outcome.URL,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			outcome = failOutcome(outcome, errUnexpected)
		}

		elapsed := time.Since(start)
		outcome.DurationMS = durationMillis(elapsed)
		s.metrics.RecordScan(string(outcome.Status), outcome.ErrorCategory, elapsed.Seconds())
	}()

	s.logger.Info("Starting URL scan", "url", outcome.URL)

	report, canonical, err := s.scan(ctx, rawURL)
	if canonical != "" {
		outcome.URL = canonical
	}
	if err != nil {
		s.logFailure(outcome.URL, err, start)
		return failOutcome(outcome, err)
	}

	outcome.Status = models.ScanStatusCompleted
	outcome.TotalImages = report.TotalImages
	outcome.ImagesWithAlt = report.ImagesWithAlt
	outcome.ImagesMissingAlt = report.ImagesMissingAlt
	outcome.DecorativeImages = report.DecorativeImages
	outcome.CoveragePercentage = report.CoveragePercentage
	if report.Images != nil {
		outcome.Images = report.Images
	}

	s.logger.Info("URL scan completed",
		"url", outcome.URL,
		"total_images", outcome.TotalImages,
		"images_with_alt", outcome.ImagesWithAlt,
		"coverage_percentage", outcome.CoveragePercentage,
		"duration", time.Since(start),
	)

	return outcome
}

// scan returns the canonical URL as soon as validation succeeds so failed
// outcomes still carry it.
func (s *Scanner) scan(ctx context.Context, rawURL string) (*models.ImageReport, string, error) {
	target, err := s.validator.Validate(ctx, rawURL)
	if err != nil {
		return nil, "", err
	}
	canonical := target.String()

	result, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, canonical, err
	}

	report, err := s.analyzer.Analyze(ctx, result.Body, analysisBase(target, result.FinalURL))
	if err != nil {
		return nil, canonical, err
	}
	if report == nil {
		return nil, canonical, scanerr.ImageAnalysis("no analysis result")
	}

	// No partial outcome once the caller has gone away.
	if ctx.Err() != nil {
		return nil, canonical, scanerr.Wrap(scanerr.KindScan, ctx.Err(), "scan cancelled")
	}

	if result.Insecure {
		s.logger.Warn("Scan used insecure TLS fallback", "url", canonical)
	}

	return report, canonical, nil
}

// ScanBatch scans urls with at most concurrency scans in flight. Outcomes
// are returned in input order.
func (s *Scanner) ScanBatch(ctx context.Context, urls []string, concurrency int) []models.ScanOutcome {
	outcomes := make([]models.ScanOutcome, len(urls))

	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, rawURL := range urls {
		i, rawURL := i, rawURL
		g.Go(func() error {
			outcomes[i] = s.ScanURL(ctx, rawURL)
			return nil
		})
	}

	// ScanURL never fails, so Wait only joins.
	_ = g.Wait()

	return outcomes
}

func (s *Scanner) logFailure(target string, err error, start time.Time) {
	switch scanerr.KindOf(err) {
	case scanerr.KindValidation, scanerr.KindSecurity, scanerr.KindScan:
		s.logger.Warn("URL scan failed",
			"url", target,
			"category", scanerr.KindOf(err),
			"error", err,
			"duration", time.Since(start),
		)
	default:
		s.logger.Error("URL scan failed",
			"url", target,
			"category", scanerr.KindOf(err),
			"error", err,
			"duration", time.Since(start),
		)
	}
}

// errUnexpected stands in for recovered panics; Format reduces it to the
// generic message.
var errUnexpected = &scanerr.Error{Kind: scanerr.KindUnexpected, Message: "internal error while scanning"}

func failOutcome(outcome models.ScanOutcome, err error) models.ScanOutcome {
	outcome.Status = models.ScanStatusFailed
	outcome.ErrorCategory = string(scanerr.KindOf(err))
	outcome.ErrorMessage = scanerr.Format(err)
	outcome.TotalImages = 0
	outcome.ImagesWithAlt = 0
	outcome.ImagesMissingAlt = 0
	outcome.DecorativeImages = 0
	outcome.CoveragePercentage = 0
	outcome.Images = []models.ImageCandidate{}
	return outcome
}

// analysisBase resolves relative image URLs against the page that was
// actually served, which differs from target after redirects.
func analysisBase(target models.ValidatedURL, finalURL string) models.ValidatedURL {
	if finalURL == "" || finalURL == target.String() {
		return target
	}
	u, err := url.Parse(finalURL)
	if err != nil {
		return target
	}
	return models.NewValidatedURL(u, nil)
}

// durationMillis rounds up so a scan that ran at all never reports 0ms.
func durationMillis(d time.Duration) int64 {
	return int64(math.Ceil(float64(d) / float64(time.Millisecond)))
}

// Ensure Scanner implements interfaces.Scanner
var _ interfaces.Scanner = (*Scanner)(nil)
