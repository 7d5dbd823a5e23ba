package httpclient

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"syscall"
	"time"

	"github.com/RuvinSL/alt-audit/pkg/interfaces"
	"github.com/RuvinSL/alt-audit/pkg/models"
	"github.com/RuvinSL/alt-audit/pkg/scanerr"
)

const (
	pathPrimary  = "primary"
	pathFallback = "insecure_fallback"
)

var allowedContentTypes = []string{
	"text/html",
	"text/plain",
	"application/xhtml+xml",
}

// Options are the fetch limits, fixed at construction
type Options struct {
	Timeout         time.Duration
	MaxContentBytes int64
	MaxRedirects    int
	UserAgent       string
	TLSFallback     bool
}

// Client implements interfaces.ContentFetcher. Each Fetch builds its own
// transport and releases its connections before returning.
type Client struct {
	opts       Options
	validator  interfaces.URLValidator
	classifier interfaces.AddressClassifier
	logger     interfaces.Logger
	metrics    interfaces.MetricsCollector
}

// New creates a fetcher. validator re-checks every redirect target and
// classifier vets the address of every outgoing connection; either may be
// nil to disable that check.
func New(opts Options, validator interfaces.URLValidator, classifier interfaces.AddressClassifier, logger interfaces.Logger, metrics interfaces.MetricsCollector) *Client {
	return &Client{
		opts:       opts,
		validator:  validator,
		classifier: classifier,
		logger:     logger,
		metrics:    metrics,
	}
}

// Fetch performs a bounded GET. The timeout covers the primary attempt and
// the insecure fallback together.
func (c *Client) Fetch(ctx context.Context, target models.ValidatedURL) (*models.FetchResult, error) {
	if target.IsZero() {
		return nil, scanerr.Validation("URL has not been validated")
	}

	parent := ctx
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := c.fetch(ctx, target.String(), false)
	c.metrics.RecordFetch(pathPrimary, err == nil, time.Since(start).Seconds())
	if err == nil {
		return result, nil
	}

	if !c.opts.TLSFallback || !isTLSError(err) {
		return nil, classify(parent, err)
	}

	c.logger.Warn("TLS verification failed, retrying with certificate verification disabled",
		"url", target.String(),
		"error", err,
	)

	start = time.Now()
	result, err = c.fetch(ctx, target.String(), true)
	c.metrics.RecordFetch(pathFallback, err == nil, time.Since(start).Seconds())
	if err != nil {
		return nil, classify(parent, err)
	}

	result.Insecure = true
	return result, nil
}

func (c *Client) fetch(ctx context.Context, url string, insecure bool) (*models.FetchResult, error) {
	client, transport := c.newHTTPClient(insecure)
	defer transport.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, scanerr.Wrap(scanerr.KindScan, err, "failed to create request")
	}

	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,text/plain;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip")

	c.logger.Debug("Making HTTP request",
		"method", req.Method,
		"url", url,
		"insecure", insecure,
	)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.logger.Debug("HTTP request failed",
			"url", url,
			"error", err,
			"duration", time.Since(start),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, scanerr.Scan("HTTP error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if !isAllowedContentType(contentType) {
		return nil, scanerr.Scan("unsupported content type '%s'", contentType)
	}

	// Handle decompression ourselves so the size ceiling applies to the
	// decoded bytes.
	var reader io.Reader = resp.Body
	switch encoding := strings.ToLower(resp.Header.Get("Content-Encoding")); encoding {
	case "", "identity":
		if resp.ContentLength > c.opts.MaxContentBytes {
			return nil, scanerr.Scan("content too large: %d bytes exceeds limit of %d", resp.ContentLength, c.opts.MaxContentBytes)
		}
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, scanerr.Wrap(scanerr.KindScan, err, "failed to decompress response")
		}
		defer gz.Close()
		reader = gz
	default:
		return nil, scanerr.Scan("unsupported content encoding '%s'", encoding)
	}

	body, err := io.ReadAll(io.LimitReader(reader, c.opts.MaxContentBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.opts.MaxContentBytes {
		return nil, scanerr.Scan("content too large: exceeds limit of %d bytes", c.opts.MaxContentBytes)
	}

	c.logger.Debug("HTTP response received",
		"url", url,
		"final_url", resp.Request.URL.String(),
		"status_code", resp.StatusCode,
		"content_length", len(body),
		"content_encoding", resp.Header.Get("Content-Encoding"),
		"content_type", contentType,
		"duration", time.Since(start),
	)

	return &models.FetchResult{
		Body:        body,
		ContentType: contentType,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
	}, nil
}

func (c *Client) newHTTPClient(insecure bool) (*http.Client, *http.Transport) {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	if c.classifier != nil {
		dialer.Control = c.dialControl
	}

	transport := &http.Transport{
		// The dial guard must see the target's address, never a proxy's.
		Proxy:       nil,
		DialContext: dialer.DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure, //nolint:gosec // degraded path, logged by the caller
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		DisableCompression:    true,
	}

	client := &http.Client{
		Timeout:       c.opts.Timeout,
		Transport:     transport,
		CheckRedirect: c.checkRedirect,
	}

	return client, transport
}

// dialControl runs after DNS resolution and before connect, on the exact
// address the socket will use.
func (c *Client) dialControl(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return scanerr.Security("connection to '%s' is not allowed", address)
	}

	addr, err := netip.ParseAddr(host)
	if err != nil || !c.classifier.IsAllowed(addr) {
		c.metrics.RecordSecurityRejection("dial_blocked")
		c.logger.Warn("Blocked connection to disallowed address",
			"network", network,
			"address", address,
		)
		return scanerr.Security("connection to '%s' is not allowed", host)
	}

	return nil
}

func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) > c.opts.MaxRedirects {
		return scanerr.Scan("too many redirects (limit %d)", c.opts.MaxRedirects)
	}

	next := *req.URL
	next.Fragment = ""
	next.RawFragment = ""

	if c.validator != nil {
		if _, err := c.validator.Validate(req.Context(), next.String()); err != nil {
			c.logger.Warn("Redirect target rejected",
				"from", via[len(via)-1].URL.String(),
				"target", next.String(),
				"error", err,
			)
			return err
		}
	}

	c.logger.Debug("Following redirect",
		"target", next.String(),
		"hop", len(via),
	)

	return nil
}

func isAllowedContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	}
	mediaType = strings.ToLower(mediaType)

	for _, allowed := range allowedContentTypes {
		if strings.HasPrefix(mediaType, allowed) {
			return true
		}
	}
	return false
}

// isTLSError reports failures attributable to certificate verification or
// TLS negotiation. Policy rejections never qualify.
func isTLSError(err error) bool {
	var typed *scanerr.Error
	if errors.As(err, &typed) {
		return false
	}

	var (
		verifyErr   *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		invalidErr  x509.CertificateInvalidError
		recordErr   tls.RecordHeaderError
		alertErr    tls.AlertError
	)
	switch {
	case errors.As(err, &verifyErr),
		errors.As(err, &unknownAuth),
		errors.As(err, &hostnameErr),
		errors.As(err, &invalidErr),
		errors.As(err, &recordErr),
		errors.As(err, &alertErr):
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "remote error"
}

// classify maps a transport failure onto the error taxonomy without leaking
// transport detail into the message.
func classify(parent context.Context, err error) error {
	var typed *scanerr.Error
	if errors.As(err, &typed) {
		return typed
	}

	if errors.Is(parent.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return scanerr.Wrap(scanerr.KindScan, err, "scan cancelled")
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return scanerr.Wrap(scanerr.KindScan, err, "request timeout")
	}

	if isTLSError(err) {
		return scanerr.Wrap(scanerr.KindScan, err, "TLS certificate verification failed")
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return scanerr.Wrap(scanerr.KindScan, err, "could not connect to host")
	}

	return scanerr.Wrap(scanerr.KindScan, err, "failed to fetch URL")
}

// Ensure Client implements interfaces.ContentFetcher
var _ interfaces.ContentFetcher = (*Client)(nil)
