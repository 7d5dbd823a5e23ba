package models

import (
	"net/netip"
	"net/url"
	"time"
)

type ScanRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// BatchScanRequest represents a request to scan multiple URLs
type BatchScanRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,dive,url"`
}

// ValidatedURL is a URL that passed every safety check. It can only be
// read after construction.
type ValidatedURL struct {
	u     url.URL
	addrs []netip.Addr
}

// NewValidatedURL builds a ValidatedURL from an already checked URL. The
// fragment and user info are dropped.
func NewValidatedURL(u *url.URL, addrs []netip.Addr) ValidatedURL {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	c.User = nil
	c.Opaque = ""

	return ValidatedURL{
		u:     c,
		addrs: append([]netip.Addr(nil), addrs...),
	}
}

// String returns the canonical form scheme://host[:port]path[?query].
func (v ValidatedURL) String() string {
	s := v.u.Scheme + "://" + v.u.Host + v.u.EscapedPath()
	if v.u.RawQuery != "" {
		s += "?" + v.u.RawQuery
	}
	return s
}

// URL returns a copy of the underlying URL.
func (v ValidatedURL) URL() *url.URL {
	c := v.u
	return &c
}

func (v ValidatedURL) Hostname() string {
	return v.u.Hostname()
}

// Addresses returns the addresses that were resolved and classified during
// validation.
func (v ValidatedURL) Addresses() []netip.Addr {
	return append([]netip.Addr(nil), v.addrs...)
}

func (v ValidatedURL) IsZero() bool {
	return v.u.Scheme == "" && v.u.Host == ""
}

// FetchResult is the raw content of a fetched page
type FetchResult struct {
	Body        []byte
	ContentType string
	FinalURL    string
	StatusCode  int
	Insecure    bool // fetched with certificate verification disabled
}

type ImageSource string

const (
	ImageSourceTag ImageSource = "img"
	ImageSourceCSS ImageSource = "css"
)

// ImageCandidate is one image discovered on a page
type ImageCandidate struct {
	URL          string      `json:"url"`
	AltText      *string     `json:"alt_text"`
	HasAltText   bool        `json:"has_alt_text"`
	IsDecorative bool        `json:"is_decorative"`
	AltLength    int         `json:"alt_text_length"`
	Width        *int        `json:"width,omitempty"`
	Height       *int        `json:"height,omitempty"`
	Source       ImageSource `json:"source"`
}

// ImageReport is the analyzer's part of a scan outcome
type ImageReport struct {
	Images             []ImageCandidate
	TotalImages        int
	ImagesWithAlt      int
	ImagesMissingAlt   int
	DecorativeImages   int
	CoveragePercentage float64
}

type ScanStatus string

const (
	ScanStatusPending   ScanStatus = "pending"
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusFailed    ScanStatus = "failed"
)

// ScanOutcome represents the complete result of one scan
type ScanOutcome struct {
	URL                string           `json:"url"`
	TotalImages        int              `json:"total_images"`
	ImagesWithAlt      int              `json:"images_with_alt"`
	ImagesMissingAlt   int              `json:"images_missing_alt"`
	DecorativeImages   int              `json:"decorative_images"`
	CoveragePercentage float64          `json:"coverage_percentage"`
	Images             []ImageCandidate `json:"images"`
	DurationMS         int64            `json:"scan_duration_ms"`
	Status             ScanStatus       `json:"scan_status"`
	ErrorCategory      string           `json:"error_category,omitempty"`
	ErrorMessage       string           `json:"error_message,omitempty"`
	ScannedAt          time.Time        `json:"scanned_at"`
}

// ScanRecord is a stored scan with its identity
type ScanRecord struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Outcome   ScanOutcome `json:"result"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type BatchScanResult struct {
	Records   []ScanRecord    `json:"records"`
	Errors    []ErrorResponse `json:"errors,omitempty"`
	TotalTime time.Duration   `json:"total_time"`
}

type ErrorResponse struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"status_code"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
