package netguard

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/RuvinSL/alt-audit/pkg/interfaces"
	"github.com/RuvinSL/alt-audit/pkg/models"
	"github.com/RuvinSL/alt-audit/pkg/scanerr"
	"golang.org/x/net/idna"
)

const (
	maxURLLength      = 2048
	maxHostnameLength = 253
)

var (
	hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)

	// Rejected by name so a permissive parser can never route them anywhere.
	blockedSchemes = map[string]struct{}{
		"file":   {},
		"ftp":    {},
		"gopher": {},
		"jar":    {},
		"ldap":   {},
		"ldaps":  {},
		"mailto": {},
		"netdoc": {},
	}

	suspiciousPatterns = []string{
		"@",
		"#",
		"javascript:",
		"data:",
		"vbscript:",
		"file:",
		"ftp:",
	}
)

// Validator turns untrusted URL text into a models.ValidatedURL. Every
// address the host resolves to must pass the policy.
type Validator struct {
	policy   interfaces.NetworkPolicy
	resolver interfaces.Resolver
	logger   interfaces.Logger
	metrics  interfaces.MetricsCollector
}

func NewValidator(policy interfaces.NetworkPolicy, resolver interfaces.Resolver, logger interfaces.Logger, metrics interfaces.MetricsCollector) *Validator {
	return &Validator{
		policy:   policy,
		resolver: resolver,
		logger:   logger,
		metrics:  metrics,
	}
}

// Validate runs the syntactic checks first and only then touches DNS, so a
// malformed or disallowed URL never causes a lookup.
func (v *Validator) Validate(ctx context.Context, rawURL string) (models.ValidatedURL, error) {
	rawURL = strings.TrimSpace(rawURL)

	if rawURL == "" || !utf8.ValidString(rawURL) {
		return models.ValidatedURL{}, scanerr.Validation("URL must be a non-empty string")
	}
	if utf8.RuneCountInString(rawURL) > maxURLLength {
		return models.ValidatedURL{}, scanerr.Validation("URL exceeds maximum length of %d characters", maxURLLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return models.ValidatedURL{}, scanerr.Wrap(scanerr.KindValidation, err, "invalid URL format")
	}

	scheme := strings.ToLower(u.Scheme)
	if _, blocked := blockedSchemes[scheme]; blocked {
		return models.ValidatedURL{}, scanerr.Validation("protocol '%s' is not allowed", scheme)
	}
	if scheme != "http" && scheme != "https" {
		return models.ValidatedURL{}, scanerr.Validation("only HTTP and HTTPS protocols are allowed")
	}
	u.Scheme = scheme

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return models.ValidatedURL{}, scanerr.Validation("URL must have a valid hostname")
	}

	literal, isLiteral := parseIPLiteral(host)
	if isLiteral && literal.Zone() != "" {
		return models.ValidatedURL{}, scanerr.Validation("IPv6 zone identifiers are not allowed")
	}
	if !isLiteral {
		asciiHost, err := toASCII(host)
		if err != nil {
			return models.ValidatedURL{}, scanerr.Wrap(scanerr.KindValidation, err, "invalid hostname format")
		}
		host = asciiHost
	}
	// the fetched URL carries the same host the checks below saw
	u.Host = joinHost(host, u.Port())

	if v.policy.IsBlockedHost(host) {
		return models.ValidatedURL{}, v.reject("blocked_domain", scanerr.Security("domain '%s' is blocked", host))
	}
	if !v.policy.IsDomainAllowed(host) {
		return models.ValidatedURL{}, v.reject("domain_not_allowed", scanerr.Security("domain '%s' is not in the allowed list", host))
	}

	if isLiteral {
		if !v.policy.IsAllowed(literal) {
			return models.ValidatedURL{}, v.reject("blocked_ip", scanerr.Security("IP address '%s' is not allowed", host))
		}
	} else if !validHostname(host) {
		return models.ValidatedURL{}, scanerr.Validation("invalid hostname format")
	}

	lowered := strings.ToLower(rawURL)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(lowered, pattern) {
			return models.ValidatedURL{}, scanerr.Validation("URL contains suspicious patterns")
		}
	}

	var addrs []netip.Addr
	if isLiteral {
		addrs = []netip.Addr{literal}
	} else {
		addrs, err = v.resolver.Resolve(ctx, host)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return models.ValidatedURL{}, scanerr.Scan("scan cancelled")
			}
			return models.ValidatedURL{}, v.reject("dns_failure", scanerr.Wrap(scanerr.KindSecurity, err, "could not resolve hostname '%s'", host))
		}
		if len(addrs) == 0 {
			return models.ValidatedURL{}, v.reject("dns_failure", scanerr.Security("could not resolve hostname '%s'", host))
		}

		for _, addr := range addrs {
			if !v.policy.IsAllowed(addr) {
				v.logger.Warn("Hostname resolved to a disallowed address",
					"host", host,
					"address", addr.String(),
					"answers", len(addrs),
				)
				return models.ValidatedURL{}, v.reject("resolved_ip_blocked", scanerr.Security("resolved IP '%s' is not allowed", addr.String()))
			}
		}
	}

	return models.NewValidatedURL(u, addrs), nil
}

func (v *Validator) reject(reason string, err *scanerr.Error) error {
	v.metrics.RecordSecurityRejection(reason)
	v.logger.Info("URL rejected by network policy", "reason", reason, "error", err.Message)
	return err
}

func joinHost(host, port string) string {
	if port != "" {
		return net.JoinHostPort(host, port)
	}
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}

func parseIPLiteral(host string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr, true
}

// toASCII converts internationalized hostnames to their punycode form.
// ASCII hostnames are returned untouched so the format rules see exactly
// what the caller sent.
func toASCII(host string) (string, error) {
	for i := 0; i < len(host); i++ {
		if host[i] >= utf8.RuneSelf {
			return idna.Lookup.ToASCII(host)
		}
	}
	return host, nil
}

func validHostname(host string) bool {
	if host == "" || len(host) > maxHostnameLength {
		return false
	}
	if !hostnamePattern.MatchString(host) {
		return false
	}
	if strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") ||
		strings.HasPrefix(host, "-") || strings.HasSuffix(host, "-") {
		return false
	}
	return strings.Contains(host, ".")
}

var _ interfaces.URLValidator = (*Validator)(nil)
