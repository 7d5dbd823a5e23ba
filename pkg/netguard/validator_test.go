package netguard

import (
	"context"
	"net/netip"
	"strings"
	"testing"

	"github.com/RuvinSL/alt-audit/pkg/config"
	"github.com/RuvinSL/alt-audit/pkg/logger"
	"github.com/RuvinSL/alt-audit/pkg/metrics"
	"github.com/RuvinSL/alt-audit/pkg/mocks"
	"github.com/RuvinSL/alt-audit/pkg/scanerr"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var publicAddr = netip.MustParseAddr("93.184.216.34")

func newTestValidator(t *testing.T, resolver *mocks.MockResolver) *Validator {
	t.Helper()
	return NewValidator(newDefaultPolicy(t), resolver, logger.Discard(), metrics.Noop{})
}

func TestValidator_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		message string
	}{
		{name: "empty", url: "", message: "URL must be a non-empty string"},
		{name: "whitespace only", url: "   ", message: "URL must be a non-empty string"},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", 2040), message: "URL exceeds maximum length of 2048 characters"},
		{name: "unparseable", url: "http://exa mple.com/%zz", message: "invalid URL format"},
		{name: "file scheme", url: "file:///etc/passwd", message: "protocol 'file' is not allowed"},
		{name: "gopher scheme", url: "gopher://example.com:70/_GET", message: "protocol 'gopher' is not allowed"},
		{name: "ldap scheme", url: "LDAP://example.com/", message: "protocol 'ldap' is not allowed"},
		{name: "javascript scheme", url: "javascript:alert(1)", message: "only HTTP and HTTPS protocols are allowed"},
		{name: "no scheme", url: "example.com/page", message: "only HTTP and HTTPS protocols are allowed"},
		{name: "missing host", url: "http:///path", message: "URL must have a valid hostname"},
		{name: "single label host", url: "http://intranet/", message: "invalid hostname format"},
		{name: "decimal ip host", url: "http://2130706433/", message: "invalid hostname format"},
		{name: "underscore host", url: "http://exa_mple.com/", message: "invalid hostname format"},
		{name: "leading hyphen", url: "http://-example.com/", message: "invalid hostname format"},
		{name: "trailing dot", url: "http://example.com./", message: "invalid hostname format"},
		{name: "userinfo", url: "http://user@example.com/", message: "URL contains suspicious patterns"},
		{name: "fragment", url: "https://example.com/page#top", message: "URL contains suspicious patterns"},
		{name: "javascript in query", url: "https://example.com/?next=JavaScript:alert(1)", message: "URL contains suspicious patterns"},
		{name: "data in path", url: "https://example.com/data:text/html", message: "URL contains suspicious patterns"},
		{name: "zoned link-local literal", url: "http://[fe80::1%25eth0]/", message: "IPv6 zone identifiers are not allowed"},
		{name: "zoned public literal", url: "http://[2606:2800:220:1::1%25eth0]:8080/", message: "IPv6 zone identifiers are not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// no EXPECT: syntactic rejections must never reach DNS
			resolver := mocks.NewMockResolver(ctrl)

			validated, err := newTestValidator(t, resolver).Validate(context.Background(), tt.url)

			require.Error(t, err)
			assert.True(t, validated.IsZero())
			assert.True(t, scanerr.IsKind(err, scanerr.KindValidation), "got %s", scanerr.KindOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidator_SecurityErrors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setupMocks func(*mocks.MockResolver)
		message    string
	}{
		{
			name:    "localhost",
			url:     "http://localhost:8080/admin",
			message: "domain 'localhost' is blocked",
		},
		{
			name:    "blocked host is case-insensitive",
			url:     "http://LocalHost/",
			message: "domain 'localhost' is blocked",
		},
		{
			name:    "metadata address",
			url:     "http://169.254.169.254/latest/meta-data/",
			message: "domain '169.254.169.254' is blocked",
		},
		{
			name:    "metadata hostname",
			url:     "http://metadata.google.internal/computeMetadata/v1/",
			message: "domain 'metadata.google.internal' is blocked",
		},
		{
			name:    "private ip literal",
			url:     "http://10.0.0.5/",
			message: "IP address '10.0.0.5' is not allowed",
		},
		{
			name:    "mapped loopback literal",
			url:     "http://[::ffff:127.0.0.1]/",
			message: "IP address '::ffff:127.0.0.1' is not allowed",
		},
		{
			name:    "link-local v6 literal",
			url:     "http://[fe80::1]:8080/",
			message: "IP address 'fe80::1' is not allowed",
		},
		{
			name: "resolves to private only",
			url:  "https://internal.example.com/",
			setupMocks: func(r *mocks.MockResolver) {
				r.EXPECT().Resolve(gomock.Any(), "internal.example.com").
					Return([]netip.Addr{netip.MustParseAddr("192.168.1.10")}, nil)
			},
			message: "resolved IP '192.168.1.10' is not allowed",
		},
		{
			name: "public decoy with private target",
			url:  "https://mixed.example.com/",
			setupMocks: func(r *mocks.MockResolver) {
				r.EXPECT().Resolve(gomock.Any(), "mixed.example.com").
					Return([]netip.Addr{publicAddr, netip.MustParseAddr("10.0.0.7")}, nil)
			},
			message: "resolved IP '10.0.0.7' is not allowed",
		},
		{
			name: "second family points inward",
			url:  "https://dual.example.com/",
			setupMocks: func(r *mocks.MockResolver) {
				r.EXPECT().Resolve(gomock.Any(), "dual.example.com").
					Return([]netip.Addr{publicAddr, netip.MustParseAddr("::1")}, nil)
			},
			message: "resolved IP '::1' is not allowed",
		},
		{
			name: "resolution failure",
			url:  "https://does-not-exist.example/",
			setupMocks: func(r *mocks.MockResolver) {
				r.EXPECT().Resolve(gomock.Any(), "does-not-exist.example").
					Return(nil, scanerr.Security("could not resolve hostname 'does-not-exist.example'"))
			},
			message: "could not resolve hostname 'does-not-exist.example'",
		},
		{
			name: "empty answer",
			url:  "https://empty.example/",
			setupMocks: func(r *mocks.MockResolver) {
				r.EXPECT().Resolve(gomock.Any(), "empty.example").Return(nil, nil)
			},
			message: "could not resolve hostname 'empty.example'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			resolver := mocks.NewMockResolver(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(resolver)
			}

			_, err := newTestValidator(t, resolver).Validate(context.Background(), tt.url)

			require.Error(t, err)
			assert.True(t, scanerr.IsKind(err, scanerr.KindSecurity), "got %s", scanerr.KindOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidator_Accepts(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setupMocks func(*mocks.MockResolver)
		canonical  string
		hostname   string
	}{
		{
			name: "plain https",
			url:  "https://example.com/path/page?q=1&lang=en",
			setupMocks: func(r *mocks.MockResolver) {
				r.EXPECT().Resolve(gomock.Any(), "example.com").Return([]netip.Addr{publicAddr}, nil)
			},
			canonical: "https://example.com/path/page?q=1&lang=en",
			hostname:  "example.com",
		},
		{
			name: "uppercase scheme and port",
			url:  "  HTTP://example.com:8080/a  ",
			setupMocks: func(r *mocks.MockResolver) {
				r.EXPECT().Resolve(gomock.Any(), "example.com").Return([]netip.Addr{publicAddr}, nil)
			},
			canonical: "http://example.com:8080/a",
			hostname:  "example.com",
		},
		{
			name: "internationalized hostname",
			url:  "https://bücher.example/katalog",
			setupMocks: func(r *mocks.MockResolver) {
				r.EXPECT().Resolve(gomock.Any(), "xn--bcher-kva.example").Return([]netip.Addr{publicAddr}, nil)
			},
			canonical: "https://xn--bcher-kva.example/katalog",
			hostname:  "xn--bcher-kva.example",
		},
		{
			name:      "public ip literal skips dns",
			url:       "http://93.184.216.34/index.html",
			canonical: "http://93.184.216.34/index.html",
			hostname:  "93.184.216.34",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			resolver := mocks.NewMockResolver(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(resolver)
			}

			validated, err := newTestValidator(t, resolver).Validate(context.Background(), tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.canonical, validated.String())
			assert.Equal(t, tt.hostname, validated.Hostname())
			assert.Equal(t, []netip.Addr{publicAddr}, validated.Addresses())
		})
	}
}

func TestValidator_LowercasesHost(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		resolves  string
		canonical string
		hostname  string
	}{
		{
			name:      "mixed case hostname",
			url:       "https://EXAMPLE.Com/Path",
			resolves:  "example.com",
			canonical: "https://example.com/Path",
			hostname:  "example.com",
		},
		{
			name:      "mixed case hostname with port",
			url:       "http://Docs.Example.COM:8080/a?Q=1",
			resolves:  "docs.example.com",
			canonical: "http://docs.example.com:8080/a?Q=1",
			hostname:  "docs.example.com",
		},
		{
			name:      "uppercase ipv6 literal",
			url:       "http://[2606:2800:220:1:248:1893:25C8:1946]/",
			canonical: "http://[2606:2800:220:1:248:1893:25c8:1946]/",
			hostname:  "2606:2800:220:1:248:1893:25c8:1946",
		},
		{
			name:      "uppercase ipv6 literal with port",
			url:       "https://[2606:2800:220:1:248:1893:25C8:1946]:8443/",
			canonical: "https://[2606:2800:220:1:248:1893:25c8:1946]:8443/",
			hostname:  "2606:2800:220:1:248:1893:25c8:1946",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			resolver := mocks.NewMockResolver(ctrl)
			if tt.resolves != "" {
				resolver.EXPECT().Resolve(gomock.Any(), tt.resolves).Return([]netip.Addr{publicAddr}, nil)
			}

			validated, err := newTestValidator(t, resolver).Validate(context.Background(), tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.canonical, validated.String())
			assert.Equal(t, tt.hostname, validated.Hostname())
			assert.Equal(t, tt.hostname, validated.URL().Hostname())
		})
	}
}

func TestValidator_CancelledDuringResolution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())

	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "slow.example.com").
		DoAndReturn(func(ctx context.Context, host string) ([]netip.Addr, error) {
			cancel()
			return nil, ctx.Err()
		})

	// no EXPECT: a cancelled scan is not a policy rejection
	metricsCollector := mocks.NewMockMetricsCollector(ctrl)

	validator := NewValidator(newDefaultPolicy(t), resolver, logger.Discard(), metricsCollector)

	validated, err := validator.Validate(ctx, "https://slow.example.com/")

	require.Error(t, err)
	assert.True(t, validated.IsZero())
	assert.True(t, scanerr.IsKind(err, scanerr.KindScan), "got %s", scanerr.KindOf(err))
	assert.Equal(t, "scan cancelled", err.Error())
}

func TestValidator_CanonicalFormIsStable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "example.com").Return([]netip.Addr{publicAddr}, nil).Times(2)

	validator := newTestValidator(t, resolver)

	first, err := validator.Validate(context.Background(), "https://example.com/a%20b/c?x=1")
	require.NoError(t, err)

	second, err := validator.Validate(context.Background(), first.String())
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
}

func TestValidator_AllowedDomains(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	policy, err := NewPolicy(config.NetworkConfig{
		BlockedDomains: config.DefaultBlockedDomains,
		AllowedDomains: []string{"example.com"},
	})
	require.NoError(t, err)

	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "docs.example.com").Return([]netip.Addr{publicAddr}, nil)

	validator := NewValidator(policy, resolver, logger.Discard(), metrics.Noop{})

	_, err = validator.Validate(context.Background(), "https://docs.example.com/")
	assert.NoError(t, err)

	_, err = validator.Validate(context.Background(), "https://badexample.com/")
	require.Error(t, err)
	assert.True(t, scanerr.IsKind(err, scanerr.KindSecurity))
	assert.Equal(t, "domain 'badexample.com' is not in the allowed list", err.Error())
}

func TestValidator_RecordsRejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "rebind.example.com").
		Return([]netip.Addr{netip.MustParseAddr("127.0.0.1")}, nil)

	metricsCollector := mocks.NewMockMetricsCollector(ctrl)
	metricsCollector.EXPECT().RecordSecurityRejection("resolved_ip_blocked")

	validator := NewValidator(newDefaultPolicy(t), resolver, logger.Discard(), metricsCollector)

	_, err := validator.Validate(context.Background(), "http://rebind.example.com/")
	assert.True(t, scanerr.IsKind(err, scanerr.KindSecurity))
}
