package models

import (
	"net/netip"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatedURL_String(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"host only", "https://example.com", "https://example.com"},
		{"path and query", "https://example.com/a/b?x=1&y=2", "https://example.com/a/b?x=1&y=2"},
		{"port kept", "http://example.com:8080/index.html", "http://example.com:8080/index.html"},
		{"fragment stripped", "https://example.com/page#top", "https://example.com/page"},
		{"escaped path kept", "https://example.com/a%20b", "https://example.com/a%20b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.raw)
			require.NoError(t, err)

			v := NewValidatedURL(u, nil)
			assert.Equal(t, tt.expected, v.String())
		})
	}
}

func TestValidatedURL_IsCopy(t *testing.T) {
	u, err := url.Parse("https://example.com/path")
	require.NoError(t, err)
	addrs := []netip.Addr{netip.MustParseAddr("93.184.216.34")}

	v := NewValidatedURL(u, addrs)

	// Mutating the inputs or the returned values must not change v
	u.Host = "evil.example.net"
	addrs[0] = netip.MustParseAddr("10.0.0.1")
	v.URL().Path = "/changed"
	v.Addresses()[0] = netip.MustParseAddr("127.0.0.1")

	assert.Equal(t, "https://example.com/path", v.String())
	assert.Equal(t, "example.com", v.Hostname())
	assert.Equal(t, []netip.Addr{netip.MustParseAddr("93.184.216.34")}, v.Addresses())
}

func TestValidatedURL_IsZero(t *testing.T) {
	assert.True(t, ValidatedURL{}.IsZero())

	u, _ := url.Parse("http://example.com")
	assert.False(t, NewValidatedURL(u, nil).IsZero())
}
