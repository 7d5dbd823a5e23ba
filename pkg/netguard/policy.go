package netguard

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/RuvinSL/alt-audit/pkg/config"
	"github.com/RuvinSL/alt-audit/pkg/interfaces"
)

// reservedRanges are denied in addition to what netip classifies as
// loopback, private, link-local, multicast or unspecified.
var reservedRanges = mustPrefixes(
	"0.0.0.0/8",          // "this" network
	"100.64.0.0/10",      // carrier-grade NAT
	"192.0.0.0/24",       // IETF protocol assignments
	"192.0.2.0/24",       // TEST-NET-1
	"198.18.0.0/15",      // benchmarking
	"198.51.100.0/24",    // TEST-NET-2
	"203.0.113.0/24",     // TEST-NET-3
	"240.0.0.0/4",        // reserved
	"255.255.255.255/32", // broadcast
	"64:ff9b::/96",       // NAT64, can embed internal IPv4
	"2001:db8::/32",      // documentation
	"fc00::/7",           // unique local
	"fe80::/10",          // link-local
)

func mustPrefixes(cidrs ...string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, cidr := range cidrs {
		prefixes = append(prefixes, netip.MustParsePrefix(cidr))
	}
	return prefixes
}

// Policy is the network policy shared by the validator and the fetcher's
// dial guard. It is immutable after NewPolicy returns.
type Policy struct {
	blockedRanges  []netip.Prefix
	blockedHosts   map[string]struct{}
	allowedDomains []string
}

// NewPolicy builds a policy from configuration. Blocked-domain entries that
// parse as CIDR ranges are folded into the blocked ranges.
func NewPolicy(cfg config.NetworkConfig) (*Policy, error) {
	p := &Policy{
		blockedRanges: append([]netip.Prefix(nil), reservedRanges...),
		blockedHosts:  make(map[string]struct{}, len(cfg.BlockedDomains)),
	}

	for _, entry := range cfg.BlockedDomains {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			p.blockedRanges = append(p.blockedRanges, prefix.Masked())
			continue
		}
		p.blockedHosts[strings.Trim(entry, "[]")] = struct{}{}
	}

	for _, cidr := range cfg.BlockedCIDRs {
		prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("invalid blocked CIDR %q: %w", cidr, err)
		}
		p.blockedRanges = append(p.blockedRanges, prefix.Masked())
	}

	for _, domain := range cfg.AllowedDomains {
		domain = strings.Trim(strings.ToLower(strings.TrimSpace(domain)), ".")
		if domain != "" {
			p.allowedDomains = append(p.allowedDomains, domain)
		}
	}

	return p, nil
}

// IsAllowed reports whether addr may be contacted. It never fails: any
// address it cannot positively place in public unicast space is denied.
func (p *Policy) IsAllowed(addr netip.Addr) bool {
	if !addr.IsValid() {
		return false
	}

	// ::ffff:127.0.0.1 must be judged as 127.0.0.1
	addr = addr.Unmap().WithZone("")

	if addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() ||
		addr.IsMulticast() ||
		addr.IsUnspecified() {
		return false
	}

	for _, prefix := range p.blockedRanges {
		if prefix.Contains(addr) {
			return false
		}
	}

	return true
}

// IsBlockedHost reports an exact, case-insensitive match against the
// blocked-hosts list.
func (p *Policy) IsBlockedHost(host string) bool {
	_, blocked := p.blockedHosts[strings.ToLower(strings.Trim(host, "[]"))]
	return blocked
}

// IsDomainAllowed reports whether host falls under the allowlist. An empty
// allowlist permits every domain. A match is the domain itself or any
// subdomain of it, so "example.com" does not admit "badexample.com".
func (p *Policy) IsDomainAllowed(host string) bool {
	if len(p.allowedDomains) == 0 {
		return true
	}

	host = strings.TrimSuffix(strings.ToLower(host), ".")
	for _, domain := range p.allowedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

var _ interfaces.NetworkPolicy = (*Policy)(nil)
