package netguard

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"time"

	"github.com/RuvinSL/alt-audit/pkg/interfaces"
	"github.com/RuvinSL/alt-audit/pkg/scanerr"
)

// ipLookuper is satisfied by *net.Resolver
type ipLookuper interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// DNSResolver returns every A and AAAA answer for a host
type DNSResolver struct {
	lookup  ipLookuper
	timeout time.Duration
	logger  interfaces.Logger
}

// NewDNSResolver creates a resolver backed by the system resolver. A zero
// timeout leaves resolution bounded only by the caller's context.
func NewDNSResolver(timeout time.Duration, logger interfaces.Logger) *DNSResolver {
	return &DNSResolver{
		lookup:  net.DefaultResolver,
		timeout: timeout,
		logger:  logger,
	}
}

// Resolve looks up both address families. Any failure, including an empty
// answer, is a security error: a host we cannot classify is never fetched.
// Cancellation of the caller's context is reported as a scan error.
func (r *DNSResolver) Resolve(ctx context.Context, host string) ([]netip.Addr, error) {
	parent := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	addrs, err := r.lookup.LookupNetIP(ctx, "ip", host)
	if err != nil {
		r.logger.Debug("DNS resolution failed",
			"host", host,
			"error", err,
			"duration", time.Since(start),
		)
		if errors.Is(parent.Err(), context.Canceled) {
			return nil, scanerr.Wrap(scanerr.KindScan, err, "scan cancelled")
		}
		return nil, scanerr.Wrap(scanerr.KindSecurity, err, "could not resolve hostname '%s'", host)
	}

	if len(addrs) == 0 {
		return nil, scanerr.Security("could not resolve hostname '%s'", host)
	}

	r.logger.Debug("Hostname resolved",
		"host", host,
		"addresses", len(addrs),
		"duration", time.Since(start),
	)

	return addrs, nil
}

var _ interfaces.Resolver = (*DNSResolver)(nil)
