package enrich

import (
	"context"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/utils/safe"
)

const (
	maxRedirects = 10
	probeDrain   = 4 * 1024
)

var errBlockedAddress = goerr.New("destination address is not allowed")

type probeResult struct {
	StatusCode int
	Header     http.Header
}

// newProbeClient builds the HEAD probe client. Unless allowPrivate is set,
// connections to loopback, private, link-local and unspecified addresses are
// refused after DNS resolution.
func newProbeClient(timeout time.Duration, allowPrivate bool) *http.Client {
	dialer := &net.Dialer{
		Timeout: timeout,
	}
	if !allowPrivate {
		dialer.Control = guardAddress
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return goerr.New("too many redirects", goerr.V("count", len(via)))
			}
			return nil
		},
	}
}

func guardAddress(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return goerr.Wrap(err, "invalid dial address", goerr.V("address", address))
	}
	ip := net.ParseIP(host)
	if ip == nil || isBlockedIP(ip) {
		return goerr.Wrap(errBlockedAddress, "refused to dial", goerr.V("address", address))
	}
	return nil
}

func isBlockedIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified()
}

func probe(ctx context.Context, client *http.Client, rawURL string) (*probeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create probe request", goerr.V("url", rawURL))
	}
	req.Header.Set("User-Agent", "guardian-probe/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "probe request failed", goerr.V("url", rawURL))
	}
	defer safe.Close(ctx, resp.Body)
	safe.Drain(ctx, resp.Body, probeDrain)

	return &probeResult{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}, nil
}
