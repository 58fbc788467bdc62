package enrich

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/secmon-lab/guardian/pkg/utils/clock"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultProbeTimeout = 5 * time.Second
	DefaultIntelTimeout = 5 * time.Second
	maxCSPLength        = 100
)

// Enricher collects externally observable security signals for a URL.
type Enricher struct {
	probeTimeout time.Duration
	intelTimeout time.Duration
	allowPrivate bool
	fingerprints Fingerprints
	intel        []interfaces.DomainIntel
	client       *http.Client
}

var _ interfaces.Enricher = &Enricher{}

type Option func(*Enricher)

func WithProbeTimeout(d time.Duration) Option {
	return func(x *Enricher) {
		if d > 0 {
			x.probeTimeout = d
		}
	}
}

func WithIntelTimeout(d time.Duration) Option {
	return func(x *Enricher) {
		if d > 0 {
			x.intelTimeout = d
		}
	}
}

// WithAllowPrivate disables the private address guard of the probe client.
func WithAllowPrivate(allow bool) Option {
	return func(x *Enricher) {
		x.allowPrivate = allow
	}
}

func WithFingerprints(fps Fingerprints) Option {
	return func(x *Enricher) {
		x.fingerprints = fps
	}
}

func WithIntel(sources ...interfaces.DomainIntel) Option {
	return func(x *Enricher) {
		x.intel = append(x.intel, sources...)
	}
}

func New(opts ...Option) *Enricher {
	x := &Enricher{
		probeTimeout: DefaultProbeTimeout,
		intelTimeout: DefaultIntelTimeout,
		fingerprints: DefaultFingerprints(),
	}
	for _, opt := range opts {
		opt(x)
	}
	x.client = newProbeClient(x.probeTimeout, x.allowPrivate)
	return x
}

// Enrich never fails. Every signal that cannot be observed keeps its
// fallback value.
func (x *Enricher) Enrich(ctx context.Context, rawURL string) *analysis.Enrichment {
	logger := logging.From(ctx)
	result := analysis.NewEnrichment(rawURL, clock.Now(ctx))

	if u, err := url.Parse(rawURL); err == nil {
		result.HTTPS = strings.EqualFold(u.Scheme, "https")
	}

	var (
		probed *probeResult
		intel  map[string]any
	)

	var eg errgroup.Group
	eg.Go(func() error {
		probeCtx, cancel := context.WithTimeout(ctx, x.probeTimeout)
		defer cancel()

		resp, err := probe(probeCtx, x.client, rawURL)
		if err != nil {
			logger.Debug("probe failed", "url", rawURL, "error", err)
			return nil
		}
		probed = resp
		return nil
	})
	if result.Hostname != "" && len(x.intel) > 0 {
		eg.Go(func() error {
			intel = x.lookupIntel(ctx, result.Hostname)
			return nil
		})
	}
	_ = eg.Wait()

	if probed != nil {
		applyProbe(result, probed, x.fingerprints)
	}
	result.DNSResolvable = result.TLSVerified
	result.ExternalIntel = intel

	return result
}

func applyProbe(result *analysis.Enrichment, probed *probeResult, fps Fingerprints) {
	result.TLSVerified = probed.StatusCode < 500
	result.IsCloudflareLike = fps.Match(probed.Header)
	result.HSTSPresent = probed.Header.Get("Strict-Transport-Security") != ""

	if csp := probed.Header.Get("Content-Security-Policy"); csp != "" {
		if len(csp) > maxCSPLength {
			csp = csp[:maxCSPLength]
		}
		result.SecurityHeaders[analysis.HeaderKeyCSP] = csp
	}
	if xfo := probed.Header.Get("X-Frame-Options"); xfo != "" {
		result.SecurityHeaders[analysis.HeaderKeyXFrameOptions] = xfo
	}
}

func (x *Enricher) lookupIntel(ctx context.Context, hostname string) map[string]any {
	var (
		mu     sync.Mutex
		merged = map[string]any{}
		eg     errgroup.Group
	)

	for _, src := range x.intel {
		eg.Go(func() error {
			intelCtx, cancel := context.WithTimeout(ctx, x.intelTimeout)
			defer cancel()

			resp, err := src.Lookup(intelCtx, hostname)
			if err != nil {
				logging.From(ctx).Warn("domain intel lookup failed",
					"source", src.Name(),
					"hostname", hostname,
					"error", err)
				return nil
			}
			if len(resp) == 0 {
				return nil
			}

			mu.Lock()
			merged[src.Name()] = resp
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	if len(merged) == 0 {
		return nil
	}
	return merged
}
