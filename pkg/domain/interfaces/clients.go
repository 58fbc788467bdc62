package interfaces

import (
	"context"

	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/secmon-lab/guardian/pkg/domain/model/challenge"
)

// ChallengeVerifier validates a human verification token. Verification
// problems are reported in the result, never as an error.
type ChallengeVerifier interface {
	Verify(ctx context.Context, token, secret string) *challenge.Result
}

// DomainIntel is an optional external lookup keyed by hostname.
type DomainIntel interface {
	Name() string
	Lookup(ctx context.Context, hostname string) (map[string]any, error)
}

// Enricher collects security signals for a URL. It never fails.
type Enricher interface {
	Enrich(ctx context.Context, rawURL string) *analysis.Enrichment
}
