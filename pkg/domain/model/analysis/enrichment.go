package analysis

import (
	"net/url"
	"time"
)

// Security header keys stored in Enrichment.SecurityHeaders.
const (
	HeaderKeyCSP           = "csp"
	HeaderKeyXFrameOptions = "x_frame_options"
)

// Enrichment is the set of externally observable signals collected for a URL.
// It is computed per request and only persisted as an EnrichmentSummary.
type Enrichment struct {
	URL              string            `json:"url"`
	Hostname         string            `json:"hostname"`
	HTTPS            bool              `json:"https"`
	TLSVerified      bool              `json:"tlsVerified"`
	HSTSPresent      bool              `json:"hstsPresent"`
	SecurityHeaders  map[string]string `json:"securityHeaders"`
	IsCloudflareLike bool              `json:"isCloudflareLike"`
	// DNSResolvable mirrors TLSVerified. A successful probe implies the name
	// resolved; no separate DNS lookup is made.
	DNSResolvable bool           `json:"dnsResolvable"`
	ExternalIntel map[string]any `json:"externalIntel"`
	Timestamp     time.Time      `json:"timestamp"`
}

// NewEnrichment returns a record with every probe derived field at its
// fallback value. Hostname is "" when rawURL does not parse.
func NewEnrichment(rawURL string, now time.Time) *Enrichment {
	return &Enrichment{
		URL:             rawURL,
		Hostname:        Hostname(rawURL),
		SecurityHeaders: map[string]string{},
		Timestamp:       now,
	}
}

// Placeholder is the record used for non URL input.
func Placeholder(input string, now time.Time) *Enrichment {
	return &Enrichment{
		URL:             input,
		SecurityHeaders: map[string]string{},
		Timestamp:       now,
	}
}

// Hostname extracts the host name of rawURL, or "" on failure.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// EnrichmentSummary is the subset of Enrichment kept in history and returned
// to callers.
type EnrichmentSummary struct {
	Hostname         string `json:"hostname,omitempty"`
	HTTPS            bool   `json:"https"`
	HSTSPresent      bool   `json:"hstsPresent"`
	IsCloudflareLike bool   `json:"isCloudflareLike"`
}

func (x *Enrichment) Summary() EnrichmentSummary {
	if x == nil {
		return EnrichmentSummary{}
	}
	return EnrichmentSummary{
		Hostname:         x.Hostname,
		HTTPS:            x.HTTPS,
		HSTSPresent:      x.HSTSPresent,
		IsCloudflareLike: x.IsCloudflareLike,
	}
}
