package analysis

import "time"

// Result is the structured verdict extracted from a model reply.
type Result struct {
	Verdict      Verdict `json:"verdict"`
	Reason       string  `json:"reason"`
	NextSteps    string  `json:"nextSteps"`
	Kind         Kind    `json:"kind"`
	IsOffTopic   bool    `json:"isOffTopic"`
	RawModelText string  `json:"-"`
}

// Report is the response returned for one analyze request.
type Report struct {
	Kind              Kind               `json:"kind"`
	Verdict           Verdict            `json:"verdict"`
	Reason            string             `json:"reason"`
	NextSteps         string             `json:"nextSteps"`
	IsOffTopic        bool               `json:"isOffTopic"`
	EnrichmentSummary *EnrichmentSummary `json:"enrichmentSummary"`
	Timestamp         time.Time          `json:"timestamp"`
}

// NewReport assembles the response. The enrichment summary is only exposed
// for URL queries.
func NewReport(q Query, result *Result, enrichment *Enrichment, now time.Time) *Report {
	report := &Report{
		Kind:       result.Kind,
		Verdict:    result.Verdict,
		Reason:     result.Reason,
		NextSteps:  result.NextSteps,
		IsOffTopic: result.IsOffTopic,
		Timestamp:  now,
	}
	if report.Kind == "" {
		report.Kind = q.Kind()
	}
	if IsURL(q) && enrichment != nil {
		summary := enrichment.Summary()
		summary.Hostname = ""
		report.EnrichmentSummary = &summary
	}
	return report
}
