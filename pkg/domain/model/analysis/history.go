package analysis

import "time"

// HistoryEntry is one record of the rolling analysis log.
type HistoryEntry struct {
	URL               string            `json:"url"`
	Verdict           Verdict           `json:"verdict"`
	Reason            string            `json:"reason"`
	NextSteps         string            `json:"nextSteps"`
	Timestamp         time.Time         `json:"timestamp"`
	Verified          bool              `json:"verified"`
	EnrichmentSummary EnrichmentSummary `json:"enrichmentSummary"`
}

func NewHistoryEntry(q Query, result *Result, enrichment *Enrichment, verified bool, now time.Time) HistoryEntry {
	return HistoryEntry{
		URL:               q.Input(),
		Verdict:           result.Verdict,
		Reason:            result.Reason,
		NextSteps:         result.NextSteps,
		Timestamp:         now,
		Verified:          verified,
		EnrichmentSummary: enrichment.Summary(),
	}
}
