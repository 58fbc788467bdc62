package parser

import (
	"regexp"
	"strings"

	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
)

const (
	DefaultOffTopicReason    = "This question is outside my expertise. I focus on internet security and URL safety."
	DefaultOffTopicNextSteps = "Please ask me about URLs, phishing, malware, or other internet security topics."
	DefaultExplanation       = "Unable to determine safety status"
	DefaultNextSteps         = "No recommendations available"
	DefaultSafetyTip         = "Stay vigilant about internet security!"
)

// rule extracts a value from the first submatch of pattern. A rule with a
// fixed value yields it on any match.
type rule struct {
	pattern *regexp.Regexp
	value   string
}

func (x rule) apply(raw string) (string, bool) {
	m := x.pattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	if x.value != "" {
		return x.value, true
	}
	if len(m) < 2 {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

// field is an ordered rule list; the first rule that yields a value wins.
type field struct {
	rules    []rule
	fallback func(raw string) string
}

func (x field) resolve(raw string) (string, bool) {
	for _, r := range x.rules {
		if v, ok := r.apply(raw); ok {
			return v, true
		}
	}
	if x.fallback != nil {
		return x.fallback(raw), false
	}
	return "", false
}

func constant(s string) func(string) string {
	return func(string) string { return s }
}

var (
	offTopicMarker = regexp.MustCompile(`(?i)TYPE:\s*OFF_TOPIC`)

	offTopicReason = field{
		rules:    []rule{{pattern: regexp.MustCompile(`(?i)RESPONSE:\s*(.+?)(?:\n|$)`)}},
		fallback: constant(DefaultOffTopicReason),
	}

	greeting = field{
		rules: []rule{{pattern: regexp.MustCompile(`(?i)GREETING:\s*(.+?)(?:\n|$)`)}},
	}

	verdict = field{
		rules: []rule{
			{pattern: regexp.MustCompile(`(?i)VERDICT:\s*(SAFE|SUSPICIOUS|RISKY)`)},
			{pattern: regexp.MustCompile(`(?i)\bSAFE\b`), value: string(analysis.VerdictSafe)},
			{pattern: regexp.MustCompile(`(?i)\bRISKY\b`), value: string(analysis.VerdictRisky)},
			{pattern: regexp.MustCompile(`(?i)\bSUSPICIOUS\b`), value: string(analysis.VerdictSuspicious)},
		},
		fallback: constant(string(analysis.VerdictUnknown)),
	}

	explanation = field{
		rules:    []rule{{pattern: regexp.MustCompile(`(?is)EXPLANATION:\s*(.+?)(?:NEXT_STEPS:|$)`)}},
		fallback: constant(DefaultExplanation),
	}

	nextSteps = field{
		rules:    []rule{{pattern: regexp.MustCompile(`(?i)NEXT_STEPS:\s*(.+?)(?:\n|$)`)}},
		fallback: constant(DefaultNextSteps),
	}

	answer = field{
		rules:    []rule{{pattern: regexp.MustCompile(`(?is)ANSWER:\s*(.+?)(?:SAFETY_TIP:|$)`)}},
		fallback: strings.TrimSpace,
	}

	safetyTip = field{
		rules:    []rule{{pattern: regexp.MustCompile(`(?i)SAFETY_TIP:\s*(.+?)(?:\n|$)`)}},
		fallback: constant(DefaultSafetyTip),
	}
)

// Parse turns a model reply into a Result. It never fails; unmatched fields
// resolve to their defaults.
func Parse(raw string, isURL bool) *analysis.Result {
	kind := analysis.KindGeneralQuery
	if isURL {
		kind = analysis.KindURLAnalysis
	}

	if offTopicMarker.MatchString(raw) {
		reason, _ := offTopicReason.resolve(raw)
		return &analysis.Result{
			Verdict:      analysis.VerdictOffTopic,
			Reason:       reason,
			NextSteps:    DefaultOffTopicNextSteps,
			Kind:         kind,
			IsOffTopic:   true,
			RawModelText: raw,
		}
	}

	result := &analysis.Result{
		Kind:         kind,
		RawModelText: raw,
	}

	if isURL {
		v, _ := verdict.resolve(raw)
		result.Verdict = analysis.ParseVerdict(v)
		result.Reason, _ = explanation.resolve(raw)
		result.NextSteps, _ = nextSteps.resolve(raw)
	} else {
		result.Verdict = analysis.VerdictQuestionAnswered
		result.Reason, _ = answer.resolve(raw)
		result.NextSteps, _ = safetyTip.resolve(raw)
	}

	if g, ok := greeting.resolve(raw); ok {
		result.Reason = g + "\n\n" + result.Reason
	}

	return result
}
