package analysis

import "strings"

type Verdict string

const (
	VerdictSafe             Verdict = "SAFE"
	VerdictSuspicious       Verdict = "SUSPICIOUS"
	VerdictRisky            Verdict = "RISKY"
	VerdictUnknown          Verdict = "UNKNOWN"
	VerdictOffTopic         Verdict = "OFF_TOPIC"
	VerdictQuestionAnswered Verdict = "QUESTION_ANSWERED"
)

var verdicts = []Verdict{
	VerdictSafe,
	VerdictSuspicious,
	VerdictRisky,
	VerdictUnknown,
	VerdictOffTopic,
	VerdictQuestionAnswered,
}

func (x Verdict) String() string {
	return string(x)
}

// ParseVerdict maps s case-insensitively onto the closed verdict set. Anything
// else is VerdictUnknown.
func ParseVerdict(s string) Verdict {
	v := Verdict(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range verdicts {
		if v == known {
			return v
		}
	}
	return VerdictUnknown
}

type Kind string

const (
	KindURLAnalysis  Kind = "URL_ANALYSIS"
	KindGeneralQuery Kind = "GENERAL_QUERY"
)

func (x Kind) String() string {
	return string(x)
}
