package parser_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/secmon-lab/guardian/pkg/service/parser"
)

func TestParseURL(t *testing.T) {
	t.Run("tagged reply", func(t *testing.T) {
		raw := "VERDICT: RISKY\nEXPLANATION: known phishing kit.\nNEXT_STEPS: Do not enter credentials; report the domain."
		result := parser.Parse(raw, true)

		gt.Equal(t, result.Verdict, analysis.VerdictRisky)
		gt.Equal(t, result.Reason, "known phishing kit.")
		gt.Equal(t, result.NextSteps, "Do not enter credentials; report the domain.")
		gt.Equal(t, result.Kind, analysis.KindURLAnalysis)
		gt.False(t, result.IsOffTopic)
		gt.Equal(t, result.RawModelText, raw)
	})

	t.Run("case insensitive tags", func(t *testing.T) {
		result := parser.Parse("verdict: safe\nexplanation: fine.\nnext_steps: none; really", true)
		gt.Equal(t, result.Verdict, analysis.VerdictSafe)
		gt.Equal(t, result.Reason, "fine.")
		gt.Equal(t, result.NextSteps, "none; really")
	})

	t.Run("multi-line explanation", func(t *testing.T) {
		raw := "VERDICT: SUSPICIOUS\nEXPLANATION: The domain is new.\nIt imitates a bank.\nNEXT_STEPS: Verify the URL; avoid logging in."
		result := parser.Parse(raw, true)
		gt.Equal(t, result.Verdict, analysis.VerdictSuspicious)
		gt.Equal(t, result.Reason, "The domain is new.\nIt imitates a bank.")
	})

	t.Run("explanation runs to end of text", func(t *testing.T) {
		result := parser.Parse("VERDICT: SAFE\nEXPLANATION: all good\nmore text", true)
		gt.Equal(t, result.Reason, "all good\nmore text")
		gt.Equal(t, result.NextSteps, parser.DefaultNextSteps)
	})

	t.Run("whole word fallback priority", func(t *testing.T) {
		gt.Equal(t, parser.Parse("This looks risky but also safe.", true).Verdict, analysis.VerdictSafe)
		gt.Equal(t, parser.Parse("This looks suspicious and risky.", true).Verdict, analysis.VerdictRisky)
		gt.Equal(t, parser.Parse("Somewhat Suspicious.", true).Verdict, analysis.VerdictSuspicious)
	})

	t.Run("partial words do not match", func(t *testing.T) {
		gt.Equal(t, parser.Parse("This site is unsafe.", true).Verdict, analysis.VerdictUnknown)
	})

	t.Run("nothing matches", func(t *testing.T) {
		result := parser.Parse("I cannot help with that.", true)
		gt.Equal(t, result.Verdict, analysis.VerdictUnknown)
		gt.Equal(t, result.Reason, parser.DefaultExplanation)
		gt.Equal(t, result.NextSteps, parser.DefaultNextSteps)
	})

	t.Run("empty reply", func(t *testing.T) {
		result := parser.Parse("", true)
		gt.Equal(t, result.Verdict, analysis.VerdictUnknown)
		gt.Equal(t, result.Reason, parser.DefaultExplanation)
	})

	t.Run("greeting is prepended", func(t *testing.T) {
		raw := "GREETING: Welcome to Internet Guardian!\nVERDICT: SAFE\nEXPLANATION: Looks fine.\nNEXT_STEPS: Stay alert; keep software updated."
		result := parser.Parse(raw, true)
		gt.Equal(t, result.Reason, "Welcome to Internet Guardian!\n\nLooks fine.")
		gt.Equal(t, result.Verdict, analysis.VerdictSafe)
	})
}

func TestParseQuestion(t *testing.T) {
	t.Run("tagged reply", func(t *testing.T) {
		raw := "ANSWER: Phishing is a scam that tricks you into giving up credentials.\nSAFETY_TIP: Check the sender address."
		result := parser.Parse(raw, false)

		gt.Equal(t, result.Verdict, analysis.VerdictQuestionAnswered)
		gt.Equal(t, result.Reason, "Phishing is a scam that tricks you into giving up credentials.")
		gt.Equal(t, result.NextSteps, "Check the sender address.")
		gt.Equal(t, result.Kind, analysis.KindGeneralQuery)
	})

	t.Run("untagged reply uses whole text", func(t *testing.T) {
		result := parser.Parse("  Use a password manager.  ", false)
		gt.Equal(t, result.Reason, "Use a password manager.")
		gt.Equal(t, result.NextSteps, parser.DefaultSafetyTip)
	})

	t.Run("verdict words do not leak into answers", func(t *testing.T) {
		result := parser.Parse("ANSWER: It is SAFE to use HTTPS.", false)
		gt.Equal(t, result.Verdict, analysis.VerdictQuestionAnswered)
	})
}

func TestParseOffTopic(t *testing.T) {
	t.Run("takes precedence over other tags", func(t *testing.T) {
		raw := "VERDICT: SAFE\nTYPE: OFF_TOPIC\nRESPONSE: I only cover internet security.\nEXPLANATION: ignored"
		result := parser.Parse(raw, true)

		gt.Equal(t, result.Verdict, analysis.VerdictOffTopic)
		gt.True(t, result.IsOffTopic)
		gt.Equal(t, result.Reason, "I only cover internet security.")
		gt.Equal(t, result.NextSteps, parser.DefaultOffTopicNextSteps)
		gt.Equal(t, result.Kind, analysis.KindURLAnalysis)
	})

	t.Run("missing response uses default", func(t *testing.T) {
		result := parser.Parse("type: off_topic", false)
		gt.Equal(t, result.Verdict, analysis.VerdictOffTopic)
		gt.Equal(t, result.Reason, parser.DefaultOffTopicReason)
		gt.Equal(t, result.Kind, analysis.KindGeneralQuery)
	})

	t.Run("greeting is not applied", func(t *testing.T) {
		result := parser.Parse("GREETING: Hi\nTYPE: OFF_TOPIC\nRESPONSE: Not my area.", false)
		gt.Equal(t, result.Reason, "Not my area.")
	})
}
