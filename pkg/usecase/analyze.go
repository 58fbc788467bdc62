package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/secmon-lab/guardian/pkg/domain/model/challenge"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
	"github.com/secmon-lab/guardian/pkg/service/parser"
	"github.com/secmon-lab/guardian/pkg/service/prompt"
	"github.com/secmon-lab/guardian/pkg/utils/clock"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
)

// MaxInputLength is the upper bound of an analyze input in bytes.
const MaxInputLength = 2048

// Analyze runs the full pipeline for one request: session gate, challenge
// verification when required, enrichment for URL input, inference, parsing
// and persistence.
func (u *UseCases) Analyze(ctx context.Context, req interfaces.AnalyzeRequest) (*analysis.Report, error) {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return nil, goerr.New("url is required", goerr.T(errs.TagValidation))
	}
	if len(input) > MaxInputLength {
		return nil, goerr.New("url is too long",
			goerr.T(errs.TagValidation),
			goerr.V("length", len(input)),
			goerr.V("max", MaxInputLength))
	}
	if err := req.SessionID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid session id", goerr.T(errs.TagValidation))
	}

	if !req.SessionID.Empty() {
		ctx = logging.With(ctx, logging.From(ctx).With("session_id", req.SessionID.String()))
	}

	isFirstQuery, err := u.checkSession(ctx, req)
	if err != nil {
		return nil, err
	}

	return u.Evaluate(ctx, analysis.ParseQuery(input), isFirstQuery, true)
}

// checkSession returns whether this request is the first verified query of
// its session. A nil error means the caller has passed the gate.
func (u *UseCases) checkSession(ctx context.Context, req interfaces.AnalyzeRequest) (bool, error) {
	if req.SessionID.Empty() {
		if err := u.verifyChallenge(ctx, req.VerificationToken); err != nil {
			return false, err
		}
		return false, nil
	}

	required, err := u.gate.RequiresChallenge(ctx, req.SessionID)
	if err != nil {
		return false, err
	}
	if !required {
		return false, nil
	}

	if err := u.verifyChallenge(ctx, req.VerificationToken); err != nil {
		return false, err
	}

	if err := u.gate.MarkVerified(ctx, req.SessionID); err != nil {
		logging.From(ctx).Warn("failed to mark session verified", "error", err)
	}

	return true, nil
}

func (u *UseCases) verifyChallenge(ctx context.Context, token string) error {
	if token == "" {
		return goerr.New("verification token is required", goerr.T(errs.TagValidation))
	}
	if u.challengeSecret == "" {
		return goerr.New("challenge secret is not configured", goerr.T(errs.TagMisconfigured))
	}

	verifyCtx, cancel := context.WithTimeout(ctx, u.config.VerifyTimeout)
	defer cancel()

	result := u.verifier.Verify(verifyCtx, token, u.challengeSecret)
	if result == nil {
		result = challenge.Failure(challenge.CodeVerificationError)
	}
	if !result.Success {
		logging.From(ctx).Warn("challenge verification failed", "error_codes", result.ErrorCodes)
		return goerr.Wrap(errs.ErrChallengeFailed, "challenge verification failed",
			goerr.T(errs.TagForbidden),
			goerr.V(errs.DetailsKey, result.ErrorCodes))
	}

	return nil
}

// Evaluate runs enrichment, inference, parsing and persistence for an
// already admitted query.
func (u *UseCases) Evaluate(ctx context.Context, query analysis.Query, isFirstQuery, verified bool) (*analysis.Report, error) {
	logger := logging.From(ctx)
	isURL := analysis.IsURL(query)

	var enrichment *analysis.Enrichment
	if isURL {
		enrichment = u.enricher.Enrich(ctx, query.Input())
	} else {
		enrichment = analysis.Placeholder(query.Input(), clock.Now(ctx))
	}

	systemPrompt, err := prompt.BuildSystemPrompt(enrichment, isURL, isFirstQuery)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build system prompt", goerr.T(errs.TagInternal))
	}

	reply, err := u.infer(ctx, systemPrompt, prompt.BuildUserPrompt(query))
	if err != nil {
		return nil, err
	}

	result := parser.Parse(reply, isURL)
	logger.Info("analysis completed",
		"kind", result.Kind,
		"verdict", result.Verdict,
		"first_query", isFirstQuery,
		"off_topic", result.IsOffTopic)

	now := clock.Now(ctx)
	entry := analysis.NewHistoryEntry(query, result, enrichment, verified, now)
	if err := u.history.Append(ctx, entry); err != nil {
		logger.Warn("failed to append history", "error", err)
	}

	return analysis.NewReport(query, result, enrichment, now), nil
}

func (u *UseCases) infer(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if u.llmClient == nil {
		return "", goerr.New("LLM client is not configured", goerr.T(errs.TagMisconfigured))
	}

	inferCtx, cancel := context.WithTimeout(ctx, u.config.InferenceTimeout)
	defer cancel()

	ssn, err := u.llmClient.NewSession(inferCtx, gollem.WithSessionSystemPrompt(systemPrompt))
	if err != nil {
		return "", classifyLLMError(inferCtx, err, "failed to create LLM session")
	}

	resp, err := ssn.GenerateContent(inferCtx, gollem.Text(userPrompt))
	if err != nil {
		return "", classifyLLMError(inferCtx, err, "failed to generate content")
	}

	if resp == nil {
		return "", nil
	}
	return strings.Join(resp.Texts, "\n"), nil
}

func classifyLLMError(ctx context.Context, err error, msg string) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return goerr.Wrap(err, msg, goerr.T(errs.TagTimeout), goerr.T(errs.TagLLMError))
	}
	return goerr.Wrap(err, msg, goerr.T(errs.TagExternal), goerr.T(errs.TagLLMError))
}
