package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	gollem_mock "github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/guardian/pkg/controller/http"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/domain/mock"
	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/secmon-lab/guardian/pkg/domain/model/challenge"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
	"github.com/secmon-lab/guardian/pkg/repository"
	"github.com/secmon-lab/guardian/pkg/usecase"
)

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
	return body
}

func newServer(reply string, verify func(ctx context.Context, token, secret string) *challenge.Result) *server.Server {
	llm := &gollem_mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &gollem_mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{reply}}, nil
				},
			}, nil
		},
	}
	enricher := &mock.EnricherMock{
		EnrichFunc: func(ctx context.Context, rawURL string) *analysis.Enrichment {
			e := analysis.NewEnrichment(rawURL, time.Now())
			e.HTTPS = true
			e.IsCloudflareLike = true
			return e
		},
	}

	uc := usecase.New(
		usecase.WithLLMClient(llm),
		usecase.WithVerifier(&mock.ChallengeVerifierMock{VerifyFunc: verify}),
		usecase.WithChallengeSecret("secret"),
		usecase.WithEnricher(enricher),
		usecase.WithKVStore(repository.NewMemory()),
	)
	return server.New(uc)
}

func passVerify(ctx context.Context, token, secret string) *challenge.Result {
	return &challenge.Result{Success: true}
}

func TestAnalyzeEndpoint(t *testing.T) {
	const reply = "VERDICT: RISKY\nEXPLANATION: known phishing kit.\nNEXT_STEPS: Do not enter credentials; report the domain."

	t.Run("url analysis", func(t *testing.T) {
		srv := newServer(reply, passVerify)
		rec := doRequest(t, srv, http.MethodPost, "/analyze",
			`{"url":"https://login-paypa1.example","verificationToken":"tok","sessionId":"s1"}`)

		gt.Equal(t, rec.Code, http.StatusOK)
		gt.Equal(t, rec.Header().Get("Content-Type"), "application/json")
		body := decodeBody(t, rec)
		gt.Value(t, body["kind"]).Equal("URL_ANALYSIS")
		gt.Value(t, body["verdict"]).Equal("RISKY")
		gt.Value(t, body["reason"]).Equal("known phishing kit.")
		gt.Value(t, body["nextSteps"]).Equal("Do not enter credentials; report the domain.")
		gt.Value(t, body["isOffTopic"]).Equal(false)
		gt.Value(t, body["enrichmentSummary"]).Equal(map[string]any{
			"https":            true,
			"hstsPresent":      false,
			"isCloudflareLike": true,
		})
		gt.NotNil(t, body["timestamp"])
	})

	t.Run("question has null enrichment summary", func(t *testing.T) {
		srv := newServer("ANSWER: Use MFA.\nSAFETY_TIP: Rotate passwords.", passVerify)
		rec := doRequest(t, srv, http.MethodPost, "/api/analyze",
			`{"url":"how do I stay safe?","verificationToken":"tok","sessionId":"s1"}`)

		gt.Equal(t, rec.Code, http.StatusOK)
		body := decodeBody(t, rec)
		gt.Value(t, body["kind"]).Equal("GENERAL_QUERY")
		gt.Value(t, body["verdict"]).Equal("QUESTION_ANSWERED")
		gt.Nil(t, body["enrichmentSummary"])
		gt.S(t, rec.Body.String()).Contains(`"enrichmentSummary":null`)
	})

	t.Run("legacy token field", func(t *testing.T) {
		var got string
		srv := newServer(reply, func(ctx context.Context, token, secret string) *challenge.Result {
			got = token
			return &challenge.Result{Success: true}
		})
		rec := doRequest(t, srv, http.MethodPost, "/analyze",
			`{"url":"https://example.com","turnstile_token":"legacy","sessionId":"s1"}`)
		gt.Equal(t, rec.Code, http.StatusOK)
		gt.Equal(t, got, "legacy")
	})

	t.Run("bad requests", func(t *testing.T) {
		srv := newServer(reply, passVerify)
		for _, body := range []string{
			`{`,
			`{}`,
			`{"url":""}`,
			`{"url":"https://example.com/` + strings.Repeat("a", 2100) + `","verificationToken":"t"}`,
			`{"url":"https://example.com","sessionId":"s1"}`,
			`{"url":"https://example.com"}`,
			`{"url":"https://example.com","verificationToken":"t","sessionId":"bad id"}`,
		} {
			rec := doRequest(t, srv, http.MethodPost, "/analyze", body)
			gt.Equal(t, rec.Code, http.StatusBadRequest)
			gt.NotEqual(t, decodeBody(t, rec)["error"], nil)
		}
	})

	t.Run("body too large", func(t *testing.T) {
		srv := newServer(reply, passVerify)
		big := `{"url":"` + strings.Repeat("a", 70*1024) + `"}`
		rec := doRequest(t, srv, http.MethodPost, "/analyze", big)
		gt.Equal(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("verification failure", func(t *testing.T) {
		srv := newServer(reply, func(ctx context.Context, token, secret string) *challenge.Result {
			return challenge.Failure("invalid-input-response", "timeout-or-duplicate")
		})
		rec := doRequest(t, srv, http.MethodPost, "/analyze",
			`{"url":"https://example.com","verificationToken":"bad","sessionId":"s1"}`)

		gt.Equal(t, rec.Code, http.StatusForbidden)
		body := decodeBody(t, rec)
		gt.Value(t, body["error"]).Equal("Verification failed")
		gt.Value(t, body["details"]).Equal([]any{"invalid-input-response", "timeout-or-duplicate"})
	})

	t.Run("misconfigured secret", func(t *testing.T) {
		uc := usecase.New(
			usecase.WithVerifier(&mock.ChallengeVerifierMock{VerifyFunc: passVerify}),
			usecase.WithKVStore(repository.NewMemory()),
		)
		rec := doRequest(t, server.New(uc), http.MethodPost, "/analyze",
			`{"url":"https://example.com","verificationToken":"tok","sessionId":"s1"}`)

		gt.Equal(t, rec.Code, http.StatusInternalServerError)
		gt.Value(t, decodeBody(t, rec)["error"]).Equal("Server misconfiguration")
	})

	t.Run("method not allowed", func(t *testing.T) {
		srv := newServer(reply, passVerify)
		rec := doRequest(t, srv, http.MethodGet, "/analyze", "")
		gt.Equal(t, rec.Code, http.StatusMethodNotAllowed)
	})
}

func TestHistoryEndpoint(t *testing.T) {
	const reply = "VERDICT: SAFE\nEXPLANATION: fine.\nNEXT_STEPS: none; none"
	srv := newServer(reply, passVerify)

	rec := doRequest(t, srv, http.MethodGet, "/history", "")
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.S(t, rec.Body.String()).Contains(`{"history":[]}`)

	for i := range 12 {
		rec := doRequest(t, srv, http.MethodPost, "/analyze",
			`{"url":"https://example.com/`+string(rune('a'+i))+`","verificationToken":"tok","sessionId":"s1"}`)
		gt.Equal(t, rec.Code, http.StatusOK)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/history", "")
	gt.Equal(t, rec.Code, http.StatusOK)

	var body struct {
		History []analysis.HistoryEntry `json:"history"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
	gt.A(t, body.History).Length(10)
	gt.Equal(t, body.History[0].URL, "https://example.com/l")
	gt.Equal(t, body.History[0].Verdict, analysis.VerdictSafe)
	gt.True(t, body.History[0].Verified)
	gt.True(t, body.History[0].EnrichmentSummary.IsCloudflareLike)
	gt.Equal(t, body.History[0].EnrichmentSummary.Hostname, "example.com")
}

func TestHistoryEndpoint_StoreUnavailable(t *testing.T) {
	kv := &mock.KVStoreMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, errors.New("unavailable")
		},
	}
	uc := usecase.New(usecase.WithKVStore(kv))

	rec := doRequest(t, server.New(uc), http.MethodGet, "/history", "")
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.S(t, rec.Body.String()).Contains(`{"history":[]}`)
	gt.A(t, kv.GetCalls()).Length(1)
}

func TestErrorResponses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", goerr.New("url is required", goerr.T(errs.TagValidation)), http.StatusBadRequest, "url is required"},
		{"timeout", goerr.New("secret upstream detail", goerr.T(errs.TagTimeout)), http.StatusGatewayTimeout, "Upstream service timed out"},
		{"external", goerr.New("secret upstream detail", goerr.T(errs.TagExternal)), http.StatusBadGateway, "Upstream service error"},
		{"database", goerr.New("secret upstream detail", goerr.T(errs.TagDatabase)), http.StatusInternalServerError, "Internal server error"},
		{"untagged", errors.New("secret upstream detail"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mock.AnalyzeUsecasesMock{
				HistoryFunc: func(ctx context.Context) ([]analysis.HistoryEntry, error) {
					return nil, tc.err
				},
			}
			rec := doRequest(t, server.New(uc), http.MethodGet, "/history", "")
			gt.Equal(t, rec.Code, tc.status)
			gt.Value(t, decodeBody(t, rec)["error"]).Equal(tc.msg)
			if tc.status >= 500 {
				gt.S(t, rec.Body.String()).NotContains("secret upstream detail")
			}
		})
	}
}

func TestAnalyzeRequestMapping(t *testing.T) {
	var got interfaces.AnalyzeRequest
	uc := &mock.AnalyzeUsecasesMock{
		AnalyzeFunc: func(ctx context.Context, req interfaces.AnalyzeRequest) (*analysis.Report, error) {
			got = req
			return &analysis.Report{Kind: analysis.KindURLAnalysis, Verdict: analysis.VerdictSafe}, nil
		},
	}

	rec := doRequest(t, server.New(uc), http.MethodPost, "/analyze",
		`{"url":"https://example.com","verificationToken":"tok","sessionId":"abc"}`)
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.Equal(t, got.Input, "https://example.com")
	gt.Equal(t, got.VerificationToken, "tok")
	gt.Equal(t, got.SessionID.String(), "abc")
}
