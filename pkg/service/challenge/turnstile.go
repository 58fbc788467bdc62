package challenge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/domain/model/challenge"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/secmon-lab/guardian/pkg/utils/safe"
)

const (
	DefaultSiteVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	defaultTimeout       = 10 * time.Second
	maxResponseSize      = 64 * 1024
)

// Turnstile verifies tokens against the Cloudflare Turnstile siteverify API.
type Turnstile struct {
	endpoint   string
	httpClient *http.Client
}

var _ interfaces.ChallengeVerifier = &Turnstile{}

type Option func(*Turnstile)

func WithEndpoint(endpoint string) Option {
	return func(x *Turnstile) {
		x.endpoint = endpoint
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(x *Turnstile) {
		x.httpClient = client
	}
}

func NewTurnstile(opts ...Option) *Turnstile {
	x := &Turnstile{
		endpoint:   DefaultSiteVerifyURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

type siteVerifyRequest struct {
	Secret   string `json:"secret" masq:"secret"`
	Response string `json:"response" masq:"secret"`
}

// Verify never returns nil. Missing input fails without a network call and
// every transport or protocol failure becomes a failed result.
func (x *Turnstile) Verify(ctx context.Context, token, secret string) *challenge.Result {
	if token == "" || secret == "" {
		return challenge.Failure(challenge.CodeMissingTokenOrSecret)
	}

	result, err := x.siteVerify(ctx, token, secret)
	if err != nil {
		logging.From(ctx).Warn("turnstile verification error", "error", err)
		if goerr.HasTag(err, tagHTTPStatus) {
			return challenge.Failure(challenge.CodeHTTPStatus)
		}
		return challenge.Failure(challenge.CodeVerificationError)
	}

	return result
}

var tagHTTPStatus = goerr.NewTag("turnstile_http_status")

func (x *Turnstile) siteVerify(ctx context.Context, token, secret string) (*challenge.Result, error) {
	body, err := json.Marshal(siteVerifyRequest{Secret: secret, Response: token})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal siteverify request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create siteverify request", goerr.V("endpoint", x.endpoint))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send siteverify request", goerr.V("endpoint", x.endpoint))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.New("siteverify returned non-2xx status",
			goerr.T(tagHTTPStatus),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)))
	}

	var result challenge.Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode siteverify response")
	}

	if !result.Success && len(result.ErrorCodes) == 0 {
		result.ErrorCodes = []string{challenge.CodeVerificationError}
	}

	return &result, nil
}
