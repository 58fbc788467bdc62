package vt

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/secmon-lab/guardian/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

const (
	DefaultBaseURL  = "https://www.virustotal.com/api/v3"
	maxResponseSize = 4 * 1024 * 1024
)

// Action looks up the VirusTotal domain report.
type Action struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.DomainIntel = &Action{}

func New(apiKey, baseURL string) *Action {
	return &Action{apiKey: apiKey, baseURL: baseURL}
}

func (x *Action) Name() string {
	return "vt"
}

func (x *Action) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "vt-api-key",
			Usage:       "VirusTotal API key (enables VirusTotal intel when set)",
			Destination: &x.apiKey,
			Category:    "Intel",
			Sources:     cli.EnvVars("GUARDIAN_VT_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "vt-base-url",
			Usage:       "VirusTotal API base URL",
			Destination: &x.baseURL,
			Category:    "Intel",
			Value:       DefaultBaseURL,
			Sources:     cli.EnvVars("GUARDIAN_VT_BASE_URL"),
		},
	}
}

func (x *Action) Enabled() bool {
	return x.apiKey != ""
}

func (x *Action) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("api_key.len", len(x.apiKey)),
		slog.String("base_url", x.baseURL),
	)
}

type domainResponse struct {
	Data struct {
		Attributes struct {
			Reputation        *int              `json:"reputation"`
			LastAnalysisStats map[string]int    `json:"last_analysis_stats"`
			Categories        map[string]string `json:"categories"`
			LastAnalysisDate  int64             `json:"last_analysis_date"`
		} `json:"attributes"`
	} `json:"data"`
}

// Lookup returns reputation, engine stats and vendor categories of the
// domain. An unknown domain yields nil without error.
func (x *Action) Lookup(ctx context.Context, hostname string) (map[string]any, error) {
	if x.apiKey == "" {
		return nil, goerr.New("VirusTotal API key is required")
	}
	if hostname == "" {
		return nil, goerr.New("hostname is required")
	}

	baseURL := x.baseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	endpoint := baseURL + "/domains/" + url.PathEscape(hostname)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("endpoint", endpoint))
	}
	req.Header.Set("x-apikey", x.apiKey)

	client := x.httpClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	logging.From(ctx).Debug("querying virustotal", "hostname", hostname)
	resp, err := client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request", goerr.V("hostname", hostname))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.New("failed to query VirusTotal",
			goerr.V("status_code", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	var report domainResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&report); err != nil {
		return nil, goerr.Wrap(err, "failed to decode response")
	}

	attrs := report.Data.Attributes
	result := map[string]any{}
	if attrs.Reputation != nil {
		result["reputation"] = *attrs.Reputation
	}
	if len(attrs.LastAnalysisStats) > 0 {
		result["last_analysis_stats"] = attrs.LastAnalysisStats
	}
	if len(attrs.Categories) > 0 {
		result["categories"] = attrs.Categories
	}
	if attrs.LastAnalysisDate > 0 {
		result["last_analysis_date"] = time.Unix(attrs.LastAnalysisDate, 0).UTC().Format(time.RFC3339)
	}

	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}
