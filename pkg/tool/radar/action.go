package radar

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
	DefaultBaseURL  = "https://api.cloudflare.com/client/v4"
	maxResponseSize = 1024 * 1024
)

// Action queries Cloudflare Radar for domain intelligence.
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
	return "radar"
}

func (x *Action) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "radar-api-key",
			Usage:       "Cloudflare Radar API token (enables Radar intel when set)",
			Destination: &x.apiKey,
			Category:    "Intel",
			Sources:     cli.EnvVars("GUARDIAN_RADAR_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "radar-base-url",
			Usage:       "Cloudflare API base URL",
			Destination: &x.baseURL,
			Category:    "Intel",
			Value:       DefaultBaseURL,
			Sources:     cli.EnvVars("GUARDIAN_RADAR_BASE_URL"),
		},
	}
}

func (x *Action) Enabled() bool {
	return x.apiKey != ""
}

func (x *Action) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.Enabled()),
		slog.String("base_url", x.baseURL),
	)
}

type radarResponse struct {
	Success bool           `json:"success"`
	Result  map[string]any `json:"result"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Lookup returns the "result" object of the Radar domain endpoint.
func (x *Action) Lookup(ctx context.Context, hostname string) (map[string]any, error) {
	if x.apiKey == "" {
		return nil, goerr.New("Radar API key is required")
	}
	if hostname == "" {
		return nil, goerr.New("hostname is required")
	}

	baseURL := x.baseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	endpoint := baseURL + "/radar/domain?" + url.Values{"domain": {hostname}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("endpoint", endpoint))
	}
	req.Header.Set("Authorization", "Bearer "+x.apiKey)
	req.Header.Set("Accept", "application/json")

	client := x.httpClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	logging.From(ctx).Debug("querying radar", "hostname", hostname)
	resp, err := client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request", goerr.V("hostname", hostname))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.New("failed to query Radar",
			goerr.V("status_code", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	var result radarResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode response")
	}

	if len(result.Result) == 0 {
		return nil, nil
	}
	return result.Result, nil
}
