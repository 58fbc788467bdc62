package otx

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
	DefaultBaseURL  = "https://otx.alienvault.com/api/v1"
	maxResponseSize = 4 * 1024 * 1024
	maxPulseNames   = 3
)

// Action looks up AlienVault OTX pulses that mention a hostname.
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
	return "otx"
}

func (x *Action) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "otx-api-key",
			Usage:       "OTX API key (enables OTX intel when set)",
			Destination: &x.apiKey,
			Category:    "Intel",
			Sources:     cli.EnvVars("GUARDIAN_OTX_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "otx-base-url",
			Usage:       "OTX API base URL",
			Destination: &x.baseURL,
			Category:    "Intel",
			Value:       DefaultBaseURL,
			Sources:     cli.EnvVars("GUARDIAN_OTX_BASE_URL"),
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

type generalResponse struct {
	PulseInfo struct {
		Count  int `json:"count"`
		Pulses []struct {
			Name string   `json:"name"`
			Tags []string `json:"tags"`
		} `json:"pulses"`
	} `json:"pulse_info"`
}

// Lookup returns the pulse count and the names of the first pulses.
func (x *Action) Lookup(ctx context.Context, hostname string) (map[string]any, error) {
	if x.apiKey == "" {
		return nil, goerr.New("OTX API key is required")
	}
	if hostname == "" {
		return nil, goerr.New("hostname is required")
	}

	baseURL := x.baseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	endpoint := baseURL + "/indicators/hostname/" + url.PathEscape(hostname) + "/general"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("endpoint", endpoint))
	}
	req.Header.Set("X-OTX-API-KEY", x.apiKey)

	client := x.httpClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	logging.From(ctx).Debug("querying otx", "hostname", hostname)
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
		return nil, goerr.New("failed to query OTX",
			goerr.V("status_code", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	var general generalResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&general); err != nil {
		return nil, goerr.Wrap(err, "failed to decode response")
	}

	names := []string{}
	for _, p := range general.PulseInfo.Pulses {
		if len(names) >= maxPulseNames {
			break
		}
		names = append(names, p.Name)
	}

	return map[string]any{
		"pulse_count": general.PulseInfo.Count,
		"pulses":      names,
	}, nil
}
