package whois

import (
	"context"
	"log/slog"
	"strings"
	"time"

	whoislib "github.com/likexian/whois"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/urfave/cli/v3"
)

const maxRawLength = 2000

type queryFunc func(ctx context.Context, target string) (string, error)

// Action looks up WHOIS registration data for a hostname.
type Action struct {
	enabled bool
	queryFn queryFunc
}

var _ interfaces.DomainIntel = &Action{}

func defaultQuery(ctx context.Context, target string) (string, error) {
	client := whoislib.NewClient()
	if deadline, ok := ctx.Deadline(); ok {
		client.SetTimeout(time.Until(deadline))
	}
	result, err := client.Whois(target)
	if err != nil {
		return "", goerr.Wrap(err, "failed to query whois", goerr.V("target", target))
	}
	return result, nil
}

func (x *Action) query(ctx context.Context, target string) (string, error) {
	if x.queryFn != nil {
		return x.queryFn(ctx, target)
	}
	return defaultQuery(ctx, target)
}

func (x *Action) Name() string {
	return "whois"
}

func (x *Action) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "whois-enabled",
			Usage:       "Enable WHOIS lookup as domain intel source",
			Destination: &x.enabled,
			Category:    "Intel",
			Sources:     cli.EnvVars("GUARDIAN_WHOIS_ENABLED"),
		},
	}
}

func (x *Action) Enabled() bool {
	return x.enabled
}

func (x *Action) LogValue() slog.Value {
	return slog.GroupValue(slog.Bool("enabled", x.enabled))
}

// Lookup returns selected registration fields and a truncated raw record.
func (x *Action) Lookup(ctx context.Context, hostname string) (map[string]any, error) {
	target := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(hostname)), "www.")
	if target == "" {
		return nil, goerr.New("hostname is required")
	}

	raw, err := x.query(ctx, target)
	if err != nil {
		return nil, err
	}

	result := extractFields(raw)
	if len(raw) > maxRawLength {
		raw = raw[:maxRawLength]
	}
	result["target"] = target
	result["raw"] = raw
	return result, nil
}

var fieldNames = map[string]string{
	"registrar":                              "registrar",
	"creation date":                          "created",
	"created":                                "created",
	"registry expiry date":                   "expires",
	"registrar registration expiration date": "expires",
	"expiry date":                            "expires",
	"updated date":                           "updated",
	"name server":                            "name_servers",
}

func extractFields(raw string) map[string]any {
	result := map[string]any{}
	var nameServers []string

	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field, ok := fieldNames[strings.ToLower(strings.TrimSpace(key))]
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}

		if field == "name_servers" {
			nameServers = append(nameServers, strings.ToLower(value))
			continue
		}
		if _, exists := result[field]; !exists {
			result[field] = value
		}
	}

	if len(nameServers) > 0 {
		result["name_servers"] = nameServers
	}
	return result
}
