package config

import (
	"log/slog"
	"time"

	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/service/enrich"
	"github.com/urfave/cli/v3"
)

type Enrich struct {
	probeTimeout    time.Duration
	intelTimeout    time.Duration
	allowPrivate    bool
	fingerprintFile string
}

func (x *Enrich) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "probe-timeout",
			Usage:       "Timeout of the HEAD probe against the analyzed URL",
			Destination: &x.probeTimeout,
			Category:    "Enrichment",
			Value:       enrich.DefaultProbeTimeout,
			Sources:     cli.EnvVars("GUARDIAN_PROBE_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:        "probe-allow-private",
			Usage:       "Allow probing loopback and private addresses (development only)",
			Destination: &x.allowPrivate,
			Category:    "Enrichment",
			Sources:     cli.EnvVars("GUARDIAN_PROBE_ALLOW_PRIVATE"),
		},
		&cli.StringFlag{
			Name:        "fingerprint-file",
			Usage:       "YAML file of CDN fingerprints (embedded defaults when empty)",
			Destination: &x.fingerprintFile,
			Category:    "Enrichment",
			Sources:     cli.EnvVars("GUARDIAN_FINGERPRINT_FILE"),
		},
		&cli.DurationFlag{
			Name:        "intel-timeout",
			Usage:       "Timeout of each external intel lookup",
			Destination: &x.intelTimeout,
			Category:    "Intel",
			Value:       enrich.DefaultIntelTimeout,
			Sources:     cli.EnvVars("GUARDIAN_INTEL_TIMEOUT"),
		},
	}
}

func (x Enrich) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("probe_timeout", x.probeTimeout),
		slog.Duration("intel_timeout", x.intelTimeout),
		slog.Bool("allow_private", x.allowPrivate),
		slog.String("fingerprint_file", x.fingerprintFile),
	)
}

// Configure builds the enricher with the given intel sources.
func (x *Enrich) Configure(intel ...interfaces.DomainIntel) (*enrich.Enricher, error) {
	fps, err := enrich.LoadFingerprints(x.fingerprintFile)
	if err != nil {
		return nil, err
	}

	return enrich.New(
		enrich.WithProbeTimeout(x.probeTimeout),
		enrich.WithIntelTimeout(x.intelTimeout),
		enrich.WithAllowPrivate(x.allowPrivate),
		enrich.WithFingerprints(fps),
		enrich.WithIntel(intel...),
	), nil
}
