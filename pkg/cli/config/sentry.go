package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const sentryFlushTimeout = 2 * time.Second

// Sentry enables error reporting through errs.Handle. Without a DSN the
// server runs with log only reporting.
type Sentry struct {
	dsn     string
	env     string
	release string
}

func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN; error reporting is off when empty",
			Category:    "Sentry",
			Sources:     cli.EnvVars("GUARDIAN_SENTRY_DSN"),
			Destination: &x.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Category:    "Sentry",
			Sources:     cli.EnvVars("GUARDIAN_SENTRY_ENV"),
			Destination: &x.env,
		},
		&cli.StringFlag{
			Name:        "sentry-release",
			Usage:       "Release reported with Sentry events",
			Category:    "Sentry",
			Sources:     cli.EnvVars("GUARDIAN_SENTRY_RELEASE"),
			Destination: &x.release,
		},
	}
}

func (x Sentry) Enabled() bool {
	return x.dsn != ""
}

// LogValue omits the DSN because it embeds the project key.
func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.Enabled()),
		slog.String("env", x.env),
		slog.String("release", x.release),
	)
}

// Configure initializes the global Sentry client. The returned flush waits
// for queued events and is always callable.
func (x *Sentry) Configure() (func(), error) {
	nop := func() {}
	if !x.Enabled() {
		logging.Default().Warn("Sentry is not configured, errors are only logged")
		return nop, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.env,
		Release:     x.release,
	}); err != nil {
		return nop, goerr.Wrap(err, "failed to initialize sentry", goerr.V("env", x.env))
	}

	return func() { sentry.Flush(sentryFlushTimeout) }, nil
}
