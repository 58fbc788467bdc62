package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/secmon-lab/guardian/pkg/service/challenge"
	"github.com/urfave/cli/v3"
)

type Turnstile struct {
	secret    string
	verifyURL string
	timeout   time.Duration
}

func (x *Turnstile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "turnstile-secret",
			Usage:       "Cloudflare Turnstile secret key",
			Destination: &x.secret,
			Category:    "Turnstile",
			Sources:     cli.EnvVars("GUARDIAN_TURNSTILE_SECRET", "TURNSTILE_SECRET"),
		},
		&cli.StringFlag{
			Name:        "turnstile-verify-url",
			Usage:       "Turnstile siteverify endpoint",
			Destination: &x.verifyURL,
			Category:    "Turnstile",
			Value:       challenge.DefaultSiteVerifyURL,
			Sources:     cli.EnvVars("GUARDIAN_TURNSTILE_VERIFY_URL"),
		},
		&cli.DurationFlag{
			Name:        "turnstile-timeout",
			Usage:       "Timeout of one siteverify call",
			Destination: &x.timeout,
			Category:    "Turnstile",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("GUARDIAN_TURNSTILE_TIMEOUT"),
		},
	}
}

func (x Turnstile) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("secret_configured", x.secret != ""),
		slog.String("verify_url", x.verifyURL),
		slog.Duration("timeout", x.timeout),
	)
}

// Configure returns the verifier and the server side secret. An empty
// secret is not an error here; requests that need verification fail as
// misconfigured instead.
func (x *Turnstile) Configure() (*challenge.Turnstile, string) {
	var opts []challenge.Option
	if x.verifyURL != "" {
		opts = append(opts, challenge.WithEndpoint(x.verifyURL))
	}
	if x.timeout > 0 {
		opts = append(opts, challenge.WithHTTPClient(&http.Client{Timeout: x.timeout}))
	}
	return challenge.NewTurnstile(opts...), x.secret
}

func (x *Turnstile) Timeout() time.Duration {
	return x.timeout
}
