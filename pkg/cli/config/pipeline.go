package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type Pipeline struct {
	historyLimit     int64
	sessionTTL       time.Duration
	inferenceTimeout time.Duration
}

func (x *Pipeline) Flags() []cli.Flag {
	defaults := usecase.DefaultConfig()
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "history-limit",
			Usage:       "Number of analyses kept in the history log",
			Destination: &x.historyLimit,
			Category:    "Pipeline",
			Value:       int64(defaults.HistoryLimit),
			Sources:     cli.EnvVars("GUARDIAN_HISTORY_LIMIT"),
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Lifetime of a verified session",
			Destination: &x.sessionTTL,
			Category:    "Pipeline",
			Value:       defaults.SessionTTL,
			Sources:     cli.EnvVars("GUARDIAN_SESSION_TTL"),
		},
		&cli.DurationFlag{
			Name:        "inference-timeout",
			Usage:       "Timeout of one LLM inference",
			Destination: &x.inferenceTimeout,
			Category:    "Pipeline",
			Value:       defaults.InferenceTimeout,
			Sources:     cli.EnvVars("GUARDIAN_INFERENCE_TIMEOUT"),
		},
	}
}

func (x Pipeline) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("history_limit", x.historyLimit),
		slog.Duration("session_ttl", x.sessionTTL),
		slog.Duration("inference_timeout", x.inferenceTimeout),
	)
}

// Configure converts flags into usecase.Config. verifyTimeout comes from
// the Turnstile config.
func (x *Pipeline) Configure(verifyTimeout time.Duration) (usecase.Config, error) {
	if x.historyLimit < 0 {
		return usecase.Config{}, goerr.New("history-limit must not be negative", goerr.V("history_limit", x.historyLimit))
	}
	if x.sessionTTL < 0 || x.inferenceTimeout < 0 {
		return usecase.Config{}, goerr.New("durations must not be negative",
			goerr.V("session_ttl", x.sessionTTL),
			goerr.V("inference_timeout", x.inferenceTimeout))
	}

	return usecase.Config{
		HistoryLimit:     int(x.historyLimit),
		SessionTTL:       x.sessionTTL,
		VerifyTimeout:    verifyTimeout,
		InferenceTimeout: x.inferenceTimeout,
	}, nil
}
