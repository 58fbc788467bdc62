package config_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/guardian/pkg/cli/config"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
	"github.com/secmon-lab/guardian/pkg/usecase"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// runFlags parses args into flags and calls fn inside the command action.
func runFlags(t *testing.T, flags []cli.Flag, args []string, fn func(ctx context.Context) error) error {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return fn(ctx)
		},
	}
	return cmd.Run(context.Background(), append([]string{"test"}, args...))
}

func TestLLMCfg(t *testing.T) {
	t.Run("no provider is a misconfiguration", func(t *testing.T) {
		var cfg config.LLMCfg
		gt.NoError(t, runFlags(t, cfg.Flags(), nil, func(ctx context.Context) error {
			gt.Equal(t, cfg.ActiveProvider(), "none")
			_, err := cfg.Configure(ctx)
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, errs.TagMisconfigured))
			return nil
		}))
	})

	t.Run("claude is preferred over gemini", func(t *testing.T) {
		var cfg config.LLMCfg
		args := []string{"--claude-project-id", "p1", "--gemini-project-id", "p2"}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			gt.True(t, cfg.IsClaudeConfigured())
			gt.True(t, cfg.IsGeminiConfigured())
			gt.Equal(t, cfg.ActiveProvider(), "claude")
			return nil
		}))
	})

	t.Run("gemini is used without claude", func(t *testing.T) {
		var cfg config.LLMCfg
		args := []string{"--gemini-project-id", "p2"}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			gt.Equal(t, cfg.ActiveProvider(), "gemini")
			return nil
		}))
	})
}

func TestPipeline(t *testing.T) {
	t.Run("defaults match usecase defaults", func(t *testing.T) {
		var cfg config.Pipeline
		gt.NoError(t, runFlags(t, cfg.Flags(), nil, func(ctx context.Context) error {
			got, err := cfg.Configure(3 * time.Second)
			gt.NoError(t, err)

			want := usecase.DefaultConfig()
			gt.Equal(t, got.HistoryLimit, want.HistoryLimit)
			gt.Equal(t, got.SessionTTL, want.SessionTTL)
			gt.Equal(t, got.InferenceTimeout, want.InferenceTimeout)
			gt.Equal(t, got.VerifyTimeout, 3*time.Second)
			return nil
		}))
	})

	t.Run("flags override defaults", func(t *testing.T) {
		var cfg config.Pipeline
		args := []string{"--history-limit", "3", "--session-ttl", "5m", "--inference-timeout", "20s"}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			got, err := cfg.Configure(time.Second)
			gt.NoError(t, err)
			gt.Equal(t, got.HistoryLimit, 3)
			gt.Equal(t, got.SessionTTL, 5*time.Minute)
			gt.Equal(t, got.InferenceTimeout, 20*time.Second)
			return nil
		}))
	})

	t.Run("negative history limit is rejected", func(t *testing.T) {
		var cfg config.Pipeline
		args := []string{"--history-limit=-1"}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			_, err := cfg.Configure(time.Second)
			gt.Error(t, err)
			return nil
		}))
	})
}

func TestTurnstile(t *testing.T) {
	var cfg config.Turnstile
	args := []string{"--turnstile-secret", "s3cr3t", "--turnstile-timeout", "2s"}
	gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
		verifier, secret := cfg.Configure()
		gt.NotNil(t, verifier)
		gt.Equal(t, secret, "s3cr3t")
		gt.Equal(t, cfg.Timeout(), 2*time.Second)
		return nil
	}))
}

func TestEnrich(t *testing.T) {
	t.Run("embedded fingerprints by default", func(t *testing.T) {
		var cfg config.Enrich
		gt.NoError(t, runFlags(t, cfg.Flags(), nil, func(ctx context.Context) error {
			enricher, err := cfg.Configure()
			gt.NoError(t, err)
			gt.NotNil(t, enricher)
			return nil
		}))
	})

	t.Run("broken fingerprint file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fp.yaml")
		gt.NoError(t, os.WriteFile(path, []byte("fingerprints:\n  - name: empty\n"), 0600))

		var cfg config.Enrich
		args := []string{"--fingerprint-file", path}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			_, err := cfg.Configure()
			gt.Error(t, err)
			return nil
		}))
	})

	t.Run("missing fingerprint file fails", func(t *testing.T) {
		var cfg config.Enrich
		args := []string{"--fingerprint-file", filepath.Join(t.TempDir(), "none.yaml")}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			_, err := cfg.Configure()
			gt.Error(t, err)
			return nil
		}))
	})
}

func TestLogger(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		var cfg config.Logger
		args := []string{"--log-level", "verbose"}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			closer, err := cfg.Configure()
			defer closer()
			gt.Error(t, err)
			return nil
		}))
	})

	t.Run("invalid format", func(t *testing.T) {
		var cfg config.Logger
		args := []string{"--log-format", "xml"}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			closer, err := cfg.Configure()
			defer closer()
			gt.Error(t, err)
			return nil
		}))
	})

	t.Run("file output", func(t *testing.T) {
		prev := logging.Default()
		defer logging.SetDefault(prev)

		path := filepath.Join(t.TempDir(), "guardian.log")
		var cfg config.Logger
		args := []string{"--log-output", path, "--log-format", "json"}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			closer, err := cfg.Configure()
			gt.NoError(t, err)
			closer()
			_, statErr := os.Stat(path)
			gt.NoError(t, statErr)
			return nil
		}))
	})
}

func TestSentry(t *testing.T) {
	t.Run("disabled without dsn", func(t *testing.T) {
		var cfg config.Sentry
		gt.NoError(t, runFlags(t, cfg.Flags(), nil, func(ctx context.Context) error {
			gt.False(t, cfg.Enabled())
			flush, err := cfg.Configure()
			gt.NoError(t, err)
			flush()
			return nil
		}))
	})

	t.Run("invalid dsn fails", func(t *testing.T) {
		var cfg config.Sentry
		args := []string{"--sentry-dsn", "not a dsn"}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			gt.True(t, cfg.Enabled())
			flush, err := cfg.Configure()
			gt.Error(t, err)
			flush()
			return nil
		}))
	})

	t.Run("dsn is not logged", func(t *testing.T) {
		var cfg config.Sentry
		args := []string{"--sentry-dsn", "https://key@o0.ingest.sentry.io/1", "--sentry-env", "prod"}
		gt.NoError(t, runFlags(t, cfg.Flags(), args, func(ctx context.Context) error {
			var buf bytes.Buffer
			logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false)
			logger.Info("config", "sentry", cfg)
			gt.S(t, buf.String()).Contains("prod").NotContains("key@")
			return nil
		}))
	})
}
