package cli

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/secmon-lab/guardian/pkg/cli/config"
	server "github.com/secmon-lab/guardian/pkg/controller/http"
	"github.com/secmon-lab/guardian/pkg/usecase"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// pipelineCfg gathers the configs needed to build the analysis pipeline.
type pipelineCfg struct {
	llm       config.LLMCfg
	firestore config.Firestore
	turnstile config.Turnstile
	enrich    config.Enrich
	pipeline  config.Pipeline
	intel     intelList
}

func newPipelineCfg() *pipelineCfg {
	return &pipelineCfg{intel: newIntelList()}
}

func (x *pipelineCfg) Flags(withChallenge bool) []cli.Flag {
	flags := joinFlags(
		x.llm.Flags(),
		x.firestore.Flags(),
		x.enrich.Flags(),
		x.intel.Flags(),
		x.pipeline.Flags(),
	)
	if withChallenge {
		flags = append(flags, x.turnstile.Flags()...)
	}
	return flags
}

func (x *pipelineCfg) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("llm", x.llm),
		slog.Any("firestore", x.firestore),
		slog.Any("turnstile", x.turnstile),
		slog.Any("enrich", x.enrich),
		slog.Any("intel", x.intel),
		slog.Any("pipeline", x.pipeline),
	)
}

// Configure builds the use cases. closer releases the KV store and is
// always callable.
func (x *pipelineCfg) Configure(ctx context.Context) (*usecase.UseCases, func(), error) {
	closer := func() {}

	llmClient, err := x.llm.Configure(ctx)
	if err != nil {
		return nil, closer, err
	}

	enricher, err := x.enrich.Configure(x.intel.Sources()...)
	if err != nil {
		return nil, closer, err
	}

	verifier, secret := x.turnstile.Configure()

	ucCfg, err := x.pipeline.Configure(x.turnstile.Timeout())
	if err != nil {
		return nil, closer, err
	}

	kvStore, closer, err := x.firestore.Configure(ctx)
	if err != nil {
		return nil, closer, err
	}

	uc := usecase.New(
		usecase.WithLLMClient(llmClient),
		usecase.WithKVStore(kvStore),
		usecase.WithVerifier(verifier),
		usecase.WithChallengeSecret(secret),
		usecase.WithEnricher(enricher),
		usecase.WithConfig(ucCfg),
	)
	return uc, closer, nil
}

func cmdServe() *cli.Command {
	var (
		addr      string
		sentryCfg config.Sentry
	)
	cfg := newPipelineCfg()

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("GUARDIAN_ADDR"),
				Usage:       "Listen address (default: 127.0.0.1:8080)",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
		},
		sentryCfg.Flags(),
		cfg.Flags(true),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run server",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logging.Default().Info("starting server",
				"addr", addr,
				"sentry", sentryCfg,
				"pipeline", cfg,
			)

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			uc, closer, err := cfg.Configure(ctx)
			defer closer()
			if err != nil {
				return err
			}

			httpServer := http.Server{
				Addr:              addr,
				Handler:           server.New(uc),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sigCh:
				logging.From(ctx).Info("shutting down server")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			}
		},
	}
}
