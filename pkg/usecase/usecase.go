package usecase

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/repository"
	"github.com/secmon-lab/guardian/pkg/service/challenge"
	"github.com/secmon-lab/guardian/pkg/service/enrich"
	"github.com/secmon-lab/guardian/pkg/service/history"
	"github.com/secmon-lab/guardian/pkg/service/session"
)

// Config holds pipeline tunables.
type Config struct {
	HistoryLimit     int
	SessionTTL       time.Duration
	VerifyTimeout    time.Duration
	InferenceTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		HistoryLimit:     history.DefaultLimit,
		SessionTTL:       session.DefaultTTL,
		VerifyTimeout:    10 * time.Second,
		InferenceTimeout: 60 * time.Second,
	}
}

func (x Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("history_limit", x.HistoryLimit),
		slog.Duration("session_ttl", x.SessionTTL),
		slog.Duration("verify_timeout", x.VerifyTimeout),
		slog.Duration("inference_timeout", x.InferenceTimeout),
	)
}

type UseCases struct {
	// services and adapters
	llmClient       gollem.LLMClient
	kvStore         interfaces.KVStore
	verifier        interfaces.ChallengeVerifier
	enricher        interfaces.Enricher
	challengeSecret string

	gate    *session.Gate
	history *history.Store

	// configs
	config Config
}

var _ interfaces.AnalyzeUsecases = &UseCases{}

type Option func(*UseCases)

func WithLLMClient(llmClient gollem.LLMClient) Option {
	return func(u *UseCases) {
		u.llmClient = llmClient
	}
}

func WithKVStore(kvStore interfaces.KVStore) Option {
	return func(u *UseCases) {
		u.kvStore = kvStore
	}
}

func WithVerifier(verifier interfaces.ChallengeVerifier) Option {
	return func(u *UseCases) {
		u.verifier = verifier
	}
}

// WithChallengeSecret sets the server side secret for human verification.
// An empty secret makes every challenge fail as misconfigured.
func WithChallengeSecret(secret string) Option {
	return func(u *UseCases) {
		u.challengeSecret = secret
	}
}

func WithEnricher(enricher interfaces.Enricher) Option {
	return func(u *UseCases) {
		u.enricher = enricher
	}
}

// WithConfig overrides the pipeline configuration. Zero fields keep their
// defaults.
func WithConfig(cfg Config) Option {
	return func(u *UseCases) {
		if cfg.HistoryLimit > 0 {
			u.config.HistoryLimit = cfg.HistoryLimit
		}
		if cfg.SessionTTL > 0 {
			u.config.SessionTTL = cfg.SessionTTL
		}
		if cfg.VerifyTimeout > 0 {
			u.config.VerifyTimeout = cfg.VerifyTimeout
		}
		if cfg.InferenceTimeout > 0 {
			u.config.InferenceTimeout = cfg.InferenceTimeout
		}
	}
}

func New(opts ...Option) *UseCases {
	u := &UseCases{
		kvStore:  repository.NewMemory(),
		verifier: challenge.NewTurnstile(),
		enricher: enrich.New(),
		config:   DefaultConfig(),
	}

	for _, opt := range opts {
		opt(u)
	}

	u.gate = session.New(u.kvStore, u.config.SessionTTL)
	u.history = history.New(u.kvStore, u.config.HistoryLimit)

	return u
}

func (u *UseCases) Config() Config {
	return u.config
}
