package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
	"github.com/urfave/cli/v3"
)

type LLMCfg struct {
	// Claude configuration
	claudeModel     string
	claudeProjectID string
	claudeLocation  string

	// Gemini configuration
	geminiModel     string
	geminiProjectID string
	geminiLocation  string
}

func (x *LLMCfg) Flags() []cli.Flag {
	return []cli.Flag{
		// Claude flags
		&cli.StringFlag{
			Name:        "claude-model",
			Usage:       "Claude model name",
			Sources:     cli.EnvVars("GUARDIAN_CLAUDE_MODEL"),
			Value:       "claude-sonnet-4@20250514",
			Destination: &x.claudeModel,
			Category:    "Claude",
		},
		&cli.StringFlag{
			Name:        "claude-project-id",
			Usage:       "Google Cloud Project ID for Claude Vertex AI",
			Sources:     cli.EnvVars("GUARDIAN_CLAUDE_PROJECT_ID"),
			Destination: &x.claudeProjectID,
			Category:    "Claude",
		},
		&cli.StringFlag{
			Name:        "claude-location",
			Usage:       "Google Cloud location for Claude Vertex AI",
			Sources:     cli.EnvVars("GUARDIAN_CLAUDE_LOCATION"),
			Value:       "us-east5",
			Destination: &x.claudeLocation,
			Category:    "Claude",
		},
		// Gemini flags
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model",
			Destination: &x.geminiModel,
			Category:    "Gemini",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("GUARDIAN_GEMINI_MODEL"),
		},
		&cli.StringFlag{
			Name:        "gemini-project-id",
			Usage:       "GCP Project ID for Vertex AI (used when Claude is not configured)",
			Destination: &x.geminiProjectID,
			Category:    "Gemini",
			Sources:     cli.EnvVars("GUARDIAN_GEMINI_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "GCP Location for Vertex AI",
			Value:       "us-central1",
			Destination: &x.geminiLocation,
			Category:    "Gemini",
			Sources:     cli.EnvVars("GUARDIAN_GEMINI_LOCATION"),
		},
	}
}

func (x LLMCfg) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("provider", x.ActiveProvider()),
	}

	if x.claudeProjectID != "" {
		attrs = append(attrs,
			slog.String("claude_model", x.claudeModel),
			slog.String("claude_project_id", x.claudeProjectID),
			slog.String("claude_location", x.claudeLocation),
		)
	}

	if x.geminiProjectID != "" {
		attrs = append(attrs,
			slog.String("gemini_model", x.geminiModel),
			slog.String("gemini_project_id", x.geminiProjectID),
			slog.String("gemini_location", x.geminiLocation),
		)
	}

	return slog.GroupValue(attrs...)
}

// Configure creates and returns an LLM client, preferring Claude if configured
func (x *LLMCfg) Configure(ctx context.Context) (gollem.LLMClient, error) {
	switch {
	case x.IsClaudeConfigured():
		return x.configureClaude(ctx)
	case x.IsGeminiConfigured():
		return x.configureGemini(ctx)
	default:
		return nil, goerr.New("no LLM provider configured, set --claude-project-id or --gemini-project-id",
			goerr.T(errs.TagMisconfigured))
	}
}

func (x *LLMCfg) configureClaude(ctx context.Context) (gollem.LLMClient, error) {
	options := []claude.VertexOption{
		claude.WithVertexModel(x.claudeModel),
	}

	client, err := claude.NewWithVertex(ctx, x.claudeLocation, x.claudeProjectID, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Claude Vertex AI client",
			goerr.V("projectID", x.claudeProjectID),
			goerr.V("location", x.claudeLocation),
			goerr.V("model", x.claudeModel))
	}

	return client, nil
}

func (x *LLMCfg) configureGemini(ctx context.Context) (gollem.LLMClient, error) {
	client, err := gemini.New(ctx, x.geminiProjectID, x.geminiLocation, gemini.WithModel(x.geminiModel))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client",
			goerr.V("projectID", x.geminiProjectID),
			goerr.V("location", x.geminiLocation),
			goerr.V("model", x.geminiModel))
	}

	return client, nil
}

// IsClaudeConfigured returns true if Claude configuration is available
func (x *LLMCfg) IsClaudeConfigured() bool {
	return x.claudeProjectID != ""
}

// IsGeminiConfigured returns true if Gemini configuration is available
func (x *LLMCfg) IsGeminiConfigured() bool {
	return x.geminiProjectID != ""
}

// ActiveProvider returns the name of the LLM provider Configure would pick.
func (x LLMCfg) ActiveProvider() string {
	if x.claudeProjectID != "" {
		return "claude"
	}
	if x.geminiProjectID != "" {
		return "gemini"
	}
	return "none"
}
