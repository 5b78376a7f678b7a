// Package aisummary provides the AI summary workflow action: a step executor
// and the service that calls the completion API on its behalf.
package aisummary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/flowcrm/aisummary/pkg/models"
	"github.com/flowcrm/aisummary/pkg/otelhelper"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// APIKeyEnvVar holds the completion API credential.
	APIKeyEnvVar = "OPENAI_API_KEY"

	// BaseURLEnvVar optionally points the client at an OpenAI-compatible endpoint.
	BaseURLEnvVar = "OPENAI_BASE_URL"

	tracerName = "github.com/flowcrm/aisummary/pkg/actions/aisummary"
)

// Service sends AI summary prompts to the completion API.
// The client handle is set once by NewService and never mutated, so Execute is safe for concurrent use.
type Service struct {
	llm    llms.Model
	logger *slog.Logger
	tracer trace.Tracer
}

type serviceConfig struct {
	apiKey  string
	baseURL string
	llm     llms.Model
	tracer  trace.Tracer
}

// ServiceOption customizes NewService.
type ServiceOption func(*serviceConfig)

// WithAPIKey replaces the credential read from the environment. An empty key leaves the service unconfigured.
func WithAPIKey(apiKey string) ServiceOption {
	return func(c *serviceConfig) {
		c.apiKey = apiKey
	}
}

// WithBaseURL sets the completion API base URL.
func WithBaseURL(baseURL string) ServiceOption {
	return func(c *serviceConfig) {
		c.baseURL = baseURL
	}
}

// WithLLM uses the given client instead of building an OpenAI one.
func WithLLM(llm llms.Model) ServiceOption {
	return func(c *serviceConfig) {
		c.llm = llm
	}
}

// WithTracer sets the tracer used for execution spans.
func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(c *serviceConfig) {
		c.tracer = tracer
	}
}

// NewService builds the service. A missing credential is not an error here:
// the service is returned unconfigured and every Execute fails with ErrNotConfigured.
func NewService(logger *slog.Logger, opts ...ServiceOption) *Service {
	cfg := serviceConfig{
		apiKey:  os.Getenv(APIKeyEnvVar),
		baseURL: os.Getenv(BaseURLEnvVar),
		tracer:  otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Service{
		logger: logger.With("module", "ai_summary_executor"),
		tracer: cfg.tracer,
	}

	switch {
	case cfg.llm != nil:
		s.llm = cfg.llm
	case cfg.apiKey != "":
		llmOpts := []openai.Option{openai.WithToken(cfg.apiKey)}
		if cfg.baseURL != "" {
			llmOpts = append(llmOpts, openai.WithBaseURL(cfg.baseURL))
		}

		llm, err := openai.New(llmOpts...)
		if err != nil {
			s.logger.Warn("Failed to create OpenAI client, AI summaries are disabled", "error", err)

			break
		}

		s.llm = llm
	default:
		s.logger.Warn("OpenAI API key is not set, AI summaries are disabled", "env", APIKeyEnvVar)
	}

	return s
}

// Configured reports whether a completion client is available.
func (s *Service) Configured() bool {
	return s.llm != nil
}

// Execute sends one prompt and returns the summary. It never retries.
func (s *Service) Execute(ctx context.Context, input models.AiSummaryInput) (*models.AiSummaryResult, error) {
	if s.llm == nil {
		return nil, ErrNotConfigured
	}

	req := input.Resolve()

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrPromptRequired
	}

	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "ai_summary.execute",
		attribute.String(otelhelper.ModelKey, req.Model),
		attribute.Int(otelhelper.MaxTokensKey, req.MaxTokens),
		attribute.Float64(otelhelper.TemperatureKey, req.Temperature),
	)
	defer span.End()

	logger := s.logger.With("model", req.Model)
	logger.InfoContext(ctx, "Executing AI Summary")

	resp, err := s.llm.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt)},
		llms.WithModel(req.Model),
		llms.WithMaxTokens(req.MaxTokens),
		llms.WithTemperature(req.Temperature),
		openai.WithLegacyMaxTokensField(),
	)
	if err != nil && !errors.Is(err, openai.ErrEmptyResponse) {
		err = fmt.Errorf("%w: %w", ErrUpstream, err)

		logger.ErrorContext(ctx, "Failed to execute AI Summary", "error", err)
		otelhelper.SetError(span, err)

		return nil, err
	}

	summary, tokensUsed := readResponse(resp)

	otelhelper.SetOK(span, attribute.Int(otelhelper.TokensUsedKey, tokensUsed))
	logger.InfoContext(ctx, "AI Summary completed successfully", "tokens_used", tokensUsed)

	return &models.AiSummaryResult{
		Summary:    summary,
		Model:      req.Model,
		TokensUsed: tokensUsed,
	}, nil
}

// readResponse takes the first choice's content and total token usage, zero values when absent.
func readResponse(resp *llms.ContentResponse) (string, int) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", 0
	}

	choice := resp.Choices[0]

	switch total := choice.GenerationInfo["TotalTokens"].(type) {
	case int:
		return choice.Content, total
	case int64:
		return choice.Content, int(total)
	case float64:
		return choice.Content, int(total)
	default:
		return choice.Content, 0
	}
}
