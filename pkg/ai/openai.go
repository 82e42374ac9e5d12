package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "codegrader",
		Subsystem: "ai",
		Name:      "scoring_duration_seconds",
		Help:      "Duration of AI scoring requests",
	}, []string{"model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codegrader",
		Subsystem: "ai",
		Name:      "scoring_failures_total",
		Help:      "Number of AI scoring failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI scorer.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIScorer implements Scorer against the OpenAI chat completion API.
type OpenAIScorer struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIScorer builds a new scorer using the provided configuration.
func NewOpenAIScorer(cfg OpenAIConfig) (*OpenAIScorer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}

	tracer := otel.Tracer("github.com/codegrader/codegrader-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIScorer{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Score sends the grading request to OpenAI and parses the response.
func (s *OpenAIScorer) Score(parent context.Context, input ScoreInput) (ScoreResult, error) {
	ctx, span := s.tracer.Start(parent, "openai.score", trace.WithAttributes(
		attribute.String("model", s.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: scorerSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildScoringPrompt(input),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	duration := time.Since(start)
	aiDuration.WithLabelValues(s.cfg.Model).Observe(duration.Seconds())
	if err != nil {
		aiFailures.WithLabelValues(s.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ScoreResult{}, fmt.Errorf("openai score: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(s.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ScoreResult{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	result, err := parseScoreResponse(content)
	if err != nil {
		aiFailures.WithLabelValues(s.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ScoreResult{}, err
	}

	return result, nil
}

func scorerSystemPrompt() string {
	return "You are an expert code reviewer and grader. Evaluate the submitted code strictly against the provided criteria. " +
		"Respond with a JSON object containing score (integer 0-100), feedback (string), strengths (array of strings), " +
		"weakpoints (array of strings), cheating_detected (boolean), cheating_reason (string, only when cheating is suspected), " +
		"and reasoning (string). Be fair and constructive. If the code fails to run or has syntax errors, give a low score and explain why."
}

func buildScoringPrompt(input ScoreInput) string {
	builder := strings.Builder{}
	builder.WriteString("### Criteria:\n")
	builder.WriteString(input.Criteria)
	builder.WriteString("\n\n### Submitted Code:\n```\n")
	builder.WriteString(input.Code)
	builder.WriteString("\n```\nReturn JSON.")
	return builder.String()
}

func parseScoreResponse(content string) (ScoreResult, error) {
	var result ScoreResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return ScoreResult{}, fmt.Errorf("parse score json: %w", err)
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}

	if result.Strengths == nil {
		result.Strengths = []string{}
	}
	if result.Weakpoints == nil {
		result.Weakpoints = []string{}
	}

	return result, nil
}
