package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/venturegrill/api/internal/models"
	"github.com/venturegrill/api/internal/validation"
	"go.uber.org/zap"
)

const (
	// DefaultModel is the model used when none is configured
	DefaultModel = "gpt-4o-mini"
	// DefaultBaseURL is the default OpenAI API base URL
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout bounds each completion call
	DefaultTimeout = 60 * time.Second
)

// OpenAIRoaster implements Provider using OpenAI chat completions
type OpenAIRoaster struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

var _ Provider = (*OpenAIRoaster)(nil)

// NewOpenAIRoaster creates a roast generator backed by the OpenAI API
func NewOpenAIRoaster(apiKey, baseURL, model string, logger *zap.Logger, debugMode bool) *OpenAIRoaster {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(&http.Client{Timeout: DefaultTimeout}),
	)

	return &OpenAIRoaster{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// GenerateRoast asks the model for a structured critique of the pitch
func (p *OpenAIRoaster) GenerateRoast(ctx context.Context, req *models.RoastRequest) (*models.RoastResponse, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt(req.RoastLevel)),
		openai.UserMessage(userPrompt(req)),
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: messages,
	})
	latency := time.Since(start)

	if err != nil {
		if p.logger != nil {
			p.logger.Error("llm_api_error",
				zap.String("model", p.model),
				zap.Int64("latency_ms", latency.Milliseconds()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("failed to generate roast: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in response")
	}

	content := resp.Choices[0].Message.Content
	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("model", p.model),
			zap.Int64("latency_ms", latency.Milliseconds()),
			zap.Int("content_length", len(content)),
		)
	}

	return parseRoastResponse(content)
}

// systemPrompt selects the persona for one roast level
func systemPrompt(level models.RoastLevel) string {
	base := `You are a startup critic. Respond ONLY with a JSON object with the keys ` +
		`"brutal_roast", "honest_feedback", "competitor_reality_check", ` +
		`"survival_tips" (an array of short strings) and "pitch_rewrite". `

	switch level {
	case models.RoastLevelSoft:
		return base + "Be gentle and encouraging; critique with kindness."
	case models.RoastLevelNuclear:
		return base + "Hold absolutely nothing back; be savage but accurate."
	default:
		return base + "Be direct and honest without cruelty."
	}
}

// userPrompt renders the sanitized pitch fields into the prompt body
func userPrompt(req *models.RoastRequest) string {
	return fmt.Sprintf(
		"Startup name: %s\nIdea: %s\nTarget users: %s\nBudget: %s\nRoast level: %s",
		validation.SanitizeText(req.StartupName),
		validation.SanitizeText(req.IdeaDescription),
		validation.SanitizeText(req.TargetUsers),
		validation.SanitizeText(req.Budget),
		req.RoastLevel,
	)
}

// parseRoastResponse decodes the model output, tolerating prose around the
// JSON object by trimming to the outermost braces before retrying.
func parseRoastResponse(content string) (*models.RoastResponse, error) {
	var resp models.RoastResponse

	raw := content
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		start := bytes.Index([]byte(raw), []byte("{"))
		end := bytes.LastIndex([]byte(raw), []byte("}"))
		if start != -1 && end != -1 && end > start {
			raw = raw[start : end+1]
		}
		if err := json.Unmarshal([]byte(raw), &resp); err != nil {
			return nil, fmt.Errorf("failed to parse roast response: %w", err)
		}
	}

	if resp.BrutalRoast == "" && resp.HonestFeedback == "" {
		return nil, errors.New("roast response missing required fields")
	}
	if resp.SurvivalTips == nil {
		resp.SurvivalTips = []string{}
	}

	return &resp, nil
}
