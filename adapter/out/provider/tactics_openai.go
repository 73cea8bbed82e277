package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/kaptinlin/jsonrepair"
	openai "github.com/sashabaranov/go-openai"

	"tactics_server/core/domain"
	"tactics_server/core/port/out"
	"tactics_server/pkg/httputil"
)

// =============================================================================
// OpenAI Chat Provider
// =============================================================================

// DefaultModel is used when OpenAIConfig.Model is empty.
const DefaultModel = "gpt-4o-mini"

// OpenAIConfig holds chat-completion configuration.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string // optional, for proxies and tests
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// OpenAIProvider asks a chat model for the analysis in JSON mode.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

var _ out.ScoringProvider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates an OpenAI provider.
func NewOpenAIProvider(cfg *OpenAIConfig) (*OpenAIProvider, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai: api key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = httputil.NewOptimizedClient(httputil.ProviderClientConfig(cfg.Timeout))

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1500
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.4
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		maxTokens:   maxTokens,
		temperature: float32(temperature),
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string { return "openai" }

const systemPrompt = `You are a Valentine's Day gift strategist. Score one gift target and reply with a single JSON object, no prose.
Keys:
  scoreIntimacy, scoreRoi, scoreAffinity, scoreTotal: integers 0-100
  rank: one of "S","A","B","C"
  rankReason: short sentence
  successType: one of "full_success","investment","emotional","relationship_building","cut_loss","needs_review"
  giftItem: item name, giftPrice: integer yen not above the budget, giftReason: short sentence
  giftStory: hand-over story, empty string when benefit_type is tangible
  message: card message
  returnProbability: 0-1, expectedMultiplier: 0-10
  questions: at most 5 follow-up questions
  riskWarning: empty string when there is no risk
Judge intimacy only from the target's own actions and episodes.`

// Analyze sends the profile and decodes the model's reply.
func (p *OpenAIProvider) Analyze(ctx context.Context, t *domain.TargetProfile) (*domain.TargetAnalysis, error) {
	inputs, err := json.Marshal(workflowInputs(t))
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(inputs)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai completion: no choices")
	}

	res, err := parseCompletion(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return res.toAnalysis(), nil
}

// parseCompletion decodes model output, repairing it first when it is not
// valid JSON (truncated objects, trailing commas, single quotes).
func parseCompletion(content string) (*remoteResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("openai completion: empty content")
	}

	var res remoteResult
	if err := json.Unmarshal([]byte(content), &res); err == nil {
		return &res, nil
	}

	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return nil, fmt.Errorf("repair completion: %w", err)
	}
	res = remoteResult{}
	if err := json.Unmarshal([]byte(repaired), &res); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	return &res, nil
}
