package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config holds settings for the OpenAI-backed classifier.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// OpenAI classifies expense text with a chat-completion call that
// returns structured JSON.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      *zap.Logger
}

// NewOpenAI creates an OpenAI-backed classifier.
func NewOpenAI(cfg Config, logger *zap.Logger) *OpenAI {
	return &OpenAI{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger,
	}
}

// classificationResponse is the wire format the model is asked for.
type classificationResponse struct {
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	Merchant   string          `json:"merchant"`
	Confidence float64         `json:"confidence"`
}

const systemPrompt = "You are an expense classification assistant. " +
	"Given one informal expense description, extract the spend amount, " +
	"the merchant name, and a category from: food, transportation, " +
	"shopping, entertainment, utilities, healthcare, other. " +
	"Always respond with valid JSON."

// Classify sends the text to the model and parses the structured reply.
// The configured timeout bounds the request; expiry is reported like any
// other failure so the caller falls back locally.
func (c *OpenAI) Classify(ctx context.Context, text string) (*Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(`Classify this expense entry:

%q

Return a JSON object: {"amount": number, "merchant": "string", "category": "string", "confidence": number between 0 and 1}.
Use 0 for the amount and "" for the merchant if they are not present in the text.`, text)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Warn("Classification call failed", zap.Error(err))
		return nil, fmt.Errorf("classification call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from classification service")
	}

	content := resp.Choices[0].Message.Content

	result, err := parseClassification(content)
	if err != nil {
		c.logger.Warn("Failed to parse classification response",
			zap.Error(err),
			zap.String("content", content))
		return nil, err
	}

	c.logger.Debug("Expense classified",
		zap.String("category", result.Category),
		zap.String("merchant", result.Merchant),
		zap.Float64("confidence", result.Confidence))

	return result, nil
}

// parseClassification decodes the model's JSON reply and normalizes it
// into a Result: category lowercased, merchant trimmed. Fields the
// model omits stay at their zero values for the processor's per-field
// merge.
func parseClassification(content string) (*Result, error) {
	var parsed classificationResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse classification response: %w", err)
	}

	return &Result{
		Amount:     parsed.Amount,
		Category:   strings.ToLower(strings.TrimSpace(parsed.Category)),
		Merchant:   strings.TrimSpace(parsed.Merchant),
		Confidence: parsed.Confidence,
	}, nil
}
