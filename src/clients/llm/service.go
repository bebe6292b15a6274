package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"tracker/src/config"
	"tracker/src/utils"
)

var ErrEmptyResponse = errors.New("llm: empty response")

const systemInstruction = "You are a transaction extractor. Respond ONLY with a valid JSON object. " +
	"Do not include any explanations, markdown, or additional text."

// contentGenerator is satisfied by (*genai.Client).Models.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type LLMServiceClientI interface {
	Extract(ctx context.Context, text string, today time.Time) (*Extraction, error)
}

type LLMServiceClient struct {
	models contentGenerator
	model  string
}

// NewClient creates a Gemini backed extractor.
func NewClient(ctx context.Context, cfg *config.Config) (*LLMServiceClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.ExternalClients.LLM.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing Gemini's client: %w", err)
	}
	return &LLMServiceClient{models: client.Models, model: cfg.ExternalClients.LLM.Model}, nil
}

func newClientWithGenerator(generator contentGenerator, model string) *LLMServiceClient {
	return &LLMServiceClient{models: generator, model: model}
}

// Extract asks the model for the transaction described by text. today is
// handed to the model so relative dates resolve against the caller's clock.
func (c *LLMServiceClient) Extract(ctx context.Context, text string, today time.Time) (*Extraction, error) {
	prompt := fmt.Sprintf(`Extract transaction details from this sentence: %q

Use these keys: date (YYYY-MM-DD), type (income or expense), category, description, price (float).
If date is missing, use today's date: %s.`, text, today.Format(utils.ShortDashDateLayout))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    extractionSchema,
		Temperature:       genai.Ptr[float32](0.2),
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("LLM API error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Text())
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimSuffix(strings.TrimPrefix(content, "```"), "```")
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyResponse
	}

	var extraction Extraction
	if err := json.Unmarshal([]byte(content), &extraction); err != nil {
		return nil, fmt.Errorf("invalid JSON from LLM: %s", content)
	}
	return &extraction, nil
}

var _ LLMServiceClientI = (*LLMServiceClient)(nil)
