package backends

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const defaultAPIURL = "https://api.openai.com/v1"

// samplingTemperature is fixed for calendar generation; variety comes from
// the business input, not from per-request tuning.
const samplingTemperature = 0.8

// OpenAIBackend calls one model through the OpenAI chat completions API.
// The fallback chain holds one instance per model identifier.
type OpenAIBackend struct {
	model  string
	apiKey string
	apiURL string
	client *resty.Client
}

var _ Backend = (*OpenAIBackend)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewOpenAIBackend creates a backend for a single model. apiURL may be empty
// to use the public OpenAI endpoint; it is overridable for compatible
// gateways and for tests.
func NewOpenAIBackend(model, apiKey, apiURL string) *OpenAIBackend {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &OpenAIBackend{
		model:  model,
		apiKey: apiKey,
		apiURL: apiURL,
		client: resty.New().SetTimeout(120 * time.Second),
	}
}

func (b *OpenAIBackend) GetName() string {
	return b.model
}

// SupportsJSONMode reports whether the model accepts the json_object
// response format. gpt-3.5-turbo does not; it is steered through the system
// instruction instead.
func (b *OpenAIBackend) SupportsJSONMode() bool {
	return b.model != "gpt-3.5-turbo"
}

// Generate sends the prompt to the model and returns the raw response text.
func (b *OpenAIBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: b.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: samplingTemperature,
	}
	if b.SupportsJSONMode() {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	logrus.Debugf("Requesting completion from model %s", b.model)

	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+b.apiKey).
		SetBody(reqBody).
		Post(b.apiURL + "/chat/completions")

	if err != nil {
		return "", fmt.Errorf("request to model %s failed: %w", b.model, err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(resp.Body(), &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response from model %s: %w", b.model, err)
	}

	if resp.StatusCode() != 200 {
		if chatResp.Error != nil {
			return "", fmt.Errorf("model %s returned status %d: %s", b.model, resp.StatusCode(), chatResp.Error.Message)
		}
		return "", fmt.Errorf("model %s returned status %d", b.model, resp.StatusCode())
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from model %s", b.model)
	}

	return chatResp.Choices[0].Message.Content, nil
}
