package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/vibewatch-backend/config"
)

// Client defines the chat completion interface the pipeline depends on
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Message is one chat message in OpenAI wire format
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIClient calls the OpenAI chat completions API
type OpenAIClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOpenAIClient creates a chat client with validation and defaults
func NewOpenAIClient(cfg *config.OpenAIConfig) (*OpenAIClient, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	model := cfg.ChatModel
	if model == "" {
		model = "gpt-4o"
	}

	temperature := 0.7
	if cfg.Temperature != "" {
		parsed, err := strconv.ParseFloat(cfg.Temperature, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid temperature '%s': %v", cfg.Temperature, err)
		}
		temperature = parsed
	}

	timeout := 60 * time.Second
	if cfg.HTTPTimeout != "" {
		parsed, err := time.ParseDuration(cfg.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP timeout '%s': %v", cfg.HTTPTimeout, err)
		}
		timeout = parsed
	}

	return &OpenAIClient{
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Chat sends the messages as a single-shot completion and returns the raw
// assistant text
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat api error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from model")
	}

	return chatResp.Choices[0].Message.Content, nil
}
