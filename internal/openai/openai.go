// Package openai implements the openai-compatible chat-completions wire
// format. Several aggregators and providers (OpenRouter, xAI, DeepSeek)
// speak this dialect verbatim.
package openai

import (
	"encoding/json"
	"fmt"

	"github.com/prochat/prochat/internal/chat"
)

const ProviderName = "openai-compatible"

// ChatRequest represents the request body for a chat-completions call.
// All roles, including system, travel inline in one ordered messages list.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatMessage represents a single message in the request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse represents the success envelope.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// Choice represents a completion choice.
type Choice struct {
	Message ChatMessage `json:"message"`
}

// ErrorResponse represents the error envelope.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// APIError carries the provider's error detail.
type APIError struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// Adapter implements chat.Adapter for the openai-compatible format.
type Adapter struct{}

// New creates an openai-compatible adapter.
func New() *Adapter {
	return &Adapter{}
}

// Encode builds the request body and bearer-token header.
func (a *Adapter) Encode(req chat.Request) (*chat.WireRequest, error) {
	messages := make([]ChatMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		messages = append(messages, ChatMessage{Role: m.Role.String(), Content: m.Content})
	}

	body, err := json.Marshal(ChatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	return &chat.WireRequest{
		URL: req.Endpoint,
		Headers: map[string]string{
			"Authorization": "Bearer " + req.APIKey,
		},
		Body: body,
	}, nil
}

// Decode extracts choices[0].message.content.
func (a *Adapter) Decode(body []byte) (string, error) {
	var result ChatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return result.Choices[0].Message.Content, nil
}

// DecodeError extracts error.message, falling back to a generic message.
func (a *Adapter) DecodeError(status int, body []byte) string {
	var result ErrorResponse
	if err := json.Unmarshal(body, &result); err == nil && result.Error != nil && result.Error.Message != "" {
		return result.Error.Message
	}
	return fmt.Sprintf("HTTP status %d", status)
}
