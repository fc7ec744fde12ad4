// Package anthropic implements the Anthropic Messages API wire format.
package anthropic

import (
	"encoding/json"
	"fmt"

	"github.com/prochat/prochat/internal/chat"
)

const (
	ProviderName = "anthropic"

	// AnthropicVersion is the required anthropic-version header value.
	AnthropicVersion = "2023-06-01"

	// DefaultMaxTokens is used when the caller does not set a token
	// budget; the Messages API rejects requests without one.
	DefaultMaxTokens = 8192
)

// MessagesRequest represents the request body for the Messages API.
// The system prompt lives in a dedicated top-level field; the messages
// array carries only user and assistant turns.
type MessagesRequest struct {
	Model       string         `json:"model"`
	MaxTokens   int            `json:"max_tokens"`
	System      string         `json:"system,omitempty"`
	Messages    []MessageInput `json:"messages"`
	Temperature float64        `json:"temperature,omitempty"`
}

// MessageInput represents a message in the conversation.
type MessageInput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessagesResponse represents the response envelope.
type MessagesResponse struct {
	Content []ResponseContent `json:"content"`
	Error   *APIError         `json:"error,omitempty"`
}

// ResponseContent represents a content block in the response.
type ResponseContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// APIError represents an error in the API response.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Adapter implements chat.Adapter for the Anthropic format.
type Adapter struct{}

// New creates an Anthropic adapter.
func New() *Adapter {
	return &Adapter{}
}

// Encode builds the request body and the x-api-key / anthropic-version
// headers. The token budget is always present.
func (a *Adapter) Encode(req chat.Request) (*chat.WireRequest, error) {
	messages := make([]MessageInput, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, MessageInput{Role: m.Role.String(), Content: m.Content})
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	body, err := json.Marshal(MessagesRequest{
		Model:       req.Model,
		MaxTokens:   maxTokens,
		System:      req.SystemPrompt,
		Messages:    messages,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	return &chat.WireRequest{
		URL: req.Endpoint,
		Headers: map[string]string{
			"x-api-key":         req.APIKey,
			"anthropic-version": AnthropicVersion,
		},
		Body: body,
	}, nil
}

// Decode extracts the text of the first content block.
func (a *Adapter) Decode(body []byte) (string, error) {
	var result MessagesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("API error: %s", result.Error.Message)
	}
	for _, content := range result.Content {
		if content.Type == "text" && content.Text != "" {
			return content.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

// DecodeError extracts error.message, falling back to a generic message.
func (a *Adapter) DecodeError(status int, body []byte) string {
	var result MessagesResponse
	if err := json.Unmarshal(body, &result); err == nil && result.Error != nil && result.Error.Message != "" {
		return result.Error.Message
	}
	return fmt.Sprintf("HTTP status %d", status)
}
