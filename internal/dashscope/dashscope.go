// Package dashscope implements the DashScope (Qwen) text-generation wire
// format.
package dashscope

import (
	"encoding/json"
	"fmt"

	"github.com/prochat/prochat/internal/chat"
)

const ProviderName = "dashscope"

// GenerationRequest represents the request body. The conversation nests
// under input.messages; sampling parameters live in a separate parameters
// object.
type GenerationRequest struct {
	Model      string     `json:"model"`
	Input      Input      `json:"input"`
	Parameters Parameters `json:"parameters"`
}

// Input wraps the message list.
type Input struct {
	Messages []MessageInput `json:"messages"`
}

// MessageInput represents a message in the conversation.
type MessageInput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Parameters carries sampling configuration.
type Parameters struct {
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// GenerationResponse represents the response envelope. On failure the
// same shape carries code and message instead of output.
type GenerationResponse struct {
	Output  *Output `json:"output,omitempty"`
	Code    string  `json:"code,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Output holds the generated text.
type Output struct {
	Text string `json:"text"`
}

// Adapter implements chat.Adapter for the DashScope format.
type Adapter struct{}

// New creates a DashScope adapter.
func New() *Adapter {
	return &Adapter{}
}

// Encode builds the request body and bearer-token header.
func (a *Adapter) Encode(req chat.Request) (*chat.WireRequest, error) {
	messages := make([]MessageInput, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, MessageInput{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		messages = append(messages, MessageInput{Role: m.Role.String(), Content: m.Content})
	}

	body, err := json.Marshal(GenerationRequest{
		Model: req.Model,
		Input: Input{Messages: messages},
		Parameters: Parameters{
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		},
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

// Decode extracts output.text.
func (a *Adapter) Decode(body []byte) (string, error) {
	var result GenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if result.Output == nil || result.Output.Text == "" {
		if result.Message != "" {
			return "", fmt.Errorf("API error: %s", result.Message)
		}
		return "", fmt.Errorf("no output in response")
	}
	return result.Output.Text, nil
}

// DecodeError extracts the bare message field, falling back to a generic
// message.
func (a *Adapter) DecodeError(status int, body []byte) string {
	var result GenerationResponse
	if err := json.Unmarshal(body, &result); err == nil && result.Message != "" {
		return result.Message
	}
	return fmt.Sprintf("HTTP status %d", status)
}
