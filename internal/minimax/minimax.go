// Package minimax implements the MiniMax chat-completion wire format.
// The body is openai-shaped, but success and failure share a distinct
// base_resp envelope: an HTTP 200 with a non-zero status code is still
// an error.
package minimax

import (
	"encoding/json"
	"fmt"

	"github.com/prochat/prochat/internal/chat"
)

const ProviderName = "minimax"

// ChatRequest represents the request body.
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

// ChatResponse represents the response envelope.
type ChatResponse struct {
	Choices  []Choice  `json:"choices"`
	BaseResp *BaseResp `json:"base_resp,omitempty"`
}

// Choice represents a completion choice.
type Choice struct {
	Message ChatMessage `json:"message"`
}

// BaseResp is MiniMax's status envelope, present on success and failure.
type BaseResp struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
}

// Adapter implements chat.Adapter for the MiniMax format.
type Adapter struct{}

// New creates a MiniMax adapter.
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

// Decode extracts choices[0].message.content after checking base_resp.
func (a *Adapter) Decode(body []byte) (string, error) {
	var result ChatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if result.BaseResp != nil && result.BaseResp.StatusCode != 0 {
		return "", fmt.Errorf("API error: %s", result.BaseResp.StatusMsg)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return result.Choices[0].Message.Content, nil
}

// DecodeError extracts base_resp.status_msg, falling back to a generic
// message.
func (a *Adapter) DecodeError(status int, body []byte) string {
	var result ChatResponse
	if err := json.Unmarshal(body, &result); err == nil && result.BaseResp != nil && result.BaseResp.StatusMsg != "" {
		return result.BaseResp.StatusMsg
	}
	return fmt.Sprintf("HTTP status %d", status)
}
