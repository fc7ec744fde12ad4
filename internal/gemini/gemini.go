// Package gemini implements the Gemini generateContent wire format.
package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/prochat/prochat/internal/chat"
)

const ProviderName = "gemini"

// GenerateRequest represents the request body for generateContent.
// Message content is wrapped in parts, the system prompt moves to
// systemInstruction, and sampling parameters nest under generationConfig.
type GenerateRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content represents a content item. Gemini uses "model" where other
// providers use "assistant".
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part represents a part of a content item.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig carries sampling parameters under Gemini's field names.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateResponse represents the response envelope.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
	Error      *APIError   `json:"error,omitempty"`
}

// Candidate represents a candidate response.
type Candidate struct {
	Content Content `json:"content"`
}

// APIError represents the Google error envelope.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Adapter implements chat.Adapter for the Gemini format.
type Adapter struct{}

// New creates a Gemini adapter.
func New() *Adapter {
	return &Adapter{}
}

// Encode builds the request body and URL. The endpoint is a template with
// a model slot; the API key travels as a query parameter, not a header.
func (a *Adapter) Encode(req chat.Request) (*chat.WireRequest, error) {
	contents := make([]Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := m.Role.String()
		if m.Role == chat.RoleAssistant {
			role = "model"
		}
		contents = append(contents, Content{
			Role:  role,
			Parts: []Part{{Text: m.Content}},
		})
	}

	wireReq := GenerateRequest{Contents: contents}
	if req.SystemPrompt != "" {
		wireReq.SystemInstruction = &Content{Parts: []Part{{Text: req.SystemPrompt}}}
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		wireReq.GenerationConfig = &GenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	return &chat.WireRequest{
		URL:     fmt.Sprintf(req.Endpoint, req.Model) + "?key=" + req.APIKey,
		Headers: map[string]string{},
		Body:    body,
	}, nil
}

// Decode extracts candidates[0].content.parts[0].text.
func (a *Adapter) Decode(body []byte) (string, error) {
	var result GenerateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	parts := result.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return "", fmt.Errorf("no text parts in response")
	}
	return parts[0].Text, nil
}

// DecodeError extracts error.message, falling back to a generic message.
func (a *Adapter) DecodeError(status int, body []byte) string {
	var result GenerateResponse
	if err := json.Unmarshal(body, &result); err == nil && result.Error != nil && result.Error.Message != "" {
		return result.Error.Message
	}
	return fmt.Sprintf("HTTP status %d", status)
}
