// Package registry holds the static provider table and resolves model
// identifiers to provider descriptors.
package registry

import (
	"github.com/prochat/prochat/internal/anthropic"
	"github.com/prochat/prochat/internal/chat"
	"github.com/prochat/prochat/internal/dashscope"
	"github.com/prochat/prochat/internal/gemini"
	"github.com/prochat/prochat/internal/minimax"
	"github.com/prochat/prochat/internal/openai"
)

// Registry resolves model identifiers against an ordered descriptor table.
type Registry struct {
	descriptors []chat.Descriptor
}

// Default returns the registry with the built-in provider table.
// Registration order matters: when two providers claim the same model
// identifier, resolution deterministically picks the earlier entry.
func Default() *Registry {
	return &Registry{descriptors: []chat.Descriptor{
		{
			Key:      "openrouter",
			Endpoint: "https://openrouter.ai/api/v1/chat/completions",
			Adapter:  openai.New(),
			Models: []string{
				"x-ai/grok-4",
				"openai/gpt-4o",
				"openai/gpt-4.1",
				"deepseek/deepseek-chat",
				"meta-llama/llama-3.1-70b-instruct",
			},
		},
		{
			Key:      "anthropic",
			Endpoint: "https://api.anthropic.com/v1/messages",
			Adapter:  anthropic.New(),
			Models: []string{
				"claude-sonnet-4-20250514",
				"claude-opus-4-20250514",
				"claude-3-5-sonnet-20241022",
				"claude-3-5-haiku-20241022",
			},
		},
		{
			Key:      "gemini",
			Endpoint: "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
			Adapter:  gemini.New(),
			Models: []string{
				"gemini-2.0-flash",
				"gemini-2.0-pro",
				"gemini-1.5-pro",
				"gemini-1.5-flash",
			},
		},
		{
			Key:      "dashscope",
			Endpoint: "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation",
			Adapter:  dashscope.New(),
			Models: []string{
				"qwen-turbo",
				"qwen-plus",
				"qwen-max",
			},
		},
		{
			Key:      "minimax",
			Endpoint: "https://api.minimax.chat/v1/text/chatcompletion_v2",
			Adapter:  minimax.New(),
			Models: []string{
				"abab6.5s-chat",
				"MiniMax-Text-01",
			},
		},
	}}
}

// New creates a registry from an explicit descriptor list, in resolution
// order.
func New(descriptors []chat.Descriptor) *Registry {
	return &Registry{descriptors: descriptors}
}

// Resolve scans the table in registration order and returns the first
// descriptor whose model list contains modelID. Matching is case-sensitive
// and exact; a miss yields *chat.UnknownModelError. Resolution is a pure
// lookup with no side effects and must precede any network attempt.
func (r *Registry) Resolve(modelID string) (*chat.Descriptor, error) {
	for i := range r.descriptors {
		if r.descriptors[i].Supports(modelID) {
			return &r.descriptors[i], nil
		}
	}
	return nil, &chat.UnknownModelError{Model: modelID}
}

// Descriptors returns the table in registration order.
func (r *Registry) Descriptors() []chat.Descriptor {
	return r.descriptors
}
