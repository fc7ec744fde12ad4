// Package config holds the user settings: model, context policy, sampling
// parameters, and per-provider credentials. Settings are loaded once at
// startup through viper and written back only by an explicit save, which
// rewrites the whole file atomically.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/prochat/prochat/internal/chat"
	"github.com/prochat/prochat/internal/util"
)

// DefaultSystemPrompt is sent with every request unless overridden in the
// config file or by a prompt template.
const DefaultSystemPrompt = "You are a helpful AI assistant. " +
	"When writing code, you are precise and produce clean, working code. " +
	"You format responses using markdown. Be concise but thorough."

// Config holds the user-facing settings.
type Config struct {
	Model         string  `toml:"model" mapstructure:"model"`
	ContextPolicy string  `toml:"context_policy" mapstructure:"context_policy"`
	SystemPrompt  string  `toml:"system_prompt" mapstructure:"system_prompt"`
	MaxTokens     int     `toml:"max_tokens" mapstructure:"max_tokens"`
	Temperature   float64 `toml:"temperature" mapstructure:"temperature"`

	// VoiceOutput toggles spoken replies in clients that support them.
	// Carried in the settings record; unused by the core.
	VoiceOutput bool `toml:"voice_output" mapstructure:"voice_output"`

	PromptDirs []string `toml:"prompt_dirs" mapstructure:"prompt_dirs"`
	DataDir    string   `toml:"data_dir" mapstructure:"data_dir"`

	// Per-provider credentials, keyed by registry provider key. Values
	// support $VAR and ${VAR} environment references.
	OpenRouterToken string `toml:"openrouter_token" mapstructure:"openrouter_token"`
	AnthropicToken  string `toml:"anthropic_token" mapstructure:"anthropic_token"`
	GeminiToken     string `toml:"gemini_token" mapstructure:"gemini_token"`
	DashScopeToken  string `toml:"dashscope_token" mapstructure:"dashscope_token"`
	MiniMaxToken    string `toml:"minimax_token" mapstructure:"minimax_token"`
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig(promptDir string) *Config {
	return &Config{
		Model:           "claude-sonnet-4-20250514",
		ContextPolicy:   string(chat.PolicyFullHistory),
		SystemPrompt:    DefaultSystemPrompt,
		MaxTokens:       8192,
		Temperature:     0.7,
		VoiceOutput:     false,
		PromptDirs:      []string{promptDir},
		OpenRouterToken: "$OPENROUTER_API_KEY",
		AnthropicToken:  "$ANTHROPIC_API_KEY",
		GeminiToken:     "$GEMINI_API_KEY",
		DashScopeToken:  "$DASHSCOPE_API_KEY",
		MiniMaxToken:    "$MINIMAX_API_KEY",
	}
}

// LoadConfig loads configuration from viper.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return config, nil
}

// APIKeys returns the credential map keyed by provider, with environment
// references expanded. Unset references expand to "".
func (c *Config) APIKeys() map[string]string {
	return map[string]string{
		"openrouter": expandEnvVar(c.OpenRouterToken),
		"anthropic":  expandEnvVar(c.AnthropicToken),
		"gemini":     expandEnvVar(c.GeminiToken),
		"dashscope":  expandEnvVar(c.DashScopeToken),
		"minimax":    expandEnvVar(c.MiniMaxToken),
	}
}

// Policy returns the configured context policy, defaulting to full
// history when the value is missing or unrecognized.
func (c *Config) Policy() chat.ContextPolicy {
	p := chat.ContextPolicy(c.ContextPolicy)
	if !p.Valid() {
		return chat.PolicyFullHistory
	}
	return p
}

// Settings builds the orchestrator settings snapshot.
func (c *Config) Settings() chat.Settings {
	prompt := c.SystemPrompt
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	return chat.Settings{
		Model:        c.Model,
		Policy:       c.Policy(),
		SystemPrompt: prompt,
		MaxTokens:    c.MaxTokens,
		Temperature:  c.Temperature,
		APIKeys:      c.APIKeys(),
	}
}

// Save writes the whole configuration to path atomically. The save is
// all-or-nothing: either the complete new settings tuple lands on disk or
// the previous file stays intact.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Dir returns the directory holding the active config file, falling back
// to the default user config directory.
func Dir() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		dir := filepath.Dir(configFile)
		if !filepath.IsAbs(dir) {
			cwd, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("getting working directory: %w", err)
			}
			dir = filepath.Join(cwd, dir)
		}
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "prochat"), nil
}

// SnapshotPath returns the location of the conversation snapshot, honoring
// the data_dir override.
func (c *Config) SnapshotPath() (string, error) {
	if c.DataDir != "" {
		return filepath.Join(c.DataDir, "conversations.json"), nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "conversations.json"), nil
}
