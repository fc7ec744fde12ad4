package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prochat/prochat/internal/chat"
	"github.com/prochat/prochat/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	Long: `Show the active configuration with credentials masked.

Use "config set" to change a value and write the file back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("model: %s\n", cfg.Model)
		fmt.Printf("context_policy: %s\n", cfg.Policy())
		fmt.Printf("max_tokens: %d\n", cfg.MaxTokens)
		fmt.Printf("temperature: %g\n", cfg.Temperature)
		fmt.Printf("voice_output: %t\n", cfg.VoiceOutput)
		fmt.Printf("system_prompt: %s\n", truncatePrompt(cfg.SystemPrompt))
		fmt.Printf("prompt_dirs: %s\n", strings.Join(cfg.PromptDirs, ", "))
		if cfg.DataDir != "" {
			fmt.Printf("data_dir: %s\n", cfg.DataDir)
		}
		fmt.Printf("openrouter_token: %s\n", maskToken(cfg.OpenRouterToken))
		fmt.Printf("anthropic_token: %s\n", maskToken(cfg.AnthropicToken))
		fmt.Printf("gemini_token: %s\n", maskToken(cfg.GeminiToken))
		fmt.Printf("dashscope_token: %s\n", maskToken(cfg.DashScopeToken))
		fmt.Printf("minimax_token: %s\n", maskToken(cfg.MiniMaxToken))

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Printf("\nConfig file: %s\n", used)
		}
		return nil
	},
}

// configSetCmd represents the config set command
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value and save",
	Long: `Set a configuration value and rewrite the config file.

Settable keys: model, context_policy, system_prompt, max_tokens,
temperature, voice_output, data_dir, openrouter_token, anthropic_token,
gemini_token, dashscope_token, minimax_token.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		switch key {
		case "model":
			cfg.Model = value
		case "context_policy":
			if !chat.ContextPolicy(value).Valid() {
				return fmt.Errorf("invalid context policy %q (want %s or %s)",
					value, chat.PolicyFullHistory, chat.PolicyLastTurn)
			}
			cfg.ContextPolicy = value
		case "system_prompt":
			cfg.SystemPrompt = value
		case "max_tokens":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid max_tokens %q: %w", value, err)
			}
			cfg.MaxTokens = n
		case "temperature":
			t, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("invalid temperature %q: %w", value, err)
			}
			cfg.Temperature = t
		case "voice_output":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid voice_output %q: %w", value, err)
			}
			cfg.VoiceOutput = b
		case "data_dir":
			cfg.DataDir = value
		case "openrouter_token":
			cfg.OpenRouterToken = value
		case "anthropic_token":
			cfg.AnthropicToken = value
		case "gemini_token":
			cfg.GeminiToken = value
		case "dashscope_token":
			cfg.DashScopeToken = value
		case "minimax_token":
			cfg.MiniMaxToken = value
		default:
			return fmt.Errorf("unknown config key %q", key)
		}

		path := viper.ConfigFileUsed()
		if path == "" {
			dir, err := config.Dir()
			if err != nil {
				return err
			}
			path = filepath.Join(dir, "config.toml")
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Printf("Set %s and saved %s\n", key, path)
		return nil
	},
}

// maskToken hides all but the edges of a credential. Environment
// references are shown as-is since they carry no secret.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if strings.HasPrefix(token, "$") {
		return token
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// truncatePrompt keeps config output to one line per field.
func truncatePrompt(prompt string) string {
	prompt = strings.ReplaceAll(prompt, "\n", " ")
	if len(prompt) > 60 {
		return prompt[:60] + "..."
	}
	return prompt
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
}
