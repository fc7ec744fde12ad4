package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/prochat/prochat/internal/config"
	"github.com/prochat/prochat/internal/logging"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prochat",
	Short: "A chat client for LLM providers",
	Long: `prochat is a command-line chat client that talks to multiple LLM
providers through a single conversation store. It keeps named
conversations on disk, derives their titles from the first message, and
normalizes the wire formats of OpenAI-compatible endpoints, Anthropic,
Gemini, DashScope, and MiniMax into one contract.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/prochat/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	viper.SetEnvPrefix("PROCHAT")
	viper.AutomaticEnv()

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := filepath.Join(home, ".config", "prochat")

	defaults := config.NewDefaultConfig(filepath.Join(userConfigDir, "prompts"))
	viper.SetDefault("model", defaults.Model)
	viper.SetDefault("context_policy", defaults.ContextPolicy)
	viper.SetDefault("system_prompt", defaults.SystemPrompt)
	viper.SetDefault("max_tokens", defaults.MaxTokens)
	viper.SetDefault("temperature", defaults.Temperature)
	viper.SetDefault("voice_output", defaults.VoiceOutput)
	viper.SetDefault("prompt_dirs", defaults.PromptDirs)
	viper.SetDefault("openrouter_token", defaults.OpenRouterToken)
	viper.SetDefault("anthropic_token", defaults.AnthropicToken)
	viper.SetDefault("gemini_token", defaults.GeminiToken)
	viper.SetDefault("dashscope_token", defaults.DashScopeToken)
	viper.SetDefault("minimax_token", defaults.MiniMaxToken)

	viper.BindEnv("model", "PROCHAT_MODEL")
	viper.BindEnv("context_policy", "PROCHAT_CONTEXT_POLICY")
	viper.BindEnv("openrouter_token", "PROCHAT_OPENROUTER_TOKEN")
	viper.BindEnv("anthropic_token", "PROCHAT_ANTHROPIC_TOKEN")
	viper.BindEnv("gemini_token", "PROCHAT_GEMINI_TOKEN")
	viper.BindEnv("dashscope_token", "PROCHAT_DASHSCOPE_TOKEN")
	viper.BindEnv("minimax_token", "PROCHAT_MINIMAX_TOKEN")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(userConfigDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
