package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prochat/prochat/internal/prompt"
)

var (
	chatModel        string
	chatPolicy       string
	chatPrompt       string
	chatConversation string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send a message on the current conversation",
	Long: `Send a message to the configured model and print the reply.

The message lands on the current conversation; a fresh conversation is
created when none exists. The conversation's title is derived from its
first message.

If no message is provided as an argument, it is read from stdin.

A prompt template (--prompt) is a TOML file with "system" and "user"
fields; {{input}} in either is replaced with the message.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, orch, err := openApp()
		if err != nil {
			return err
		}

		var message string
		if len(args) > 0 {
			message = strings.Join(args, " ")
		} else {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			message = strings.TrimSpace(string(input))
		}

		if chatModel != "" {
			cfg.Model = chatModel
		}
		if chatPolicy != "" {
			cfg.ContextPolicy = chatPolicy
		}
		if chatPrompt != "" {
			tmpl, err := prompt.Find(chatPrompt, cfg.PromptDirs)
			if err != nil {
				return err
			}
			system, user := tmpl.Format(message)
			if system != "" {
				cfg.SystemPrompt = system
			}
			if tmpl.Model != nil {
				cfg.Model = *tmpl.Model
			}
			message = user
		}

		conversationID := st.CurrentID()
		if chatConversation != "" {
			conv, err := st.SwitchTo(chatConversation)
			if err := warnPersist(err); err != nil {
				return fmt.Errorf("switching conversation: %w", err)
			}
			conversationID = conv.ID
		} else if conversationID == "" {
			conv, err := st.Create()
			if err := warnPersist(err); err != nil {
				return fmt.Errorf("creating conversation: %w", err)
			}
			conversationID = conv.ID
		}

		reply, err := orch.SendMessage(cmd.Context(), conversationID, message)
		if err != nil {
			// Recovered failures already landed in the transcript; report
			// the status and keep the exit code non-zero.
			if reply != "" {
				fmt.Println(reply)
			}
			return err
		}

		fmt.Println(reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "model identifier (overrides config)")
	chatCmd.Flags().StringVar(&chatPolicy, "policy", "", "context policy: full-history or last-turn-only")
	chatCmd.Flags().StringVarP(&chatPrompt, "prompt", "p", "", "prompt template name")
	chatCmd.Flags().StringVarP(&chatConversation, "conversation", "c", "", "conversation id to send on")
}
