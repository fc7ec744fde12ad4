package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// retryCmd represents the retry command
var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Retry the last exchange on the current conversation",
	Long: `Remove the trailing assistant reply (whether it succeeded or
failed) and resend the last user message. The user message is not
duplicated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, orch, err := openApp()
		if err != nil {
			return err
		}

		conversationID := st.CurrentID()
		if conversationID == "" {
			return fmt.Errorf("no current conversation; send a message first")
		}

		reply, err := orch.Retry(cmd.Context(), conversationID)
		if err != nil {
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
	rootCmd.AddCommand(retryCmd)
}
