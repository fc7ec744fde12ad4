package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// conversationsCmd represents the conversations command
var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"conv"},
	Short:   "Manage conversations",
	Long: `Manage stored conversations: list, show, create, switch, rename,
clear, and delete.

Conversations are listed by most recent activity. The current
conversation receives new chat messages.`,
}

// conversationsListCmd represents the conversations list command
var conversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openApp()
		if err != nil {
			return err
		}

		conversations := st.List()
		if len(conversations) == 0 {
			fmt.Println("No conversations found.")
			fmt.Println("\nStart one with:")
			fmt.Println("  prochat chat \"your message\"")
			return nil
		}

		currentID := st.CurrentID()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, " \tID\tTITLE\tUPDATED\tMESSAGES")
		for _, conv := range conversations {
			marker := " "
			if conv.ID == currentID {
				marker = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
				marker,
				shortID(conv.ID),
				conv.Title,
				conv.UpdatedAt.Format("2006-01-02 15:04"),
				conv.MessageCount(),
			)
		}
		return w.Flush()
	},
}

// conversationsShowCmd represents the conversations show command
var conversationsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a conversation's history",
	Long: `Show a conversation's metadata and full message history.
Without an id, shows the current conversation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openApp()
		if err != nil {
			return err
		}

		id := st.CurrentID()
		if len(args) > 0 {
			id = args[0]
		}
		conv, err := st.Get(id)
		if err != nil {
			return err
		}

		fmt.Printf("Conversation: %s\n", conv.ID)
		fmt.Printf("Title: %s\n", conv.Title)
		fmt.Printf("Created: %s\n", conv.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated: %s\n", conv.UpdatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Messages: %d\n", conv.MessageCount())

		for i, msg := range conv.Messages {
			label := "You"
			if msg.Role == "assistant" {
				label = "Assistant"
			} else if msg.Role == "system" {
				label = "System"
			}
			fmt.Printf("\n[%d] %s (%s):\n%s\n",
				i+1, label, msg.Timestamp.Format("2006-01-02 15:04:05"), msg.Content)
		}
		return nil
	},
}

// conversationsNewCmd represents the conversations new command
var conversationsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new conversation and make it current",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openApp()
		if err != nil {
			return err
		}

		conv, err := st.Create()
		if err := warnPersist(err); err != nil {
			return err
		}
		fmt.Printf("Created conversation %s\n", shortID(conv.ID))
		return nil
	},
}

// conversationsSwitchCmd represents the conversations switch command
var conversationsSwitchCmd = &cobra.Command{
	Use:   "switch <id>",
	Short: "Make a conversation current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openApp()
		if err != nil {
			return err
		}

		conv, err := st.SwitchTo(args[0])
		if err := warnPersist(err); err != nil {
			return err
		}
		fmt.Printf("Switched to %s (%s, %d messages)\n", shortID(conv.ID), conv.Title, conv.MessageCount())
		return nil
	},
}

// conversationsDeleteCmd represents the conversations delete command
var conversationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation",
	Long: `Delete a conversation permanently. When the current conversation is
deleted, the next most recent one becomes current.

Warning: this action cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openApp()
		if err != nil {
			return err
		}

		if err := warnPersist(st.Delete(args[0])); err != nil {
			return err
		}
		fmt.Printf("Deleted conversation %s\n", shortID(args[0]))
		return nil
	},
}

// conversationsRenameCmd represents the conversations rename command
var conversationsRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a conversation",
	Long: `Rename a conversation. A renamed conversation keeps its title; it is
never overwritten by title auto-derivation again.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openApp()
		if err != nil {
			return err
		}

		if err := warnPersist(st.Rename(args[0], args[1])); err != nil {
			return err
		}
		fmt.Printf("Renamed conversation %s to %q\n", shortID(args[0]), args[1])
		return nil
	},
}

// conversationsClearCmd represents the conversations clear command
var conversationsClearCmd = &cobra.Command{
	Use:   "clear [id]",
	Short: "Clear a conversation's messages",
	Long: `Empty a conversation's message history and reset its title, keeping
the conversation itself. Without an id, clears the current conversation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openApp()
		if err != nil {
			return err
		}

		id := st.CurrentID()
		if len(args) > 0 {
			id = args[0]
		}
		if err := warnPersist(st.Clear(id)); err != nil {
			return err
		}
		fmt.Printf("Cleared conversation %s\n", shortID(id))
		return nil
	},
}

// shortID returns the first 8 characters of a conversation id.
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(conversationsCmd)
	conversationsCmd.AddCommand(conversationsListCmd)
	conversationsCmd.AddCommand(conversationsShowCmd)
	conversationsCmd.AddCommand(conversationsNewCmd)
	conversationsCmd.AddCommand(conversationsSwitchCmd)
	conversationsCmd.AddCommand(conversationsDeleteCmd)
	conversationsCmd.AddCommand(conversationsRenameCmd)
	conversationsCmd.AddCommand(conversationsClearCmd)
}
