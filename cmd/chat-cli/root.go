package main

import (
	"realestate-chatbot-be/internal/config"

	"github.com/spf13/cobra"
)

var cfg *config.Config

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat-cli",
		Short: "Terminal client for the real estate chatbot",
		Long:  "chat-cli talks to a running chatbot server the way the website widget does, and can tail captured leads from NATS.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newLeadsCmd())

	return cmd
}
