package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"realestate-chatbot-be/pkg/events"
	"realestate-chatbot-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLeadsCmd() *cobra.Command {
	var durable string

	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Tail captured leads from NATS JetStream",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sub, err := nats.NewSubscriber(cfg.App.NatsURL)
			if err != nil {
				return err
			}
			defer sub.Close()

			err = sub.Subscribe(ctx, events.LeadCapturedType, durable, func(_ context.Context, e events.Event) error {
				lead := events.LeadCapturedFromPayload(e.Payload())
				color.Green("[%s] account=%s visitor=%s", e.Timestamp().Format("2006-01-02 15:04:05"), lead.AccountID, lead.VisitorID)
				fmt.Printf("  %s\n", describeLead(lead.Lead.Name, lead.Lead.Email, lead.Lead.Phone, lead.Lead.Budget, lead.Lead.PropertyInterest))
				return nil
			})
			if err != nil {
				return err
			}

			color.Cyan("Listening for %s on %s (Ctrl+C to stop)", events.LeadCapturedType, cfg.App.NatsURL)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&durable, "durable", "chat-cli-leads", "durable consumer name")
	return cmd
}
