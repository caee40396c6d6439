package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"realestate-chatbot-be/internal/pkg/logger"
	"realestate-chatbot-be/pkg/chat"
	"realestate-chatbot-be/pkg/chatclient"
	"realestate-chatbot-be/pkg/session"
	"realestate-chatbot-be/pkg/session/drivers"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

type chatOptions struct {
	server    string
	accountID string
	storage   string
	scope     string
	language  string
	timeout   time.Duration
}

func newChatCmd() *cobra.Command {
	opts := &chatOptions{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.server == "" {
				opts.server = cfg.App.BaseURL
			}
			return runChat(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.server, "server", "", "chatbot server base URL (default APP_BASE_URL)")
	cmd.Flags().StringVar(&opts.accountID, "account", "", "account id; empty chats with the product demo")
	cmd.Flags().StringVar(&opts.storage, "storage", "memory", "where to keep the conversation (memory, redis)")
	cmd.Flags().StringVar(&opts.scope, "scope", "cli", "conversation scope key")
	cmd.Flags().StringVar(&opts.language, "lang", "en", "language for client-side error messages")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "per-turn request timeout")

	return cmd
}

func openStorage(kind string) (session.Storage, func(), error) {
	if drivers.StorageType(kind) != drivers.StorageTypeRedis {
		storage, err := drivers.NewStorage(drivers.StorageType(kind))
		return storage, func() {}, err
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	storage, err := drivers.NewStorage(drivers.StorageTypeRedis,
		drivers.WithRedisClient(rdb),
		drivers.WithRedisTTL(30*24*time.Hour),
	)
	return storage, func() { _ = rdb.Close() }, err
}

func runChat(parent context.Context, opts *chatOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	storage, closeStorage, err := openStorage(opts.storage)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", opts.storage, err)
	}
	defer closeStorage()

	log := logger.NewNopLogger()
	sess := session.NewManager(storage, opts.scope, cfg.Chatbot.WelcomeMessage, log)
	sess.Restore(ctx)

	typing := color.New(color.Faint)
	orch := chatclient.NewOrchestrator(
		chatclient.NewHTTPTransport(opts.server, opts.timeout),
		sess,
		log,
		chatclient.Options{
			AccountID: opts.accountID,
			Language:  opts.language,
			Hooks: chatclient.Hooks{
				OnTyping: func(on bool) {
					if on {
						typing.Print("typing...\r")
					} else {
						fmt.Print("          \r")
					}
				},
			},
		},
	)

	for _, m := range orch.Messages() {
		printMessage(m)
	}
	color.New(color.Faint).Println("(Ctrl+C to quit)")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		color.New(color.FgCyan, color.Bold).Print("you> ")
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case line, ok = <-lines:
			if !ok {
				return nil
			}
		}

		res, err := orch.Send(ctx, line)
		switch {
		case errors.Is(err, chatclient.ErrEmptyMessage):
			continue
		case err != nil:
			color.Red("%s", orch.ErrorIndicator())
			continue
		}

		printMessage(chat.Message{Role: chat.RoleBot, Content: res.Response, Properties: res.PropertyRecommendations})
		if res.Source == chat.SourceError {
			color.Yellow("(the assistant had trouble answering)")
		}
		if info := orch.VisitorInfo(); !info.IsEmpty() && res.LeadInfo != nil {
			color.New(color.Faint).Printf("noted: %s\n", describeLead(info.Name, info.Email, info.Phone, info.Budget, info.PropertyInterest))
		}
	}
}

func printMessage(m chat.Message) {
	if m.Role == chat.RoleUser {
		color.New(color.FgCyan).Printf("you> %s\n", m.Content)
		return
	}
	color.New(color.FgGreen).Printf("bot> %s\n", m.Content)
	for _, p := range m.Properties {
		line := fmt.Sprintf("  * %s, %s, $%.0f", p.Title, p.Location, p.Price)
		if p.Highlight != "" {
			line += " (" + p.Highlight + ")"
		}
		color.New(color.FgHiBlack).Printf("%s  %s\n", line, p.URL)
	}
}

func describeLead(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
