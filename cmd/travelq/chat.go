package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/travel-query-service/internal/config"
	"github.com/couchcryptid/travel-query-service/internal/domain"
	"github.com/couchcryptid/travel-query-service/internal/observability"
	"github.com/spf13/cobra"
)

// QueryProcessor answers one free-form travel query.
type QueryProcessor interface {
	ProcessQuery(ctx context.Context, text string) string
}

func newAskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <query>",
		Short: "Answer a single travel question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProcessor(cmd.Context(), func(ctx context.Context, p QueryProcessor) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), p.ProcessQuery(ctx, strings.Join(args, " ")))
				return err
			})
		},
	}
}

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat interactively; type exit, quit, or q to leave",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProcessor(cmd.Context(), func(ctx context.Context, p QueryProcessor) error {
				return chat(ctx, p, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
}

func withProcessor(ctx context.Context, fn func(context.Context, QueryProcessor) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewConsoleLogger(cfg)
	orch, cleanup := buildOrchestrator(ctx, cfg, observability.NewMetrics(), logger)
	defer cleanup()
	return fn(ctx, orch)
}

// chat answers lines from in until a quit word, EOF, or cancellation.
func chat(ctx context.Context, p QueryProcessor, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, domain.CurrentGreeting())
	fmt.Fprintln(out, "(type 'exit', 'quit', or 'q' to leave)")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit", "q":
			fmt.Fprintln(out, domain.GoodbyeText)
			return nil
		}

		fmt.Fprintf(out, "\nAgent: %s\n", p.ProcessQuery(ctx, line))
		if ctx.Err() != nil {
			return nil
		}
	}
}
