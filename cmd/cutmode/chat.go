package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cnckit/cutmode"
	"github.com/cnckit/cutmode/internal/logging"
	"github.com/cnckit/cutmode/pkg/domain"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive advisor session",
	Long: `Starts a terminal conversation: answer one question per line until the
advisor prints the recommended cutting parameters. Send /start to begin
again, /quit to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(level))

		eng, err := cutmode.New(cutmode.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("error initializing engine: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		sessionID := uuid.NewString()
		out := termenv.NewOutput(os.Stdout)

		reply, err := eng.Start(ctx, sessionID)
		if err != nil {
			return err
		}
		printReply(out, reply)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Fprint(out, out.String("> ").Bold())
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			if strings.EqualFold(input, "/quit") || strings.EqualFold(input, "/exit") {
				break
			}

			reply, err = eng.Advance(ctx, sessionID, input)
			if err != nil {
				fmt.Fprintln(out, out.String(fmt.Sprintf("Error: %v", err)).Foreground(termenv.ANSIRed))
				continue
			}
			printReply(out, reply)
		}
		return scanner.Err()
	},
}

// printReply renders a prompt with its options, or the terminal message.
func printReply(out *termenv.Output, reply *domain.Reply) {
	if reply.Terminal() {
		fmt.Fprintln(out, out.String(reply.Message).Foreground(termenv.ANSIGreen))
		return
	}
	fmt.Fprintln(out, reply.Prompt)
	for _, opt := range reply.Options {
		fmt.Fprintln(out, out.String("  - "+opt).Faint())
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
