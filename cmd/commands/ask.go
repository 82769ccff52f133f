package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/schemenav/schemenav/clients/rest"
	"github.com/schemenav/schemenav/internal/conversation"
)

// NewAskCommand returns the ask subcommand.
func NewAskCommand() *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask a single question and print the answer",
		ArgsUsage: "<question>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server",
				Usage: "SchemeNav server base URL",
			},
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "Response timeout in seconds",
				Value: 120,
			},
		},
		Action: runAsk,
	}
}

func runAsk(_ context.Context, cmd *cli.Command) error {
	question := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("usage: schemenav ask <question>")
	}

	setupLogging(cmd)
	cfg := loadConfig(cmd)

	baseURL := cfg.Client.BaseURL
	if cmd.IsSet("server") {
		baseURL = cmd.String("server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cmd.Int("timeout"))*time.Second)
	defer cancel()

	client := rest.NewClient(baseURL, cfg.Client.Timeout.Duration())
	controller := conversation.NewController(client)

	answer, err := controller.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	fmt.Fprintf(os.Stderr, "session: %s\n", controller.UserID())
	fmt.Println(answer)
	return nil
}
