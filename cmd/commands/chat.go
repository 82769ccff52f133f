package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/schemenav/schemenav/clients/rest"
	"github.com/schemenav/schemenav/clients/tui"
	"github.com/schemenav/schemenav/internal/conversation"
)

// NewChatCommand returns the chat subcommand.
func NewChatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Open the interactive chat client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server",
				Usage: "SchemeNav server base URL",
			},
		},
		Action: runChat,
	}
}

func runChat(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	cfg := loadConfig(cmd)

	baseURL := cfg.Client.BaseURL
	if cmd.IsSet("server") {
		baseURL = cmd.String("server")
	}

	client := rest.NewClient(baseURL, cfg.Client.Timeout.Duration())
	controller := conversation.NewController(client)

	return tui.Run(controller)
}
