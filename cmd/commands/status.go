package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/schemenav/schemenav/clients/rest"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Check whether the SchemeNav server is running",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server",
				Usage: "SchemeNav server base URL",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := loadConfig(cmd)

			baseURL := cfg.Client.BaseURL
			if cmd.IsSet("server") {
				baseURL = cmd.String("server")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			client := rest.NewClient(baseURL, 5*time.Second)
			st, err := client.Status(ctx)
			if err != nil {
				fmt.Printf("Server: NOT RUNNING (%s)\n", baseURL)
				return nil
			}

			ts := time.Unix(0, int64(st.Timestamp*1e9))
			fmt.Printf("Server: %s (%s, server time %s)\n", st.Status, baseURL, ts.Format(time.RFC3339))
			return nil
		},
	}
}
