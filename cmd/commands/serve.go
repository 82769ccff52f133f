package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/schemenav/schemenav/internal/models"
	"github.com/schemenav/schemenav/internal/pipeline"
	"github.com/schemenav/schemenav/internal/retrieval"
	"github.com/schemenav/schemenav/internal/server"
	"github.com/schemenav/schemenav/internal/sessions"
)

// NewServeCommand returns the serve subcommand.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the SchemeNav server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
		},
		Action: runServe,
	}
}

func runServe(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	cfg := loadConfig(cmd)

	// CLI flags override config
	if cmd.IsSet("host") {
		cfg.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Server.Port = cmd.Int("port")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Chat model
	chatModel, err := models.CreateModel(ctx, cfg.Model)
	if err != nil {
		return fmt.Errorf("init model: %w", err)
	}

	// Document store
	docs, err := retrieval.Open(cfg.Retrieval.DBPath)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer docs.Close()

	if n, err := docs.Count(ctx); err == nil {
		slog.Info("document store ready", "path", cfg.Retrieval.DBPath, "documents", n)
		if n == 0 {
			slog.Warn("document store is empty; run 'schemenav ingest' first")
		}
	}

	// Answer pipeline with interaction logging
	interactions := pipeline.NewInteractionLog(cfg.Log.Interactions)
	responder := pipeline.New(chatModel, docs, interactions, cfg.Retrieval.TopK)

	// Session memory and HTTP server
	store := sessions.NewMemStore()
	srv := server.NewServer(store, responder, cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
