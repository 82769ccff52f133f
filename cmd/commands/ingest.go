package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/schemenav/schemenav/internal/retrieval"
)

// NewIngestCommand returns the ingest subcommand.
func NewIngestCommand() *cli.Command {
	return &cli.Command{
		Name:      "ingest",
		Usage:     "Load scheme documents from a corpus manifest into the document store",
		ArgsUsage: "<manifest.yaml>",
		Action:    runIngest,
	}
}

func runIngest(ctx context.Context, cmd *cli.Command) error {
	manifestPath := cmd.Args().First()
	if manifestPath == "" {
		return fmt.Errorf("usage: schemenav ingest <manifest.yaml>")
	}

	setupLogging(cmd)
	cfg := loadConfig(cmd)

	docs, err := retrieval.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	store, err := retrieval.Open(cfg.Retrieval.DBPath)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer store.Close()

	for _, doc := range docs {
		if err := store.Put(ctx, doc); err != nil {
			return err
		}
	}

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Ingested %d documents (%d total in %s)\n", len(docs), total, cfg.Retrieval.DBPath)
	return nil
}
