package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matsen/tweetmap/internal/search"
	"github.com/matsen/tweetmap/internal/server"
)

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default: config port)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the post map on a local web server",
	Long: `Load the dataset and serve the interactive map.

Routes:
  /              the map page (search runs through /api/search)
  /toembed.csv   the raw dataset
  /api/nodes     displayed nodes with color, size and label
  /api/stats     ingestion and author statistics
  /api/search    ?q= matches, or null when no search is active
  /api/node      ?id= popup details for one node

Examples:
  tmap serve
  tmap serve --port 9000 --dataset ./toembed.csv`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, res, raw := mustLoadDataset(ctx)

	idx, err := search.NewIndex(ctx, res.Nodes, search.DefaultConfig())
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}
	defer idx.Close()

	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Addr:    fmt.Sprintf(":%d", port),
		Result:  res,
		Index:   idx,
		Dataset: raw,
		Rate:    cfg.SearchRate,
		Burst:   cfg.SearchBurst,
		Logger:  slog.Default(),
	})
	if err != nil {
		return err
	}

	if humanOutput {
		fmt.Printf("Post map: http://localhost:%d\n", port)
		fmt.Printf("   %d posts from %d unique authors\n", res.Stats.ValidRows, res.Authors.UniqueAuthors)
	}

	if err := srv.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
