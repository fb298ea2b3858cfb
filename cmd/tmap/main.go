// Package main provides the tmap CLI entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/tweetmap/internal/config"
	"github.com/matsen/tweetmap/internal/ingest"
	"github.com/matsen/tweetmap/internal/source"
	"github.com/matsen/tweetmap/internal/view"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

var (
	configPath  string
	datasetFlag string
	logLevel    string
)

// cfg is populated by the root PersistentPreRunE.
var cfg *config.Config

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tmap",
	Short: "Interactive map of posts by embedding coordinates",
	Long: `tmap loads a ';'-delimited dataset of posts with precomputed 2D embedding
coordinates and renders them as an interactive scatter map.

Core features:
  - Dataset validation with per-reason rejection counts
  - Engagement-based node color (5 tiers) and log-scaled size
  - Author/text search with a live match count
  - Self-contained HTML export or a local viewer server

All commands output JSON by default for scripting.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/tmap/config.yml)")
	rootCmd.PersistentFlags().StringVar(&datasetFlag, "dataset", "", "Dataset path or URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Version = Version
}

// setup loads .env and config and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	// Flag overrides apply to this run only, not the cached config.
	c := *loaded
	if datasetFlag != "" {
		c.Dataset = datasetFlag
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}

	level, err := c.SlogLevel()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg = &c
	return nil
}

// loadDataset runs one load of src through the viewer lifecycle. On failure
// the returned state is failed and carries the display message.
func loadDataset(ctx context.Context, src string, delim rune) (*view.State, *ingest.Result, []byte, error) {
	st := view.New(nil)
	st.Begin()
	slog.Debug(st.LoadingMessage(), "source", src)

	res, raw, err := source.NewLoader(source.WithLogger(slog.Default())).LoadRaw(ctx, src, delim)
	if err != nil {
		st.Fail(err)
		return st, nil, nil, err
	}
	st.Complete(res)
	return st, res, raw, nil
}

// mustLoadDataset loads and ingests the configured dataset, exits on error.
func mustLoadDataset(ctx context.Context) (*view.State, *ingest.Result, []byte) {
	delim, err := cfg.DelimiterRune()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	st, res, raw, err := loadDataset(ctx, cfg.Dataset, delim)
	if err != nil {
		exitWithError(exitCodeFor(err), "%s", st.Err())
	}
	return st, res, raw
}
