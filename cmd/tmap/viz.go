package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/tweetmap/internal/search"
	"github.com/matsen/tweetmap/internal/viz"
)

var vizOutput string
var vizScale float64

func init() {
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().Float64Var(&vizScale, "scale", viz.DefaultOptions().Scale, "Multiplier from embedding coordinates to canvas units")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate the post map as a standalone HTML page",
	Long: `Generate an interactive HTML map of the dataset.

Each post is a node at its embedding coordinates. Node color shows the
engagement tier and node size grows with the log of engagement:
  - gray:   no engagement
  - blue:   1-9 interactions
  - green:  10-49 interactions
  - orange: 50-199 interactions
  - pink:   200+ interactions

Search runs in the browser; clicking a node opens its details.

Examples:
  # Generate HTML to stdout
  tmap viz > map.html

  # Generate to file from a remote dataset
  tmap viz --dataset https://example.org/toembed.csv --output map.html`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	st, _, _ := mustLoadDataset(cmd.Context())

	opts := viz.DefaultOptions()
	opts.Scale = vizScale
	html, err := viz.GenerateHTML(viz.BuildPage(st, search.DefaultConfig()), opts)
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	// Output
	if vizOutput == "" {
		fmt.Print(html)
		return nil
	}
	if err := os.WriteFile(vizOutput, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if !humanOutput {
		return outputJSON(map[string]string{"output": vizOutput})
	}
	fmt.Printf("Visualization written to %s\n", vizOutput)
	return nil
}
