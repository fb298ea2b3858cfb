package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the dataset and report ingestion statistics",
	Long: `Fetch, parse and validate the dataset and report how many rows became
nodes, why the rest were rejected, the number of unique authors and the
maximum engagement used for size scaling.

Examples:
  tmap load --human
  tmap load --dataset https://example.org/toembed.csv`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	_, res, _ := mustLoadDataset(cmd.Context())

	resp := LoadResponse{
		Source:        cfg.Dataset,
		Stats:         res.Stats,
		Authors:       res.Authors,
		MaxEngagement: res.MaxEngagement,
	}

	if humanOutput {
		fmt.Print(formatLoadHuman(resp))
		return nil
	}
	return outputJSON(resp)
}
