package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/tweetmap/internal/visual"
)

func init() {
	rootCmd.AddCommand(legendCmd)
}

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "List the engagement color tiers",
	Args:  cobra.NoArgs,
	// The legend needs no config or dataset.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runLegend,
}

func runLegend(cmd *cobra.Command, args []string) error {
	entries := visual.Legend()
	if humanOutput {
		fmt.Println(visual.LegendTitle)
		for _, e := range entries {
			fmt.Printf("  %s  %-7s %s\n", e.Color, e.Bucket, e.Label)
		}
		fmt.Println(visual.LegendCaption)
		return nil
	}
	return outputJSON(entries)
}
