package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/tweetmap/internal/ingest"
	"github.com/matsen/tweetmap/internal/search"
	"github.com/matsen/tweetmap/internal/visual"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search posts by author or text",
	Long: `Search posts whose author or body contains the query (case-insensitive).

Queries shorter than two characters, and queries with no matches, are
inactive: every post is listed, the same as the viewer showing everything.

Examples:
  tmap search osint
  tmap search "@alice" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := cmd.Context()
	st, res, _ := mustLoadDataset(ctx)

	idx, err := search.NewIndex(ctx, res.Nodes, search.DefaultConfig())
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}
	defer idx.Close()

	matches, err := idx.Search(ctx, query)
	if err != nil {
		return err
	}

	st.OnSearch(matches)

	resp := SearchResponse{
		Query:   query,
		Active:  matches != nil,
		Results: make([]SearchHit, 0, len(st.Displayed())),
		Stats:   st.StatsPanel(),
	}
	for _, n := range st.Displayed() {
		resp.Results = append(resp.Results, newSearchHit(n))
	}
	resp.Count = len(resp.Results)

	if humanOutput {
		if !resp.Active {
			fmt.Println("No active search: showing all posts")
		}
		for i, h := range resp.Results {
			fmt.Printf("%d. [%s] @%s (%s)\n", i+1, h.Bucket, h.Author, h.ID)
			fmt.Printf("   %s\n\n", truncateString(singleLine(h.Body), SearchBodyMaxLen))
		}
		for _, line := range resp.Stats.Lines() {
			fmt.Println(line)
		}
		return nil
	}
	return outputJSON(resp)
}

func newSearchHit(n ingest.Node) SearchHit {
	e := n.Metrics.Total()
	return SearchHit{
		ID:         n.ID,
		Author:     n.AuthorName(),
		Body:       n.Body,
		Engagement: e,
		Bucket:     visual.BucketFor(e).String(),
	}
}
