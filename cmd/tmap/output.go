package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/matsen/tweetmap/internal/ingest"
	"github.com/matsen/tweetmap/internal/view"
)

// Text truncation lengths by context
const (
	SearchBodyMaxLen = 70 // Used in search result summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoadResponse is the response for the load command.
type LoadResponse struct {
	Source        string             `json:"source"`
	Stats         ingest.Stats       `json:"stats"`
	Authors       ingest.AuthorStats `json:"authors"`
	MaxEngagement int                `json:"maxEngagement"`
}

// SearchResponse is the response for the search command.
type SearchResponse struct {
	Query   string          `json:"query"`
	Active  bool            `json:"active"`
	Count   int             `json:"count"`
	Results []SearchHit     `json:"results"`
	Stats   view.StatsPanel `json:"stats"`
}

// SearchHit is one node in search output.
type SearchHit struct {
	ID         string `json:"id"`
	Author     string `json:"author"`
	Body       string `json:"body"`
	Engagement int    `json:"engagement"`
	Bucket     string `json:"bucket"`
}

// formatLoadHuman renders ingestion statistics for the terminal.
func formatLoadHuman(r LoadResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s\n\n", r.Source)
	fmt.Fprintf(&sb, "Rows:    %s total, %s valid, %s invalid\n",
		humanize.Comma(int64(r.Stats.TotalRows)),
		humanize.Comma(int64(r.Stats.ValidRows)),
		humanize.Comma(int64(r.Stats.InvalidRows)))
	if r.Stats.InvalidRows > 0 {
		sb.WriteString("Rejections (a row may count more than once):\n")
		fmt.Fprintf(&sb, "  no body:            %d\n", r.Stats.Reasons.NoBody)
		fmt.Fprintf(&sb, "  no coordinates:     %d\n", r.Stats.Reasons.NoCoordinates)
		fmt.Fprintf(&sb, "  invalid x:          %d\n", r.Stats.Reasons.InvalidX)
		fmt.Fprintf(&sb, "  invalid y:          %d\n", r.Stats.Reasons.InvalidY)
	}
	fmt.Fprintf(&sb, "Authors: %s unique\n", humanize.Comma(int64(r.Authors.UniqueAuthors)))
	fmt.Fprintf(&sb, "Max engagement: %s\n", humanize.Comma(int64(r.MaxEngagement)))
	return sb.String()
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// singleLine collapses newlines so a post prints on one line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
