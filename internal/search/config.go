// Package search matches nodes against free-text queries over their
// author and body, the way the viewer's search box does.
package search

import "github.com/matsen/tweetmap/internal/ingest"

// Accessor extracts one searchable text field from a node.
type Accessor struct {
	Label string
	Value func(ingest.Node) string
}

// Config configures matching and suggestion output.
type Config struct {
	Accessors       []Accessor
	MinMatch        int // queries shorter than this are inactive
	MaxVisibleItems int // suggestion cap
	TruncateValues  int // suggestion value length cap, in runes
	Placeholder     string
}

// DefaultConfig searches author and tweet text.
func DefaultConfig() Config {
	return Config{
		Accessors: []Accessor{
			{Label: "Author", Value: func(n ingest.Node) string { return n.AuthorName() }},
			{Label: "Tweet", Value: func(n ingest.Node) string { return n.Body }},
		},
		MinMatch:        2,
		MaxVisibleItems: 8,
		TruncateValues:  150,
		Placeholder:     "Search authors or tweets...",
	}
}
