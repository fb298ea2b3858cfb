// Package viz renders the post map as a self-contained HTML page.
package viz

import (
	"github.com/matsen/tweetmap/internal/ingest"
	"github.com/matsen/tweetmap/internal/view"
	"github.com/matsen/tweetmap/internal/visual"
)

// Page contains everything needed to render the viewer.
type Page struct {
	Title  view.Title           `json:"title"`
	Stats  view.StatsPanel      `json:"stats"`
	Legend []visual.LegendEntry `json:"legend"`
	Search SearchBox            `json:"search"`
	Nodes  []Node               `json:"nodes"`
}

// SearchBox configures the page's search input.
type SearchBox struct {
	Placeholder     string `json:"placeholder"`
	MinMatch        int    `json:"minMatch"`
	MaxVisibleItems int    `json:"maxVisibleItems"`
	TruncateValues  int    `json:"truncateValues"`
}

// Node is a post with its display attributes resolved.
type Node struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Body   string `json:"body"`

	// Display
	Label string  `json:"label"`
	Color string  `json:"color"`
	Size  float64 `json:"size"`

	// Position in embedding space
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Metrics ingest.Metrics `json:"metrics"`
}

// IsEmpty returns true if the page has no nodes.
func (p *Page) IsEmpty() bool {
	return len(p.Nodes) == 0
}
