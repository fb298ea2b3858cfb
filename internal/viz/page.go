package viz

import (
	"github.com/matsen/tweetmap/internal/ingest"
	"github.com/matsen/tweetmap/internal/search"
	"github.com/matsen/tweetmap/internal/view"
	"github.com/matsen/tweetmap/internal/visual"
)

// BuildPage assembles the page for the state's displayed nodes.
func BuildPage(st *view.State, cfg search.Config) *Page {
	displayed := st.Displayed()
	nodes := make([]Node, 0, len(displayed))
	for _, n := range displayed {
		nodes = append(nodes, NewNode(n))
	}

	return &Page{
		Title:  st.Title(),
		Stats:  st.StatsPanel(),
		Legend: visual.Legend(),
		Search: SearchBox{
			Placeholder:     cfg.Placeholder,
			MinMatch:        cfg.MinMatch,
			MaxVisibleItems: cfg.MaxVisibleItems,
			TruncateValues:  cfg.TruncateValues,
		},
		Nodes: nodes,
	}
}

// NewNode resolves the display attributes of n.
func NewNode(n ingest.Node) Node {
	return Node{
		ID:      n.ID,
		Author:  n.AuthorName(),
		Body:    n.Body,
		Label:   visual.NodeLabel(n),
		Color:   visual.NodeColor(n),
		Size:    visual.NodeSize(n),
		X:       n.X,
		Y:       n.Y,
		Metrics: n.Metrics,
	}
}
