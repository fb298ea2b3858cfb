package ingest

import "github.com/matsen/tweetmap/internal/dataset"

// Run ingests parsed rows: it computes the dataset-wide maximum
// engagement, classifies every row, builds nodes for the valid ones and
// counts their distinct authors.
func Run(rows []dataset.RawRow) *Result {
	maxEngagement := MaxEngagement(rows)

	var stats Stats
	nodes := make([]Node, 0, len(rows))
	for i, row := range rows {
		c := Classify(row)
		stats = stats.Add(c)
		if c.Valid {
			nodes = append(nodes, BuildNode(row, i, maxEngagement))
		}
	}

	return &Result{
		Nodes:         nodes,
		Stats:         stats,
		Authors:       AuthorStats{UniqueAuthors: UniqueAuthors(nodes)},
		MaxEngagement: maxEngagement,
	}
}

// FindNode returns the node with the given id.
func (r *Result) FindNode(id string) (Node, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
