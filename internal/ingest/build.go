package ingest

import (
	"fmt"

	"github.com/matsen/tweetmap/internal/dataset"
)

// NodeIDPrefix prefixes every node id.
const NodeIDPrefix = "tweet-"

// NodeID returns the id for the row at index in the unfiltered input.
func NodeID(index int) string {
	return fmt.Sprintf("%s%d", NodeIDPrefix, index)
}

// MetricsOf reads the four engagement counts from row, zero-filling
// anything missing or malformed.
func MetricsOf(row dataset.RawRow) Metrics {
	return Metrics{
		Retweets: row.RetweetCount(),
		Replies:  row.ReplyCount(),
		Likes:    row.LikeCount(),
		Quotes:   row.QuoteCount(),
	}
}

// EngagementOf returns the total engagement of row.
func EngagementOf(row dataset.RawRow) int {
	return MetricsOf(row).Total()
}

// MaxEngagement returns the largest total engagement across rows,
// valid or not. It is 0 for an empty slice.
func MaxEngagement(rows []dataset.RawRow) int {
	best := 0
	for _, row := range rows {
		if e := EngagementOf(row); e > best {
			best = e
		}
	}
	return best
}

// BuildNode converts a row that passed Classify into a node. index is the
// row's position among all parsed rows, so ids are sparse when rows are
// rejected.
func BuildNode(row dataset.RawRow, index, maxEngagement int) Node {
	x, _ := row.EmbeddingX()
	y, _ := row.EmbeddingY()
	fx, _ := dataset.ParseFloat(x)
	fy, _ := dataset.ParseFloat(y)

	var author *string
	if a, ok := row.Author(); ok {
		author = &a
	}

	return Node{
		ID:            NodeID(index),
		X:             fx,
		Y:             fy,
		Body:          row.Body(),
		Author:        author,
		Metrics:       MetricsOf(row),
		MaxEngagement: maxEngagement,
	}
}

// UniqueAuthors counts distinct non-nil authors among nodes.
func UniqueAuthors(nodes []Node) int {
	seen := make(map[string]struct{})
	for _, n := range nodes {
		if n.Author != nil {
			seen[*n.Author] = struct{}{}
		}
	}
	return len(seen)
}
