// Package ingest validates parsed dataset rows and turns the valid ones
// into visualization nodes.
package ingest

// Metrics holds the engagement counts of one post.
type Metrics struct {
	Retweets int `json:"retweets"`
	Replies  int `json:"replies"`
	Likes    int `json:"likes"`
	Quotes   int `json:"quotes"`
}

// Total returns the post's engagement: the sum of all four counts.
func (m Metrics) Total() int {
	return m.Retweets + m.Replies + m.Likes + m.Quotes
}

// Node is one post positioned in embedding space.
type Node struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Body   string  `json:"body"`
	Author *string `json:"author,omitempty"` // nil when the column was absent

	Metrics Metrics `json:"metrics"`

	// MaxEngagement is the dataset-wide maximum, identical on every node
	// from one load.
	MaxEngagement int `json:"maxEngagement"`
}

// AuthorName returns the author or "" if absent.
func (n Node) AuthorName() string {
	if n.Author == nil {
		return ""
	}
	return *n.Author
}

// Reasons counts why rows were rejected. A single row may increment
// several counters.
type Reasons struct {
	NoBody        int `json:"noBody"`
	NoCoordinates int `json:"noCoordinates"`
	InvalidX      int `json:"invalidX"`
	InvalidY      int `json:"invalidY"`
}

// Stats summarizes one ingestion run.
type Stats struct {
	TotalRows   int     `json:"totalRows"`
	ValidRows   int     `json:"validRows"`
	InvalidRows int     `json:"invalidRows"`
	Reasons     Reasons `json:"reasons"`
}

// AuthorStats summarizes authorship over valid nodes.
type AuthorStats struct {
	UniqueAuthors int `json:"uniqueAuthors"`
}

// Result is the outcome of a successful ingestion.
type Result struct {
	Nodes         []Node      `json:"nodes"`
	Stats         Stats       `json:"stats"`
	Authors       AuthorStats `json:"authors"`
	MaxEngagement int         `json:"maxEngagement"`
}
