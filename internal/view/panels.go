package view

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/matsen/tweetmap/internal/ingest"
)

// DefaultTitle is the page heading.
const DefaultTitle = "#OSINT on Twitter 2020-2023"

// StatsPanel is the dataset statistics box.
type StatsPanel struct {
	TotalTweets   int  `json:"totalTweets"`
	UniqueAuthors int  `json:"uniqueAuthors"`
	Showing       *int `json:"showing,omitempty"` // set only while a search narrows the set
}

// Lines renders the panel as display text.
func (p StatsPanel) Lines() []string {
	lines := []string{
		"Total Tweets: " + humanize.Comma(int64(p.TotalTweets)),
		"Unique Authors: " + humanize.Comma(int64(p.UniqueAuthors)),
	}
	if p.Showing != nil {
		lines = append(lines, fmt.Sprintf("Showing: %d matches", *p.Showing))
	}
	return lines
}

// StatsPanel returns the statistics box for the current state.
func (s *State) StatsPanel() StatsPanel {
	p := StatsPanel{
		TotalTweets:   s.stats.ValidRows,
		UniqueAuthors: s.authors.UniqueAuthors,
	}
	if len(s.displayed) != len(s.nodes) {
		n := len(s.displayed)
		p.Showing = &n
	}
	return p
}

// Title is the page heading and subtitle.
type Title struct {
	Heading  string `json:"heading"`
	Subtitle string `json:"subtitle"`
}

// Title returns the heading block for the current state.
func (s *State) Title() Title {
	return Title{
		Heading: DefaultTitle,
		Subtitle: fmt.Sprintf("Embeddings of %s tweets from %s unique authors",
			humanize.Comma(int64(s.stats.ValidRows)),
			humanize.Comma(int64(s.authors.UniqueAuthors))),
	}
}

// LoadingMessage is shown while the phase is PhaseLoading.
func (s *State) LoadingMessage() string {
	return fmt.Sprintf("Loading data... %d rows processed so far", s.stats.TotalRows)
}

// Popup is the detail card for one post.
type Popup struct {
	ID      string         `json:"id"`
	Author  string         `json:"author"`
	Body    string         `json:"body"`
	Metrics ingest.Metrics `json:"metrics"`
}

// PopupFor builds the detail card for n.
func PopupFor(n ingest.Node) Popup {
	return Popup{
		ID:      n.ID,
		Author:  n.AuthorName(),
		Body:    n.Body,
		Metrics: n.Metrics,
	}
}

// Popup returns the detail card for the selected node.
func (s *State) Popup() (Popup, bool) {
	n, ok := s.Selected()
	if !ok {
		return Popup{}, false
	}
	return PopupFor(n), true
}
