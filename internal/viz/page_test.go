package viz

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/matsen/tweetmap/internal/ingest"
	"github.com/matsen/tweetmap/internal/search"
	"github.com/matsen/tweetmap/internal/view"
	"github.com/matsen/tweetmap/internal/visual"
)

func strptr(s string) *string { return &s }

func testState() *view.State {
	st := view.New(nil)
	st.Complete(&ingest.Result{
		Nodes: []ingest.Node{
			{ID: "tweet-0", X: 1, Y: 2, Author: strptr("alice"), Body: "quiet post", MaxEngagement: 300},
			{ID: "tweet-2", X: -1, Y: 0.5, Author: strptr("bob"), Body: "viral <b>post</b>",
				Metrics: ingest.Metrics{Retweets: 100, Replies: 100, Likes: 50, Quotes: 50}, MaxEngagement: 300},
		},
		Stats:         ingest.Stats{TotalRows: 3, ValidRows: 2, InvalidRows: 1},
		Authors:       ingest.AuthorStats{UniqueAuthors: 2},
		MaxEngagement: 300,
	})
	return st
}

func TestBuildPage(t *testing.T) {
	page := BuildPage(testState(), search.DefaultConfig())

	if len(page.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(page.Nodes))
	}
	if len(page.Legend) != len(visual.Buckets) {
		t.Errorf("got %d legend entries, want %d", len(page.Legend), len(visual.Buckets))
	}
	if page.Search.MinMatch != 2 {
		t.Errorf("MinMatch = %d, want 2", page.Search.MinMatch)
	}

	quiet, viral := page.Nodes[0], page.Nodes[1]
	if quiet.Color != "#94A3B8" || quiet.Size != visual.MinSize {
		t.Errorf("quiet node = %+v", quiet)
	}
	if viral.Color != "#FF79C6" || math.Abs(viral.Size-visual.MaxSize) > 1e-9 {
		t.Errorf("viral node = %+v", viral)
	}
	if viral.Label != "@bob" {
		t.Errorf("Label = %q", viral.Label)
	}
}

func TestBuildPage_FollowsDisplayedSet(t *testing.T) {
	st := testState()
	st.OnSearch(st.Nodes()[1:])

	page := BuildPage(st, search.DefaultConfig())
	if len(page.Nodes) != 1 || page.Nodes[0].ID != "tweet-2" {
		t.Errorf("page nodes = %+v", page.Nodes)
	}
	if page.Stats.Showing == nil || *page.Stats.Showing != 1 {
		t.Errorf("Stats.Showing = %v, want 1", page.Stats.Showing)
	}
}

func TestToCytoscapeJSON(t *testing.T) {
	page := BuildPage(testState(), search.DefaultConfig())

	out, err := page.ToCytoscapeJSON(10)
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error = %v", err)
	}

	var elements []CytoscapeNode
	if err := json.Unmarshal([]byte(out), &elements); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(elements))
	}

	first := elements[0]
	if first.Position.X != 10 || first.Position.Y != -20 {
		t.Errorf("position = %+v, want {10 -20}", first.Position)
	}
	if first.Data.ID != "tweet-0" {
		t.Errorf("data id = %q", first.Data.ID)
	}
	if first.Data.Diameter != nodeDiameter(visual.MinSize) {
		t.Errorf("diameter = %v", first.Data.Diameter)
	}
	if elements[1].Data.Diameter <= first.Data.Diameter {
		t.Error("higher engagement should render larger")
	}
}
