// Package view holds the viewer's interaction state: the loaded node set,
// the currently displayed subset, and the selected node.
//
// State is driven by synchronous callbacks from the search box and the
// renderer. It is not safe for concurrent use; callers that share a State
// across goroutines must serialize access.
package view

import (
	"fmt"

	"github.com/matsen/tweetmap/internal/dataset"
	"github.com/matsen/tweetmap/internal/ingest"
)

// FitAnimationMs is the camera animation length after a search.
const FitAnimationMs = 500

// Renderer is the subset of the graph renderer the view drives.
type Renderer interface {
	FitViewByNodeIDs(ids []string, animationMs int)
	ZoomToNode(n ingest.Node)
}

// Phase is the load lifecycle stage.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the viewer state for one load.
type State struct {
	renderer Renderer

	phase     Phase
	errMsg    string
	nodes     []ingest.Node
	displayed []ingest.Node
	selected  *ingest.Node
	stats     ingest.Stats
	authors   ingest.AuthorStats
}

// New creates a State in the loading phase. A nil renderer is allowed.
func New(r Renderer) *State {
	return &State{renderer: r, phase: PhaseLoading}
}

// Begin resets the state for a fresh load.
func (s *State) Begin() {
	*s = State{renderer: s.renderer, phase: PhaseLoading}
}

// Complete installs a successful load. The displayed set starts as the
// full node set.
func (s *State) Complete(res *ingest.Result) {
	s.phase = PhaseReady
	s.errMsg = ""
	s.nodes = res.Nodes
	s.displayed = res.Nodes
	s.selected = nil
	s.stats = res.Stats
	s.authors = res.Authors
}

// Fail moves the state to the terminal failed phase.
func (s *State) Fail(err error) {
	s.phase = PhaseFailed
	s.errMsg = FailureMessage(err)
	s.nodes = nil
	s.displayed = nil
	s.selected = nil
}

// FailureMessage formats a load error for display. Parse failures are
// reported as such; everything else is a load failure.
func FailureMessage(err error) string {
	if dataset.IsParseError(err) {
		return fmt.Sprintf("Failed to parse CSV: %v", err)
	}
	return fmt.Sprintf("Failed to load data: %v", err)
}

// Phase returns the current lifecycle stage.
func (s *State) Phase() Phase { return s.phase }

// Err returns the failure message, or "" unless failed.
func (s *State) Err() string { return s.errMsg }

// Nodes returns the canonical node set.
func (s *State) Nodes() []ingest.Node { return s.nodes }

// Displayed returns the nodes currently shown.
func (s *State) Displayed() []ingest.Node { return s.displayed }

// Selected returns the node shown in the popup, if any.
func (s *State) Selected() (ingest.Node, bool) {
	if s.selected == nil {
		return ingest.Node{}, false
	}
	return *s.selected, true
}

// Stats returns the ingestion statistics.
func (s *State) Stats() ingest.Stats { return s.stats }

// Authors returns the author statistics.
func (s *State) Authors() ingest.AuthorStats { return s.authors }

// OnSearch applies a search result. nil means no active search and
// restores the full set; otherwise the matches are displayed and the
// camera is fitted to them.
func (s *State) OnSearch(matches []ingest.Node) {
	if matches == nil {
		s.displayed = s.nodes
		return
	}
	s.displayed = matches
	if s.renderer != nil {
		ids := make([]string, len(matches))
		for i, n := range matches {
			ids[i] = n.ID
		}
		s.renderer.FitViewByNodeIDs(ids, FitAnimationMs)
	}
}

// OnSelect handles a pick from the search dropdown.
func (s *State) OnSelect(n *ingest.Node) {
	if n == nil {
		return
	}
	sel := *n
	s.selected = &sel
	if s.renderer != nil {
		s.renderer.ZoomToNode(sel)
	}
}

// OnClick handles a click on a rendered node. Clicks on empty canvas
// pass nil and are ignored.
func (s *State) OnClick(n *ingest.Node) {
	if n == nil {
		return
	}
	sel := *n
	s.selected = &sel
}

// ClosePopup clears the selection.
func (s *State) ClosePopup() {
	s.selected = nil
}
