package server

import (
	"net/http"

	"github.com/matsen/tweetmap/internal/ingest"
	"github.com/matsen/tweetmap/internal/search"
	"github.com/matsen/tweetmap/internal/view"
	"github.com/matsen/tweetmap/internal/viz"
)

// SearchResponse is the /api/search payload. IDs is null when no search
// is active, meaning every node is shown.
type SearchResponse struct {
	Active      bool                `json:"active"`
	IDs         []string            `json:"ids"`
	Suggestions []search.Suggestion `json:"suggestions"`
	Fit         *FitCommand         `json:"fit"`
	Stats       view.StatsPanel     `json:"stats"`
}

// SelectResponse is the POST /api/selection payload.
type SelectResponse struct {
	Popup view.Popup   `json:"popup"`
	Zoom  *ZoomCommand `json:"zoom"`
}

// StatsResponse is the /api/stats payload.
type StatsResponse struct {
	Phase         string             `json:"phase"`
	Stats         ingest.Stats       `json:"stats"`
	Authors       ingest.AuthorStats `json:"authors"`
	MaxEngagement int                `json:"maxEngagement"`
	Panel         view.StatsPanel    `json:"panel"`
	Title         view.Title         `json:"title"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// The page always carries the full set; the browser hides non-matches.
	full := view.New(nil)
	full.Complete(s.cfg.Result)

	opts := viz.DefaultOptions()
	opts.SearchEndpoint = "/api/search"
	opts.NodeEndpoint = "/api/node"
	opts.SelectionEndpoint = "/api/selection"

	html, err := viz.GenerateHTML(viz.BuildPage(full, s.cfg.Index.Config()), opts)
	if err != nil {
		s.logger.Error("generating page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Dataset == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Write(s.cfg.Dataset)
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	displayed := s.state.Displayed()
	s.mu.Unlock()

	nodes := make([]viz.Node, 0, len(displayed))
	for _, n := range displayed {
		nodes = append(nodes, viz.NewNode(n))
	}
	writeJSON(w, http.StatusOK, nodes)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := StatsResponse{
		Phase:         s.state.Phase().String(),
		Stats:         s.state.Stats(),
		Authors:       s.state.Authors(),
		MaxEngagement: s.cfg.Result.MaxEngagement,
		Panel:         s.state.StatsPanel(),
		Title:         s.state.Title(),
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	matches, err := s.cfg.Index.Search(r.Context(), query)
	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	suggestions, err := s.cfg.Index.Suggest(r.Context(), query)
	if err != nil {
		s.logger.Error("suggest failed", "query", query, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.fit.reset()
	s.state.OnSearch(matches)
	resp := SearchResponse{
		Active:      matches != nil,
		Suggestions: suggestions,
		Fit:         s.fit.fit,
		Stats:       s.state.StatsPanel(),
	}
	s.mu.Unlock()

	if matches != nil {
		resp.IDs = make([]string, len(matches))
		for i, n := range matches {
			resp.IDs[i] = n.ID
		}
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []search.Suggestion{}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id parameter required"})
		return
	}

	n, ok := s.cfg.Result.FindNode(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "node not found"})
		return
	}

	s.mu.Lock()
	s.state.OnClick(&n)
	popup, _ := s.state.Popup()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, popup)
}

// handleSelect selects a node picked from the search dropdown and returns
// the zoom command alongside its popup.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id parameter required"})
		return
	}

	n, ok := s.cfg.Result.FindNode(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "node not found"})
		return
	}

	s.mu.Lock()
	s.fit.reset()
	s.state.OnSelect(&n)
	popup, _ := s.state.Popup()
	resp := SelectResponse{Popup: popup, Zoom: s.fit.zoom}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseSelection(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.state.ClosePopup()
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}
