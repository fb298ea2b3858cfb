package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matsen/tweetmap/internal/dataset"
	"github.com/matsen/tweetmap/internal/ingest"
	"github.com/matsen/tweetmap/internal/search"
	"github.com/matsen/tweetmap/internal/view"
	"github.com/matsen/tweetmap/internal/viz"
)

const testCSV = "body;author;embedding_x;embedding_y;retweet_count;reply_count;like_count;quote_count\n" +
	"osint tools roundup;alice;1.0;2.0;5;0;3;0\n" +
	"no coordinates;ghost\n" +
	"geolocating a photo;bob;-1;0.5;100;100;50;50\n" +
	"osint newsletter;carol;0;0;0;0;0;0\n"

func newTestServer(t *testing.T, rateLimit float64, burst int) *Server {
	t.Helper()

	rows, err := dataset.Parse(strings.NewReader(testCSV), dataset.DefaultDelimiter)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	res := ingest.Run(rows)

	idx, err := search.NewIndex(context.Background(), res.Nodes, search.DefaultConfig())
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	t.Cleanup(func() { idx.Close() })

	srv, err := New(Config{
		Result:  res,
		Index:   idx,
		Dataset: []byte(testCSV),
		Rate:    rateLimit,
		Burst:   burst,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
}

func TestNew_RequiresData(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() without a result should fail")
	}
	if _, err := New(Config{Result: &ingest.Result{}}); err == nil {
		t.Error("New() without an index should fail")
	}
}

func TestIndexPage(t *testing.T) {
	h := newTestServer(t, 0, 0).Handler()

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<!DOCTYPE html>") {
		t.Error("page should start with DOCTYPE")
	}
	if !strings.Contains(body, view.DefaultTitle) {
		t.Error("page should contain the title")
	}
	for _, want := range []string{`const nodeEndpoint = "`, `node";`, `const selectionEndpoint = "`, `selection";`} {
		if !strings.Contains(body, want) {
			t.Errorf("page should wire selection to the API, missing %q", want)
		}
	}

	if rec := get(t, h, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}

func TestDatasetEndpoint(t *testing.T) {
	h := newTestServer(t, 0, 0).Handler()

	rec := get(t, h, "/toembed.csv")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != testCSV {
		t.Error("dataset should be served verbatim")
	}
}

func TestStatsEndpoint(t *testing.T) {
	h := newTestServer(t, 0, 0).Handler()

	var resp StatsResponse
	decode(t, get(t, h, "/api/stats"), &resp)

	if resp.Stats.TotalRows != 4 || resp.Stats.ValidRows != 3 || resp.Stats.InvalidRows != 1 {
		t.Errorf("Stats = %+v", resp.Stats)
	}
	if resp.Authors.UniqueAuthors != 3 {
		t.Errorf("UniqueAuthors = %d, want 3", resp.Authors.UniqueAuthors)
	}
	if resp.MaxEngagement != 300 {
		t.Errorf("MaxEngagement = %d, want 300", resp.MaxEngagement)
	}
	if resp.Panel.Showing != nil {
		t.Error("no search yet, Showing should be unset")
	}
	if resp.Phase != view.PhaseReady.String() {
		t.Errorf("Phase = %q, want %q", resp.Phase, view.PhaseReady)
	}
}

func TestSearchEndpoint(t *testing.T) {
	h := newTestServer(t, 0, 0).Handler()

	var resp SearchResponse
	decode(t, get(t, h, "/api/search?q=osint"), &resp)

	if !resp.Active {
		t.Fatal("search should be active")
	}
	if strings.Join(resp.IDs, ",") != "tweet-0,tweet-3" {
		t.Errorf("IDs = %v, want [tweet-0 tweet-3]", resp.IDs)
	}
	if resp.Fit == nil || resp.Fit.AnimationMs != view.FitAnimationMs || len(resp.Fit.IDs) != 2 {
		t.Errorf("Fit = %+v", resp.Fit)
	}
	if resp.Stats.Showing == nil || *resp.Stats.Showing != 2 {
		t.Errorf("Stats.Showing = %v, want 2", resp.Stats.Showing)
	}

	var nodes []viz.Node
	decode(t, get(t, h, "/api/nodes"), &nodes)
	if len(nodes) != 2 {
		t.Errorf("displayed nodes = %d, want 2 after search", len(nodes))
	}

	// A query matching nothing means "no active search".
	var none SearchResponse
	decode(t, get(t, h, "/api/search?q=zzzz"), &none)
	if none.Active || none.IDs != nil || none.Fit != nil {
		t.Errorf("empty search response = %+v", none)
	}
	decode(t, get(t, h, "/api/nodes"), &nodes)
	if len(nodes) != 3 {
		t.Errorf("displayed nodes = %d, want all 3", len(nodes))
	}
}

func TestNodeEndpoint(t *testing.T) {
	srv := newTestServer(t, 0, 0)
	h := srv.Handler()

	var popup view.Popup
	rec := get(t, h, "/api/node?id=tweet-2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	decode(t, rec, &popup)
	if popup.Author != "bob" || popup.Metrics.Retweets != 100 {
		t.Errorf("popup = %+v", popup)
	}
	if sel, ok := srv.state.Selected(); !ok || sel.ID != "tweet-2" {
		t.Errorf("clicked node should be selected, got %q (%v)", sel.ID, ok)
	}
	if srv.fit.zoom != nil {
		t.Error("a click should not zoom")
	}

	if rec := get(t, h, "/api/node?id=tweet-1"); rec.Code != http.StatusNotFound {
		t.Errorf("rejected row status = %d, want 404", rec.Code)
	}
	if rec := get(t, h, "/api/node"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing id status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/selection", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("close selection status = %d, want 204", rec.Code)
	}
	if _, ok := srv.state.Selected(); ok {
		t.Error("closing the popup should clear the selection")
	}
}

func post(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
	return rec
}

func TestSelectEndpoint(t *testing.T) {
	srv := newTestServer(t, 0, 0)
	h := srv.Handler()

	rec := post(t, h, "/api/selection?id=tweet-3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp SelectResponse
	decode(t, rec, &resp)
	if resp.Zoom == nil || resp.Zoom.ID != "tweet-3" {
		t.Errorf("Zoom = %+v, want tweet-3", resp.Zoom)
	}
	if resp.Popup.ID != "tweet-3" || resp.Popup.Author != "carol" {
		t.Errorf("Popup = %+v", resp.Popup)
	}
	if sel, ok := srv.state.Selected(); !ok || sel.ID != "tweet-3" {
		t.Errorf("picked node should be selected, got %q (%v)", sel.ID, ok)
	}

	if rec := post(t, h, "/api/selection?id=tweet-1"); rec.Code != http.StatusNotFound {
		t.Errorf("rejected row status = %d, want 404", rec.Code)
	}
	if rec := post(t, h, "/api/selection"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing id status = %d, want 400", rec.Code)
	}
	if sel, _ := srv.state.Selected(); sel.ID != "tweet-3" {
		t.Errorf("failed picks should keep the selection, got %q", sel.ID)
	}
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, 0.001, 1).Handler()

	if rec := get(t, h, "/api/stats"); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}
	if rec := get(t, h, "/api/stats"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}
	if rec := get(t, h, "/"); rec.Code != http.StatusOK {
		t.Errorf("page should not be rate limited, status = %d", rec.Code)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := newTestServer(t, 0, 0)
	srv.cfg.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
