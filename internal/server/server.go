// Package server serves the post map and a small JSON API over the
// loaded dataset.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/matsen/tweetmap/internal/ingest"
	"github.com/matsen/tweetmap/internal/search"
	"github.com/matsen/tweetmap/internal/source"
	"github.com/matsen/tweetmap/internal/view"
)

// ShutdownTimeout bounds graceful shutdown after the context ends.
const ShutdownTimeout = 5 * time.Second

// Config holds settings for the viewer server.
type Config struct {
	Addr    string
	Result  *ingest.Result
	Index   *search.Index
	Dataset []byte // raw dataset served at source.DefaultPath

	// API rate limit; a non-positive rate disables limiting.
	Rate  float64
	Burst int

	Logger *slog.Logger
}

// Server is the viewer HTTP server. It holds a single viewer session whose
// state is shared by every client.
type Server struct {
	cfg     Config
	limiter *rate.Limiter
	logger  *slog.Logger

	mu    sync.Mutex
	state *view.State
	fit   *fitRecorder
}

// fitRecorder captures renderer commands so they can be returned to the
// browser.
type fitRecorder struct {
	fit  *FitCommand
	zoom *ZoomCommand
}

// FitCommand asks the browser to frame the given nodes.
type FitCommand struct {
	IDs         []string `json:"ids"`
	AnimationMs int      `json:"animationMs"`
}

// ZoomCommand asks the browser to center and zoom on one node.
type ZoomCommand struct {
	ID string `json:"id"`
}

func (f *fitRecorder) FitViewByNodeIDs(ids []string, animationMs int) {
	f.fit = &FitCommand{IDs: ids, AnimationMs: animationMs}
}

func (f *fitRecorder) ZoomToNode(n ingest.Node) {
	f.zoom = &ZoomCommand{ID: n.ID}
}

func (f *fitRecorder) reset() {
	f.fit = nil
	f.zoom = nil
}

// New creates a Server for an already loaded dataset.
func New(cfg Config) (*Server, error) {
	if cfg.Result == nil {
		return nil, fmt.Errorf("server requires a loaded dataset")
	}
	if cfg.Index == nil {
		return nil, fmt.Errorf("server requires a search index")
	}

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rec := &fitRecorder{}
	st := view.New(rec)
	st.Complete(cfg.Result)

	return &Server{
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
		state:   st,
		fit:     rec,
	}, nil
}

// Handler returns the HTTP handler with every route registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET "+source.DefaultPath, s.handleDataset)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/nodes", s.handleNodes)
	api.HandleFunc("GET /api/stats", s.handleStats)
	api.HandleFunc("GET /api/search", s.handleSearch)
	api.HandleFunc("GET /api/node", s.handleNode)
	api.HandleFunc("POST /api/selection", s.handleSelect)
	api.HandleFunc("DELETE /api/selection", s.handleCloseSelection)
	mux.Handle("/api/", s.rateLimited(api))

	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("serving post map", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) rateLimited(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
