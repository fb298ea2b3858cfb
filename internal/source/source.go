// Package source fetches the post dataset and runs it through the
// ingestion pipeline.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/matsen/tweetmap/internal/dataset"
	"github.com/matsen/tweetmap/internal/ingest"
)

// DefaultPath is the dataset's path relative to the viewer's base URL.
const DefaultPath = "/toembed.csv"

// Loader fetches the dataset from a URL or local file.
type Loader struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(l *Loader) {
		l.client = hc
	}
}

// WithBaseURL resolves relative sources like "/toembed.csv" against base.
func WithBaseURL(base string) Option {
	return func(l *Loader) {
		l.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader. The default HTTP client has no timeout;
// callers bound a fetch through ctx.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// isRemote reports whether src names an HTTP resource.
func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// resolve returns the URL to fetch for src, or "" if src is a local path.
func (l *Loader) resolve(src string) string {
	if isRemote(src) {
		return src
	}
	if l.baseURL != "" {
		return l.baseURL + "/" + strings.TrimPrefix(src, "/")
	}
	return ""
}

// Fetch returns the raw dataset text named by src.
func (l *Loader) Fetch(ctx context.Context, src string) ([]byte, error) {
	target := l.resolve(src)
	if target == "" {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, &FetchError{URL: src, Err: err}
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("creating request: %w", err)}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("reading body: %w", err)}
	}
	return data, nil
}

// Load fetches, parses and ingests the dataset named by src. Any failure
// is logged once and returned; no partial result is produced.
func (l *Loader) Load(ctx context.Context, src string, delim rune) (*ingest.Result, error) {
	res, _, err := l.LoadRaw(ctx, src, delim)
	return res, err
}

// LoadRaw is Load that also returns the fetched dataset bytes.
func (l *Loader) LoadRaw(ctx context.Context, src string, delim rune) (*ingest.Result, []byte, error) {
	data, err := l.Fetch(ctx, src)
	if err != nil {
		l.logger.Error("Error loading data", "source", src, "error", err)
		return nil, nil, err
	}

	rows, err := dataset.Parse(bytes.NewReader(data), delim)
	if err != nil {
		l.logger.Error("Error parsing CSV", "source", src, "error", err)
		return nil, nil, err
	}

	res := ingest.Run(rows)
	l.logger.Debug("dataset loaded",
		"source", src,
		"total", res.Stats.TotalRows,
		"valid", res.Stats.ValidRows,
		"invalid", res.Stats.InvalidRows,
		"max_engagement", res.MaxEngagement,
	)
	return res, data, nil
}
