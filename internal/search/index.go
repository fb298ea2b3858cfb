package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/matsen/tweetmap/internal/ingest"
	_ "modernc.org/sqlite"
)

// Index is an in-memory SQLite table of searchable node text.
type Index struct {
	db    *sql.DB
	cfg   Config
	nodes []ingest.Node
}

// Suggestion is one entry of the search dropdown.
type Suggestion struct {
	NodeID   string `json:"id"`
	Accessor string `json:"accessor"`
	Value    string `json:"value"`
}

// NewIndex builds an index over nodes. The caller must Close it.
func NewIndex(ctx context.Context, nodes []ingest.Node, cfg Config) (*Index, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening search index: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	idx := &Index{db: db, cfg: cfg, nodes: nodes}
	if err := idx.populate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Close releases the index.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Config returns the index configuration.
func (idx *Index) Config() Config {
	return idx.cfg
}

func (idx *Index) populate(ctx context.Context) error {
	schema := `
		CREATE TABLE fields (
			pos INTEGER NOT NULL,
			accessor INTEGER NOT NULL,
			value TEXT NOT NULL,
			value_lc TEXT NOT NULL
		);
		CREATE INDEX idx_fields_pos ON fields(pos);
	`
	if _, err := idx.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating search schema: %w", err)
	}

	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO fields (pos, accessor, value, value_lc) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for pos, n := range idx.nodes {
		for a, acc := range idx.cfg.Accessors {
			v := acc.Value(n)
			if v == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, pos, a, v, strings.ToLower(v)); err != nil {
				return fmt.Errorf("indexing node %s: %w", n.ID, err)
			}
		}
	}

	return tx.Commit()
}

// active returns the normalized query and whether it is long enough to search.
func (idx *Index) active(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	return q, len([]rune(q)) >= idx.cfg.MinMatch && q != ""
}

// Search returns the nodes whose accessor text contains query, in input
// order. It returns nil when the query is inactive or matches nothing,
// which callers treat as "show everything".
func (idx *Index) Search(ctx context.Context, query string) ([]ingest.Node, error) {
	q, ok := idx.active(query)
	if !ok {
		return nil, nil
	}

	rows, err := idx.db.QueryContext(ctx,
		`SELECT DISTINCT pos FROM fields WHERE instr(value_lc, ?) > 0 ORDER BY pos`, q)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var matches []ingest.Node
	for rows.Next() {
		var pos int
		if err := rows.Scan(&pos); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		matches = append(matches, idx.nodes[pos])
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matches: %w", err)
	}

	return matches, nil
}

// Suggest returns up to MaxVisibleItems dropdown entries for query.
func (idx *Index) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	q, ok := idx.active(query)
	if !ok {
		return nil, nil
	}

	rows, err := idx.db.QueryContext(ctx,
		`SELECT pos, accessor, value FROM fields
		 WHERE instr(value_lc, ?) > 0
		 ORDER BY accessor, pos
		 LIMIT ?`, q, idx.cfg.MaxVisibleItems)
	if err != nil {
		return nil, fmt.Errorf("suggesting: %w", err)
	}
	defer rows.Close()

	var out []Suggestion
	for rows.Next() {
		var pos, accessor int
		var value string
		if err := rows.Scan(&pos, &accessor, &value); err != nil {
			return nil, fmt.Errorf("scanning suggestion: %w", err)
		}
		out = append(out, Suggestion{
			NodeID:   idx.nodes[pos].ID,
			Accessor: idx.cfg.Accessors[accessor].Label,
			Value:    truncate(value, idx.cfg.TruncateValues),
		})
	}
	return out, rows.Err()
}

// truncate shortens s to maxLen runes, adding "..." when cut.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
