// Package dataset parses the delimited post dataset into typed rows.
package dataset

// Column names expected in the dataset header.
const (
	ColBody         = "body"
	ColAuthor       = "author"
	ColEmbeddingX   = "embedding_x"
	ColEmbeddingY   = "embedding_y"
	ColRetweetCount = "retweet_count"
	ColReplyCount   = "reply_count"
	ColLikeCount    = "like_count"
	ColQuoteCount   = "quote_count"
)

// DefaultDelimiter is the field separator of the bundled dataset.
const DefaultDelimiter = ';'

// RawRow is one dataset record keyed by header name.
// A field missing from the record (short line) is absent, which is
// distinct from a field that is present but empty.
type RawRow struct {
	fields map[string]string
}

// NewRawRow builds a row from a header-to-value mapping.
func NewRawRow(fields map[string]string) RawRow {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return RawRow{fields: cp}
}

// Field returns the value of the named column and whether it was present.
func (r RawRow) Field(name string) (string, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Body returns the post text, or "" if absent.
func (r RawRow) Body() string {
	return r.fields[ColBody]
}

// Author returns the author handle and whether the column was present.
func (r RawRow) Author() (string, bool) {
	return r.Field(ColAuthor)
}

// EmbeddingX returns the raw x coordinate.
func (r RawRow) EmbeddingX() (string, bool) {
	return r.Field(ColEmbeddingX)
}

// EmbeddingY returns the raw y coordinate.
func (r RawRow) EmbeddingY() (string, bool) {
	return r.Field(ColEmbeddingY)
}

// RetweetCount returns the parsed retweet count, zero-filled.
func (r RawRow) RetweetCount() int { return ParseCount(r.fields[ColRetweetCount]) }

// ReplyCount returns the parsed reply count, zero-filled.
func (r RawRow) ReplyCount() int { return ParseCount(r.fields[ColReplyCount]) }

// LikeCount returns the parsed like count, zero-filled.
func (r RawRow) LikeCount() int { return ParseCount(r.fields[ColLikeCount]) }

// QuoteCount returns the parsed quote count, zero-filled.
func (r RawRow) QuoteCount() int { return ParseCount(r.fields[ColQuoteCount]) }
