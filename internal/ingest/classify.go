package ingest

import "github.com/matsen/tweetmap/internal/dataset"

// Classification is the verdict on a single row.
type Classification struct {
	Valid         bool
	NoBody        bool
	NoCoordinates bool
	InvalidX      bool
	InvalidY      bool
}

// Classify decides whether row can become a node. The rejection checks
// are independent, so one row can carry several reasons.
func Classify(row dataset.RawRow) Classification {
	x, hasX := row.EmbeddingX()
	y, hasY := row.EmbeddingY()
	hasX = hasX && x != ""
	hasY = hasY && y != ""

	_, okX := dataset.ParseFloat(x)
	_, okY := dataset.ParseFloat(y)

	c := Classification{
		NoBody:        row.Body() == "",
		NoCoordinates: !hasX || !hasY,
		InvalidX:      hasX && !okX,
		InvalidY:      hasY && !okY,
	}
	c.Valid = !c.NoBody && hasX && hasY && okX && okY
	return c
}

// Add folds one classification into the stats and returns the result.
func (s Stats) Add(c Classification) Stats {
	s.TotalRows++
	if c.Valid {
		s.ValidRows++
		return s
	}

	s.InvalidRows++
	if c.NoBody {
		s.Reasons.NoBody++
	}
	if c.NoCoordinates {
		s.Reasons.NoCoordinates++
	}
	if c.InvalidX {
		s.Reasons.InvalidX++
	}
	if c.InvalidY {
		s.Reasons.InvalidY++
	}
	return s
}
