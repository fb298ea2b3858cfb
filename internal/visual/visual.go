// Package visual maps node engagement to display color and size.
package visual

import (
	"math"

	"github.com/matsen/tweetmap/internal/ingest"
)

// Size bounds in renderer units.
const (
	MinSize = 0.002
	MaxSize = 1.0
)

// Bucket is an engagement tier.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketLow
	BucketMedium
	BucketHigh
	BucketViral
)

// Buckets lists every tier from lowest to highest.
var Buckets = []Bucket{BucketNone, BucketLow, BucketMedium, BucketHigh, BucketViral}

var bucketInfo = map[Bucket]struct {
	name, color, label string
}{
	BucketNone:   {"none", "#94A3B8", "No engagement"},
	BucketLow:    {"low", "#88CCF1", "1-9 interactions"},
	BucketMedium: {"medium", "#B5E8B0", "10-49 interactions"},
	BucketHigh:   {"high", "#FFB86C", "50-199 interactions"},
	BucketViral:  {"viral", "#FF79C6", "200+ interactions"},
}

// String returns the bucket name ("none" .. "viral").
func (b Bucket) String() string {
	return bucketInfo[b].name
}

// Color returns the hex display color.
func (b Bucket) Color() string {
	return bucketInfo[b].color
}

// Label returns the legend text.
func (b Bucket) Label() string {
	return bucketInfo[b].label
}

// BucketFor classifies a total engagement value.
func BucketFor(engagement int) Bucket {
	switch {
	case engagement <= 0:
		return BucketNone
	case engagement < 10:
		return BucketLow
	case engagement < 50:
		return BucketMedium
	case engagement < 200:
		return BucketHigh
	default:
		return BucketViral
	}
}

// NodeColor returns the display color for n.
func NodeColor(n ingest.Node) string {
	return BucketFor(n.Metrics.Total()).Color()
}

// NodeSize returns a log-scaled size in [MinSize, MaxSize].
func NodeSize(n ingest.Node) float64 {
	return Size(n.Metrics.Total(), n.MaxEngagement)
}

// Size scales engagement against maxEngagement on a log curve.
// Zero engagement, or a non-positive maximum, yields MinSize.
func Size(engagement, maxEngagement int) float64 {
	if engagement <= 0 || maxEngagement <= 0 {
		return MinSize
	}
	logMax := math.Log(float64(maxEngagement) + 1)
	size := MinSize + (math.Log(float64(engagement)+1)/logMax)*(MaxSize-MinSize)
	return math.Min(math.Max(size, MinSize), MaxSize)
}

// NodeLabel returns the hover label for n.
func NodeLabel(n ingest.Node) string {
	return "@" + n.AuthorName()
}
