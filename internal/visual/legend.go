package visual

// LegendCaption is shown beneath the color legend.
const LegendCaption = "Node size increases with engagement"

// LegendTitle heads the color legend.
const LegendTitle = "Tweet Engagement"

// LegendEntry is one row of the color legend.
type LegendEntry struct {
	Bucket string `json:"bucket"`
	Color  string `json:"color"`
	Label  string `json:"label"`
}

// Legend returns one entry per bucket, lowest first.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(Buckets))
	for _, b := range Buckets {
		entries = append(entries, LegendEntry{
			Bucket: b.String(),
			Color:  b.Color(),
			Label:  b.Label(),
		})
	}
	return entries
}
