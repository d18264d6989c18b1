package merge

import (
	"sort"

	"github.com/tsawler/fragmerge/document"
)

// Median returns the median of values: the middle value of the sorted
// values, or the mean of the two middle values for an even count. It
// returns 0 for no values. values is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2.0
	}
	return sorted[mid]
}

// reposition moves a fragment horizontally so that its anchor sits on the
// median of anchors.
func (m *Merger) reposition(doc Document, id document.FragmentID, anchors []float64) error {
	g, err := measure(doc, id)
	if err != nil {
		return err
	}
	dx := Median(anchors) - g.Anchor.X
	if dx == 0 {
		return nil
	}
	return doc.MoveBy(id, dx, 0)
}
