package merge

import (
	"math"
	"testing"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/metrics"
	"github.com/tsawler/fragmerge/model"
)

// With monospace metrics at size 10 every character advances 5 units.
const testSize = 10

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func newTestDocument() *document.Document {
	return document.New(metrics.NewMonospace())
}

func addFragment(t *testing.T, d *document.Document, txt string, x, y float64, j model.Justification) document.FragmentID {
	t.Helper()
	id, err := d.NewFragment(model.Point{X: x, Y: y}, j)
	if err != nil {
		t.Fatalf("NewFragment() error = %v", err)
	}
	if _, err := d.AddRun(id, txt, document.Style{Size: testSize, AutoLeading: true}); err != nil {
		t.Fatalf("AddRun() error = %v", err)
	}
	return id
}

func mustText(t *testing.T, d *document.Document, id document.FragmentID) string {
	t.Helper()
	txt, err := d.Text(id)
	if err != nil {
		t.Fatalf("Text(%d) error = %v", id, err)
	}
	return txt
}
