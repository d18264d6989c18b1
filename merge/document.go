package merge

import (
	"fmt"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/model"
)

// Document is the host document model the merge runs against. Every call is
// a synchronous round-trip; measurements must reflect all earlier edits.
type Document interface {
	// Measurement oracle
	Measure(id document.FragmentID) (document.Geometry, error)
	OutlineLastGlyph(id document.FragmentID) (model.BBox, error)

	// Queries
	Runs(id document.FragmentID) ([]document.RunID, error)
	RowRuns(id document.FragmentID) ([][]document.RunID, error)
	Run(id document.RunID) (document.Run, error)
	Text(id document.FragmentID) (string, error)
	Justification(id document.FragmentID) (model.Justification, error)

	// Duplicate and remove primitives
	NewFragment(anchor model.Point, j model.Justification) (document.FragmentID, error)
	DuplicateFragment(id document.FragmentID) (document.FragmentID, error)
	DuplicateRun(id document.RunID, dst document.FragmentID) (document.RunID, error)
	SplitLastGrapheme(id document.RunID) (document.RunID, error)
	RemoveFragment(id document.FragmentID) error
	RemoveRun(id document.RunID) error

	// Attribute setters
	SetText(id document.RunID, text string) error
	AppendText(id document.RunID, text string) error
	TrimLastGrapheme(id document.RunID) (string, error)
	SetTracking(id document.RunID, tracking float64) error
	SetBaselineShift(id document.RunID, shift float64) error
	SetLeading(id document.RunID, leading float64) error
	SetAutoLeading(id document.RunID, auto bool) error
	SetJustification(id document.FragmentID, j model.Justification) error
	MoveBy(id document.FragmentID, dx, dy float64) error

	// Output
	Select(ids ...document.FragmentID) error
}

var _ Document = (*document.Document)(nil)

// measure wraps oracle failures as ErrMeasurementUnavailable.
func measure(doc Document, id document.FragmentID) (document.Geometry, error) {
	g, err := doc.Measure(id)
	if err != nil {
		return g, wrapMeasure(id, err)
	}
	return g, nil
}

func wrapMeasure(id document.FragmentID, err error) error {
	return fmt.Errorf("%w: fragment %d: %w", ErrMeasurementUnavailable, id, err)
}
