package merge

import (
	"sort"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/model"
)

// reconstructParagraph stacks lines top to bottom into the topmost one. Each
// appended row gets a fixed leading equal to its original distance from the
// line above it.
func (m *Merger) reconstructParagraph(doc Document, lines []Line) (document.FragmentID, error) {
	// Order on fresh measurements; cached geometry may be unset or stale.
	sorted := append([]Line(nil), lines...)
	for i := range sorted {
		g, err := measure(doc, sorted[i].Fragment)
		if err != nil {
			return 0, err
		}
		sorted[i].Geometry = g
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Geometry.Anchor.Y > sorted[j].Geometry.Anchor.Y
	})

	merged := sorted[0].Fragment
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1].Fragment, sorted[i].Fragment

		spacing, err := m.lineSpacing(doc, prev, cur)
		if err != nil {
			return 0, err
		}

		mergedRuns, err := doc.Runs(merged)
		if err != nil {
			return 0, err
		}
		if err := doc.AppendText(mergedRuns[len(mergedRuns)-1], document.ParagraphBreak); err != nil {
			return 0, err
		}

		rows, err := doc.RowRuns(cur)
		if err != nil {
			return 0, err
		}
		for _, rid := range rows[0] {
			if err := doc.SetAutoLeading(rid, false); err != nil {
				return 0, err
			}
			if err := doc.SetLeading(rid, spacing); err != nil {
				return 0, err
			}
		}

		curRuns, err := doc.Runs(cur)
		if err != nil {
			return 0, err
		}
		for _, rid := range curRuns {
			if _, err := doc.DuplicateRun(rid, merged); err != nil {
				return 0, err
			}
		}
	}

	if err := fixFirstRowLeading(doc, merged); err != nil {
		return 0, err
	}

	// Each line stays alive as the reference of the next one until the end.
	for _, l := range sorted[1:] {
		if err := doc.RemoveFragment(l.Fragment); err != nil {
			return 0, err
		}
	}
	return merged, nil
}

// lineSpacing returns the distance between the last baseline of prev and the
// first baseline of cur.
func (m *Merger) lineSpacing(doc Document, prev, cur document.FragmentID) (float64, error) {
	prevGeom, err := measure(doc, prev)
	if err != nil {
		return 0, err
	}
	curGeom, err := measure(doc, cur)
	if err != nil {
		return 0, err
	}
	if prevGeom.Rows <= 1 {
		return prevGeom.Anchor.Y - curGeom.Anchor.Y, nil
	}
	y, err := m.lastBaseline(doc, prev, prevGeom)
	if err != nil {
		return 0, err
	}
	return y - curGeom.Anchor.Y, nil
}

// lastBaseline locates the baseline of the last row of a multi-row fragment.
// A probe fragment holding only the reference glyph, styled like the last
// run, is aligned onto the same glyph appended to a copy of the fragment;
// the probe's anchor then sits on the wanted baseline. Going through the
// glyph outline keeps trailing whitespace out of the measurement.
func (m *Merger) lastBaseline(doc Document, id document.FragmentID, geom document.Geometry) (y float64, err error) {
	runs, err := doc.Runs(id)
	if err != nil {
		return 0, err
	}
	last := runs[len(runs)-1]

	probe, err := doc.NewFragment(geom.Anchor, model.JustifyStart)
	if err != nil {
		return 0, err
	}
	defer func() {
		if rmErr := doc.RemoveFragment(probe); rmErr != nil && err == nil {
			err = rmErr
		}
	}()
	probeRun, err := doc.DuplicateRun(last, probe)
	if err != nil {
		return 0, err
	}
	if err := doc.SetText(probeRun, m.config.ReferenceGlyph); err != nil {
		return 0, err
	}

	reference, err := doc.DuplicateFragment(id)
	if err != nil {
		return 0, err
	}
	defer func() {
		if rmErr := doc.RemoveFragment(reference); rmErr != nil && err == nil {
			err = rmErr
		}
	}()
	refRuns, err := doc.Runs(reference)
	if err != nil {
		return 0, err
	}
	if err := doc.AppendText(refRuns[len(refRuns)-1], m.config.ReferenceGlyph); err != nil {
		return 0, err
	}

	probeInk, err := doc.OutlineLastGlyph(probe)
	if err != nil {
		return 0, wrapMeasure(probe, err)
	}
	refInk, err := doc.OutlineLastGlyph(reference)
	if err != nil {
		return 0, wrapMeasure(reference, err)
	}
	probeGeom, err := measure(doc, probe)
	if err != nil {
		return 0, err
	}
	return probeGeom.Anchor.Y + refInk.Top() - probeInk.Top(), nil
}

// fixFirstRowLeading gives the first row the leading of the second when
// both start with the same size; assembly never sets the first row's
// leading.
func fixFirstRowLeading(doc Document, id document.FragmentID) error {
	rows, err := doc.RowRuns(id)
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return nil
	}
	first, ok, err := firstVisibleRun(doc, rows[0])
	if err != nil || !ok {
		return err
	}
	second, ok, err := firstVisibleRun(doc, rows[1])
	if err != nil || !ok {
		return err
	}
	if first.Size != second.Size {
		return nil
	}
	for _, rid := range rows[0] {
		if err := doc.SetAutoLeading(rid, second.AutoLeading); err != nil {
			return err
		}
		if err := doc.SetLeading(rid, second.Leading); err != nil {
			return err
		}
	}
	return nil
}

// firstVisibleRun returns the first run of a row holding a character other
// than the paragraph break.
func firstVisibleRun(doc Document, row []document.RunID) (document.Run, bool, error) {
	for _, rid := range row {
		r, err := doc.Run(rid)
		if err != nil {
			return document.Run{}, false, err
		}
		if r.Text != "" && r.Text != document.ParagraphBreak {
			return r, true, nil
		}
	}
	return document.Run{}, false, nil
}
