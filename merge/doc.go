// Package merge reconstructs lines and paragraphs from text fragments that
// an import split apart.
//
// The [Merger] drives four steps over a caller-supplied selection:
//
//  1. fragments are bucketed by baseline ([GroupByBaseline]) and each bucket
//     is merged into one line; the width of every seam is matched first with
//     whitespace edits, then with a bisection search on the tracking of the
//     seam character
//  2. the common justification of the lines is inferred by comparing the
//     spread (amplitude) of their left, center and right edges
//     ([InferJustification])
//  3. the lines are stacked into one paragraph whose rows keep the original
//     inter-line spacing, measured from glyph geometry
//  4. the paragraph is moved to the [Median] horizontal anchor of the lines
//
// The document is a [Document]; [document.Document] implements it.
//
//	m := merge.NewMerger()
//	res, err := m.Merge(ctx, doc, doc.Selection())
//	if errors.Is(err, merge.ErrEmptySelection) {
//	    // nothing to do
//	}
//
// # Errors
//
// [ErrMeasurementUnavailable] aborts the whole operation; edits already
// applied are not rolled back. Seams whose tracking search cannot hit the
// target width exactly are reported as [Warning] values carrying
// [ErrNonConvergentSearch].
//
// # Logging
//
// The package logs through [Logger], silent by default; see [SetLogger].
package merge
