// Package document provides an in-memory illustration document holding point
// text fragments, and the measurement oracle that lays them out.
//
// Fragments and runs live in an arena and are addressed by stable
// identifiers ([FragmentID], [RunID]). Removing a record invalidates its
// identifier for good; identifiers are never reused, so a stale identifier
// reports [ErrInvalidID] instead of aliasing a newer record.
//
// # Text model
//
// A fragment is point text: an anchor on the baseline of its first row, a
// justification, and an ordered list of character runs. A run carries text
// plus size, tracking (thousandths of an em), baseline shift, leading and
// auto leading. The paragraph break "\r" starts a new row and is always the
// last character of its run; editing a run splits it when needed so that
// every run belongs to exactly one row.
//
// # Measurement
//
// [Document.Measure] lays a fragment out with the document's
// [metrics.Metrics] backend and reports its bounds, anchor and rows.
// [Document.OutlineLastGlyph] reports the ink bounds of the last visible
// glyph as placed in the layout. Both always reflect earlier edits.
//
// A Document is not safe for concurrent use.
package document
