// Package metrics provides the font measurement backends used to lay out
// fragment runs.
//
// A [Metrics] value answers three questions for a font at a given size: how
// far each rune advances the pen, where the ink of a glyph sits relative to
// the pen origin, and how far the font reaches above and below the baseline.
//
// # Backends
//
//   - [Monospace] - deterministic fixed-pitch metrics, used by tests and as a
//     fallback when no font file is available
//   - [SFNT] - golang.org/x/image/font/sfnt advances with pair kerning
//   - [Harfbuzz] - go-text/typesetting shaping (ligatures, contextual
//     kerning), with ink bounds taken from the same font through sfnt
//
// [Open] selects a backend by name; the sfnt based backends default to the
// Go Regular font when no font data is supplied.
package metrics
